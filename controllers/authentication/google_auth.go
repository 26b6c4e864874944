package authentication

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/models/users"
)

var googleOauthConfig = &oauth2.Config{
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
	Endpoint:     google.Endpoint,
}

// HandleGoogleLogin initiates Google OAuth login
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := "story-weaver"
	session, _ := config.Store.Get(r, "story-weaver-session")
	session.Values["oauth_state"] = state
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	url := googleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback processes the OAuth callback and retrieves user info from Google
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := config.Store.Get(r, "story-weaver-session")
	expectedState, _ := session.Values["oauth_state"].(string)
	if r.FormValue("state") != expectedState {
		log.Println("Invalid OAuth state")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	token, err := googleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Error while exchanging code for token: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	oauthService, err := googleoauth.NewService(r.Context(),
		option.WithTokenSource(googleOauthConfig.TokenSource(r.Context(), token)))
	if err != nil {
		log.Printf("Error creating oauth2 service: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	userInfo, err := oauthService.Userinfo.Get().Do()
	if err != nil {
		log.Printf("Error while fetching user info: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	// Находим или создаем пользователя по email
	var user users.User
	err = config.DB.Where("email = ? AND provider = ?", userInfo.Email, "google").First(&user).Error
	if err != nil {
		user = users.User{
			Name:      userInfo.Name,
			Email:     userInfo.Email,
			Provider:  "google",
			AvatarURL: userInfo.Picture,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user: %v", err)
			http.Error(w, "Error creating user", http.StatusInternalServerError)
			return
		}
	}

	user.AccessToken = token.AccessToken
	if err := config.DB.Save(&user).Error; err != nil {
		log.Printf("Error saving user token: %v", err)
	}

	tokenString, err := GenerateToken(user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":  user,
		"token": tokenString,
	})
}
