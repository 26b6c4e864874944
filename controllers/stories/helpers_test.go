package stories

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/controllers/authentication"
	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/models/users"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}, &users.Organization{}, &story.Story{}, &story.Like{}, &story.Favorite{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	config.DB = db
}

func testRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stories/new", CreateStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/org", ListOrgStories).Methods(http.MethodGet)
	r.HandleFunc("/stories", ListStories).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}", GetStory).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}", UpdateStory).Methods(http.MethodPut)
	r.HandleFunc("/stories/{id:[0-9]+}", DeleteStory).Methods(http.MethodDelete)
	r.HandleFunc("/stories/{id:[0-9]+}/visibility", ChangeVisibility).Methods(http.MethodPatch)
	r.HandleFunc("/stories/{id:[0-9]+}/permissions", GetPermissions).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/like", GetLikeStatus).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/like", LikeStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/{id:[0-9]+}/like", UnlikeStory).Methods(http.MethodDelete)
	r.HandleFunc("/stories/{id:[0-9]+}/likes-count", GetLikesCount).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/favorite", GetFavoriteStatus).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/favorite", FavoriteStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/{id:[0-9]+}/favorite", UnfavoriteStory).Methods(http.MethodDelete)
	r.HandleFunc("/stories/{id:[0-9]+}/collab-auth", CollabAuth).Methods(http.MethodPost)
	r.HandleFunc("/feed", Feed).Methods(http.MethodGet)
	r.HandleFunc("/favorites", ListFavorites).Methods(http.MethodGet)
	return r
}

func seedUser(t *testing.T, id, orgID uint, name string) users.User {
	t.Helper()
	user := users.User{ID: id, Name: name, Email: name + "@example.com", Provider: "local", OrgID: orgID}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedStory(t *testing.T, ownerID, orgID uint, title, visibility string) story.Story {
	t.Helper()
	s := story.Story{OwnerID: ownerID, OrganizationID: orgID, Title: title, Visibility: visibility}
	if err := config.DB.Create(&s).Error; err != nil {
		t.Fatalf("failed to seed story: %v", err)
	}
	return s
}

func bearerToken(t *testing.T, userID, orgID uint) string {
	t.Helper()
	token, err := authentication.GenerateToken(users.User{ID: userID, OrgID: orgID, Email: "test@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
