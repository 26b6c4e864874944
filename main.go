package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/controllers/assist"
	"github.com/Ari-S-123/story-weaver/controllers/authentication"
	"github.com/Ari-S-123/story-weaver/controllers/httpCors"
	"github.com/Ari-S-123/story-weaver/controllers/stories"
	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/models/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Инициализируем базу данных
	if err := config.InitDB(); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err := config.DB.AutoMigrate(
		&users.User{},
		&users.Organization{},
		&story.Story{},
		&story.Like{},
		&story.Favorite{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Ошибка получения подключения к базе данных: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	log.Println("Подключение к базе данных успешно")

	r := mux.NewRouter()

	r.HandleFunc("/register", authentication.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authentication.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authentication.Logout).Methods(http.MethodPost)
	r.HandleFunc("/profile", authentication.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile/update", authentication.UpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/login/google", authentication.HandleGoogleLogin).Methods(http.MethodGet)
	r.HandleFunc("/callback/google", authentication.HandleGoogleCallback).Methods(http.MethodGet)
	r.HandleFunc("/organizations", authentication.CreateOrganization).Methods(http.MethodPost)
	r.HandleFunc("/organizations", authentication.ListOrganizations).Methods(http.MethodGet)

	r.HandleFunc("/stories/new", stories.CreateStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/org", stories.ListOrgStories).Methods(http.MethodGet)
	r.HandleFunc("/stories", stories.ListStories).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}", stories.GetStory).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}", stories.UpdateStory).Methods(http.MethodPut)
	r.HandleFunc("/stories/{id:[0-9]+}", stories.DeleteStory).Methods(http.MethodDelete)
	r.HandleFunc("/stories/{id:[0-9]+}/visibility", stories.ChangeVisibility).Methods(http.MethodPatch)
	r.HandleFunc("/stories/{id:[0-9]+}/permissions", stories.GetPermissions).Methods(http.MethodGet)

	r.HandleFunc("/stories/{id:[0-9]+}/like", stories.GetLikeStatus).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/like", stories.LikeStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/{id:[0-9]+}/like", stories.UnlikeStory).Methods(http.MethodDelete)
	r.HandleFunc("/stories/{id:[0-9]+}/likes-count", stories.GetLikesCount).Methods(http.MethodGet)

	r.HandleFunc("/stories/{id:[0-9]+}/favorite", stories.GetFavoriteStatus).Methods(http.MethodGet)
	r.HandleFunc("/stories/{id:[0-9]+}/favorite", stories.FavoriteStory).Methods(http.MethodPost)
	r.HandleFunc("/stories/{id:[0-9]+}/favorite", stories.UnfavoriteStory).Methods(http.MethodDelete)

	r.HandleFunc("/stories/{id:[0-9]+}/collab-auth", stories.CollabAuth).Methods(http.MethodPost)

	r.HandleFunc("/feed", stories.Feed).Methods(http.MethodGet)
	r.HandleFunc("/favorites", stories.ListFavorites).Methods(http.MethodGet)

	r.HandleFunc("/generate", assist.GenerateHandler).Methods(http.MethodPost)

	handler := httpCors.CorsSettings().Handler(r)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
