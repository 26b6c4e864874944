package stories

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/controllers/authentication"
	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/services"
)

const (
	defaultStoriesLimit = 5
	defaultFeedLimit    = 10

	initialTitle   = "Untitled Story"
	initialContent = ""
)

type listMeta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	PageCount int   `json:"pageCount"`
}

type listResponse struct {
	Stories []story.Story `json:"stories"`
	Meta    listMeta      `json:"meta"`
}

func storyID(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid story ID")
	}
	return uint(id), nil
}

// fetchStory - история по ID. При неудаче сам пишет ответ: 404 для
// отсутствующей истории, 500 с логом для ошибки хранилища.
func fetchStory(w http.ResponseWriter, id uint) (story.Story, bool) {
	var s story.Story
	if result := config.DB.First(&s, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			http.Error(w, "Story not found", http.StatusNotFound)
		} else {
			log.Printf("Failed to fetch story %d: %v", id, result.Error)
			http.Error(w, "Failed to fetch story", http.StatusInternalServerError)
		}
		return story.Story{}, false
	}
	return s, true
}

func parsePagination(r *http.Request, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

// applySearch - регистронезависимый поиск по заголовку
func applySearch(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	return q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
}

func pageCount(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// CreateStory - новая пустая история, владелец - текущий пользователь.
// Если пользователь действует от имени организации, история привязывается к ней.
func CreateStory(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	newStory := story.Story{
		OwnerID:        claims.UserID,
		OrganizationID: claims.OrgID,
		Title:          initialTitle,
		Content:        initialContent,
		Visibility:     story.VisibilityPublic,
	}

	if err := config.DB.Create(&newStory).Error; err != nil {
		log.Printf("Failed to create story: %v", err)
		http.Error(w, "Failed to create story", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newStory)
}

// GetStory - чтение истории с проверкой правила видимости
func GetStory(w http.ResponseWriter, r *http.Request) {
	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	identity := authentication.OptionalIdentity(r)
	if !services.CanRead(currentStory, identity) {
		http.Error(w, "Private story access denied", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(currentStory)
}

// UpdateStory - правка заголовка и текста. Для историй организации право
// на запись есть у всех ее участников, иначе только у владельца.
func UpdateStory(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	identity := services.Identity{UserID: claims.UserID, OrgID: claims.OrgID}
	if !services.CanWrite(currentStory, identity) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if body.Title == nil || body.Content == nil {
		http.Error(w, "Both title and content are required", http.StatusBadRequest)
		return
	}

	currentStory.Title = *body.Title
	currentStory.Content = *body.Content
	if err := config.DB.Save(&currentStory).Error; err != nil {
		log.Printf("Failed to update story %d: %v", id, err)
		http.Error(w, "Failed to update story", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(currentStory)
}

// DeleteStory - удаление доступно только владельцу
func DeleteStory(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	if currentStory.OwnerID != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := config.DB.Delete(&currentStory).Error; err != nil {
		log.Printf("Failed to delete story %d: %v", id, err)
		http.Error(w, "Failed to delete story", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeVisibility - смена видимости доступна только владельцу,
// даже участники организации с правом записи не могут ее менять.
func ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body struct {
		Visibility string `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !story.ValidVisibility(body.Visibility) {
		http.Error(w, "Invalid visibility value. Must be 'public' or 'private'.", http.StatusBadRequest)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	if currentStory.OwnerID != claims.UserID {
		http.Error(w, "Only the owner can change story visibility", http.StatusForbidden)
		return
	}

	currentStory.Visibility = body.Visibility
	if err := config.DB.Save(&currentStory).Error; err != nil {
		log.Printf("Failed to update visibility of story %d: %v", id, err)
		http.Error(w, "Failed to update story visibility", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(currentStory)
}

// GetPermissions - право текущего пользователя на запись
func GetPermissions(w http.ResponseWriter, r *http.Request) {
	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	identity := authentication.OptionalIdentity(r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"hasWriteAccess": services.CanWrite(currentStory, identity),
	})
}

// ListStories - истории текущего пользователя с пагинацией и поиском
func ListStories(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	page, limit, offset := parsePagination(r, defaultStoriesLimit)
	search := r.URL.Query().Get("search")

	q := applySearch(config.DB.Model(&story.Story{}).Where("owner_id = ?", claims.UserID), search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Failed to count stories: %v", err)
		http.Error(w, "Failed to fetch stories", http.StatusInternalServerError)
		return
	}

	storiesList := []story.Story{}
	if err := q.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&storiesList).Error; err != nil {
		log.Printf("Failed to fetch stories: %v", err)
		http.Error(w, "Failed to fetch stories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{
		Stories: storiesList,
		Meta:    listMeta{Total: total, Page: page, Limit: limit, PageCount: pageCount(total, limit)},
	})
}

// ListOrgStories - истории организации, от имени которой действует пользователь
func ListOrgStories(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}
	if claims.OrgID == 0 {
		http.Error(w, "No active organization", http.StatusForbidden)
		return
	}

	page, limit, offset := parsePagination(r, defaultFeedLimit)
	search := r.URL.Query().Get("search")

	q := applySearch(config.DB.Model(&story.Story{}).Where("organization_id = ?", claims.OrgID), search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Failed to count organization stories: %v", err)
		http.Error(w, "Failed to fetch stories", http.StatusInternalServerError)
		return
	}

	storiesList := []story.Story{}
	if err := q.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&storiesList).Error; err != nil {
		log.Printf("Failed to fetch organization stories: %v", err)
		http.Error(w, "Failed to fetch stories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{
		Stories: storiesList,
		Meta:    listMeta{Total: total, Page: page, Limit: limit, PageCount: pageCount(total, limit)},
	})
}
