package stories

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/controllers/authentication"
	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/services"
)

// GetFavoriteStatus - в закладках ли история у текущего пользователя
func GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
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

	var existingFavorite story.Favorite
	favorited := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingFavorite).Error == nil

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"isFavorited": favorited})
}

// FavoriteStory - добавить историю в закладки
func FavoriteStory(w http.ResponseWriter, r *http.Request) {
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
	if !services.CanFavorite(currentStory, identity) {
		http.Error(w, "Cannot favorite stories you don't have access to", http.StatusForbidden)
		return
	}

	var existingFavorite story.Favorite
	if err := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingFavorite).Error; err == nil {
		http.Error(w, "Story already favorited", http.StatusConflict)
		return
	}

	newFavorite := story.Favorite{StoryID: id, UserID: claims.UserID}
	if err := config.DB.Create(&newFavorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "Story already favorited", http.StatusConflict)
			return
		}
		log.Printf("Failed to favorite story %d: %v", id, err)
		http.Error(w, "Failed to favorite story", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UnfavoriteStory - убрать историю из закладок
func UnfavoriteStory(w http.ResponseWriter, r *http.Request) {
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

	var existingFavorite story.Favorite
	if result := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingFavorite); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			http.Error(w, "Story not favorited", http.StatusNotFound)
			return
		}
		log.Printf("Failed to fetch favorite for story %d: %v", id, result.Error)
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	if err := config.DB.Delete(&existingFavorite).Error; err != nil {
		log.Printf("Failed to remove favorite from story %d: %v", id, err)
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ListFavorites - закладки текущего пользователя, свежие первыми
func ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	page, limit, offset := parsePagination(r, defaultFeedLimit)
	search := r.URL.Query().Get("search")

	var favorites []story.Favorite
	if err := config.DB.Where("user_id = ?", claims.UserID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		log.Printf("Failed to fetch favorites: %v", err)
		http.Error(w, "Failed to fetch favorite stories", http.StatusInternalServerError)
		return
	}

	storyIDs := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		storyIDs = append(storyIDs, f.StoryID)
	}

	if len(storyIDs) == 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(listResponse{
			Stories: []story.Story{},
			Meta:    listMeta{Total: 0, Page: page, Limit: limit, PageCount: 0},
		})
		return
	}

	q := applySearch(config.DB.Model(&story.Story{}).Where("id IN ?", storyIDs), search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Failed to count favorite stories: %v", err)
		http.Error(w, "Failed to fetch favorite stories", http.StatusInternalServerError)
		return
	}

	storiesList := []story.Story{}
	if err := q.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&storiesList).Error; err != nil {
		log.Printf("Failed to fetch favorite stories: %v", err)
		http.Error(w, "Failed to fetch favorite stories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{
		Stories: storiesList,
		Meta:    listMeta{Total: total, Page: page, Limit: limit, PageCount: pageCount(total, limit)},
	})
}
