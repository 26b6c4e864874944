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

// GetLikeStatus - лайкнул ли текущий пользователь историю
func GetLikeStatus(w http.ResponseWriter, r *http.Request) {
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

	var existingLike story.Like
	liked := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingLike).Error == nil

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"isLiked": liked})
}

// LikeStory - поставить лайк. Повторный лайк - конфликт, гонка на
// уникальном индексе тоже всплывает как конфликт и не ретраится.
func LikeStory(w http.ResponseWriter, r *http.Request) {
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
	if !services.CanLike(currentStory, identity) {
		if currentStory.OwnerID == claims.UserID {
			http.Error(w, "Cannot like your own story", http.StatusForbidden)
		} else {
			http.Error(w, "Cannot like private stories", http.StatusForbidden)
		}
		return
	}

	var existingLike story.Like
	if err := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingLike).Error; err == nil {
		http.Error(w, "Story already liked", http.StatusConflict)
		return
	}

	newLike := story.Like{StoryID: id, UserID: claims.UserID}
	if err := config.DB.Create(&newLike).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "Story already liked", http.StatusConflict)
			return
		}
		log.Printf("Failed to like story %d: %v", id, err)
		http.Error(w, "Failed to like story", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UnlikeStory - снять лайк; отсутствующий лайк - not found
func UnlikeStory(w http.ResponseWriter, r *http.Request) {
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

	var existingLike story.Like
	if result := config.DB.Where("story_id = ? AND user_id = ?", id, claims.UserID).First(&existingLike); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			http.Error(w, "Story not liked", http.StatusNotFound)
			return
		}
		log.Printf("Failed to fetch like for story %d: %v", id, result.Error)
		http.Error(w, "Failed to remove like", http.StatusInternalServerError)
		return
	}

	if err := config.DB.Delete(&existingLike).Error; err != nil {
		log.Printf("Failed to remove like from story %d: %v", id, err)
		http.Error(w, "Failed to remove like", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetLikesCount - публичный счетчик лайков истории
func GetLikesCount(w http.ResponseWriter, r *http.Request) {
	id, err := storyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var count int64
	if err := config.DB.Model(&story.Like{}).Where("story_id = ?", id).Count(&count).Error; err != nil {
		log.Printf("Failed to count likes for story %d: %v", id, err)
		http.Error(w, "Failed to count likes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}
