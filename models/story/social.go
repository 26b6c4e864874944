package story

import (
	"time"
)

// Like - публичный сигнал одобрения. Уникальность пары (story, user)
// обеспечивается составным индексом, гонка на создании всплывает как
// gorm.ErrDuplicatedKey.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"storyId" gorm:"not null;uniqueIndex:idx_like_story_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_like_story_user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite - личная закладка пользователя на историю
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"storyId" gorm:"not null;uniqueIndex:idx_favorite_story_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_favorite_story_user"`
	CreatedAt time.Time `json:"createdAt"`
}
