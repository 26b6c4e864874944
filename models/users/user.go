package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/Ari-S-123/story-weaver/config"
)

type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-"`
	Provider    string `json:"provider" gorm:"not null;default:'local'"` // local или google
	OrgID       uint   `json:"orgId" gorm:"index"`                       // 0 = без организации
	AvatarURL   string `json:"avatarUrl"`
	AccessToken string `json:"-"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Organization struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time
}

// GetUserByID - поиск пользователя по ID
func GetUserByID(userID uint) (*User, error) {
	var user User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
