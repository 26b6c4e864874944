package story

import (
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Story struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OwnerID        uint      `json:"ownerId" gorm:"index;not null"`
	OrganizationID uint      `json:"organizationId" gorm:"index"` // 0 = личная история без организации
	Title          string    `json:"title" gorm:"not null"`
	Content        string    `json:"content" gorm:"type:text"`
	Visibility     string    `json:"visibility" gorm:"not null;default:'public'"` // public или private
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ValidVisibility - проверка значения видимости
func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}
