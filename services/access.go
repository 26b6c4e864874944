package services

import (
	"github.com/Ari-S-123/story-weaver/models/story"
)

// Identity - кто делает запрос. Нулевой UserID означает анонимного
// посетителя, OrgID - организация, от имени которой действует пользователь.
type Identity struct {
	UserID uint
	OrgID  uint
}

// Anonymous reports whether no authenticated user is behind the request.
func (id Identity) Anonymous() bool {
	return id.UserID == 0
}

func sharedOrg(s story.Story, id Identity) bool {
	return s.OrganizationID != 0 && s.OrganizationID == id.OrgID
}

// CanRead - публичные истории видны всем; приватные только владельцу
// и участникам организации истории.
func CanRead(s story.Story, id Identity) bool {
	if s.Visibility == story.VisibilityPublic {
		return true
	}
	if id.Anonymous() {
		return false
	}
	return s.OwnerID == id.UserID || sharedOrg(s, id)
}

// CanWrite - правка доступна владельцу и участникам организации истории.
func CanWrite(s story.Story, id Identity) bool {
	if id.Anonymous() {
		return false
	}
	return s.OwnerID == id.UserID || sharedOrg(s, id)
}

// CanLike - лайк только на чужую публичную историю. Самолайки и лайки
// приватных историй запрещены.
func CanLike(s story.Story, id Identity) bool {
	if id.Anonymous() {
		return false
	}
	return s.Visibility == story.VisibilityPublic && s.OwnerID != id.UserID
}

// CanFavorite - закладка разрешена на любую историю, к которой есть доступ:
// публичную, свою или историю своей организации.
func CanFavorite(s story.Story, id Identity) bool {
	if id.Anonymous() {
		return false
	}
	return s.Visibility == story.VisibilityPublic || s.OwnerID == id.UserID || sharedOrg(s, id)
}
