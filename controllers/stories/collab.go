package stories

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/Ari-S-123/story-weaver/controllers/authentication"
	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/models/users"
	"github.com/Ari-S-123/story-weaver/services"
)

// CollabAuth - авторизация сессии совместного редактирования. Владелец и
// участники организации получают полный доступ, остальные - только чтение
// и только для публичных историй. Само разрешение конфликтов целиком на
// стороне внешнего сервиса.
func CollabAuth(w http.ResponseWriter, r *http.Request) {
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

	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	currentStory, ok := fetchStory(w, id)
	if !ok {
		return
	}

	identity := services.Identity{UserID: claims.UserID, OrgID: claims.OrgID}
	hasWriteAccess := services.CanWrite(currentStory, identity)

	// Приватная история без права записи - в сессию не пускаем
	if currentStory.Visibility == story.VisibilityPrivate && !hasWriteAccess {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	access := services.RoomReadAccess
	if hasWriteAccess {
		access = services.RoomFullAccess
	}

	room := fmt.Sprintf("story:%d", currentStory.ID)
	body, status, err := services.AuthorizeRoom(
		os.Getenv("LIVEBLOCKS_SECRET_KEY"),
		room,
		strconv.FormatUint(uint64(user.ID), 10),
		user.Name,
		user.AvatarURL,
		access,
	)
	if err != nil {
		log.Printf("Failed to authorize collaboration session for story %d: %v", id, err)
		http.Error(w, "Failed to authorize collaboration session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
