package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Endpoint переопределяется в тестах
var LiveblocksAuthEndpoint = "https://api.liveblocks.io/v2/authorize-user"

type RoomAccess string

const (
	// RoomFullAccess - полный доступ к совместному редактированию
	RoomFullAccess RoomAccess = "full"
	// RoomReadAccess - только чтение и присутствие
	RoomReadAccess RoomAccess = "read"
)

type roomAuthRequest struct {
	UserID      string              `json:"userId"`
	UserInfo    map[string]string   `json:"userInfo,omitempty"`
	Permissions map[string][]string `json:"permissions"`
}

func permissionsFor(access RoomAccess) []string {
	if access == RoomFullAccess {
		return []string{"room:write"}
	}
	return []string{"room:read", "room:presence:write"}
}

// AuthorizeRoom - выписывает у сервиса совместного редактирования токен
// сессии для комнаты. Возвращает тело ответа сервиса и его статус как есть.
func AuthorizeRoom(secretKey, room, userID, userName, avatarURL string, access RoomAccess) ([]byte, int, error) {
	authReq := roomAuthRequest{
		UserID: userID,
		UserInfo: map[string]string{
			"name":   userName,
			"avatar": avatarURL,
		},
		Permissions: map[string][]string{
			room: permissionsFor(access),
		},
	}

	jsonData, err := json.Marshal(authReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to serialize request: %w", err)
	}

	req, err := http.NewRequest("POST", LiveblocksAuthEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
