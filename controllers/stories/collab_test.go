package stories

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ari-S-123/story-weaver/models/story"
	"github.com/Ari-S-123/story-weaver/services"
)

// fakeCollabService перехватывает запрос авторизации комнаты и возвращает
// выданные права, чтобы проверить full vs read-only грант.
func fakeCollabService(t *testing.T) map[string][]string {
	t.Helper()
	granted := map[string][]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID      string              `json:"userId"`
			Permissions map[string][]string `json:"permissions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode collab auth request: %v", err)
		}
		for room, perms := range body.Permissions {
			granted[room] = perms
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": "collab-token"})
	}))
	t.Cleanup(server.Close)
	services.LiveblocksAuthEndpoint = server.URL
	return granted
}

func TestCollabAuthFullAccessForOwner(t *testing.T) {
	setupTestDB(t)
	granted := fakeCollabService(t)
	router := testRouter()
	seedUser(t, 1, 0, "alice")
	s := seedStory(t, 1, 0, "Mine", story.VisibilityPrivate)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/stories/%d/collab-auth", s.ID), bearerToken(t, 1, 0), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	room := fmt.Sprintf("story:%d", s.ID)
	perms := granted[room]
	if len(perms) != 1 || perms[0] != "room:write" {
		t.Errorf("granted permissions = %v, want [room:write]", perms)
	}

	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["token"] != "collab-token" {
		t.Errorf("token = %q, want passthrough of service response", body["token"])
	}
}

func TestCollabAuthReadOnlyForPublicStory(t *testing.T) {
	setupTestDB(t)
	granted := fakeCollabService(t)
	router := testRouter()
	seedUser(t, 2, 0, "bob")
	s := seedStory(t, 1, 0, "Public", story.VisibilityPublic)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/stories/%d/collab-auth", s.ID), bearerToken(t, 2, 0), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusOK)
	}

	room := fmt.Sprintf("story:%d", s.ID)
	perms := granted[room]
	if len(perms) != 2 || perms[0] != "room:read" {
		t.Errorf("granted permissions = %v, want read-only grant", perms)
	}
}

func TestCollabAuthDeniedForPrivateStory(t *testing.T) {
	setupTestDB(t)
	fakeCollabService(t)
	router := testRouter()
	seedUser(t, 2, 0, "bob")
	s := seedStory(t, 1, 0, "Private", story.VisibilityPrivate)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/stories/%d/collab-auth", s.ID), bearerToken(t, 2, 0), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("got %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/stories/%d/collab-auth", s.ID), "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = doRequest(t, router, http.MethodPost, "/stories/9999/collab-auth", bearerToken(t, 2, 0), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing story: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
