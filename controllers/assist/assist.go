package assist

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/Ari-S-123/story-weaver/services"
)

type generateRequest struct {
	Context string `json:"context"`
	Prompt  string `json:"prompt"`
}

// GenerateHandler - прокси к генерации текста: контекст истории и промпт
// пользователя внутрь, сгенерированный текст наружу.
func GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var reqBody generateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if reqBody.Prompt == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Prompt is required"})
		return
	}

	apiKey := os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY")
	if apiKey == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "API key is not configured"})
		return
	}

	text, err := services.GenerateAssistantText(apiKey, reqBody.Context, reqBody.Prompt)
	if err != nil {
		log.Printf("Error generating AI response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate response"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": text})
}
