package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Endpoint переопределяется в тестах
var GeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash-001:generateContent"

const assistantSystemPrompt = "You are a helpful writing assistant who is highly skilled in English language and literature. " +
	"Your task is to help a user write their story. You will be given a context of the story and a prompt from the user. " +
	"You will then generate an appropriate, thoughtful, helpful, and relevant response that perfectly addresses the specific " +
	"directions or instructions provided within the user's prompt keeping in mind the context of the story. " +
	"Please do not include any other text than the response to the prompt. Do not use markdown formatting."

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateAssistantText - один вызов генерации текста: контекст истории
// плюс промпт пользователя, ответ модели как есть.
func GenerateAssistantText(apiKey, storyContext, prompt string) (string, error) {
	requestData := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: assistantSystemPrompt}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: "Context: " + storyContext + " Prompt: " + prompt}},
			},
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	req, err := http.NewRequest("POST", GeminiEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var completionResp geminiResponse
	if err := json.Unmarshal(body, &completionResp); err != nil {
		return "", fmt.Errorf("failed to decode API response: %w", err)
	}

	if len(completionResp.Candidates) > 0 && len(completionResp.Candidates[0].Content.Parts) > 0 {
		return completionResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("no text returned by the API")
}
