package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	siteURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL, siteURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		siteURL: siteURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate: faz uma chamada síncrona de chat completion e valida a resposta.
// Todo desfecho volta como Result etiquetado para o caller ramificar uniforme.
func (c *Client) Generate(ctx context.Context, prompt, model string) Result {
	finalModel := model
	if strings.TrimSpace(finalModel) == "" {
		finalModel = DefaultModel
	}

	// 1. Monta o request: system fixo + prompt do usuário, resposta em JSON
	payload := chatCompletionRequest{
		Model: finalModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an AI assistant. Follow the user's instructions carefully and precisely, especially regarding output format."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		MaxTokens:      2048, // corpo HTML pode ser longo
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error building completion request: %v", err)}
	}

	// 2. Cria e envia
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error building completion request: %v", err)}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error during completion API call (%s): %v", finalModel, err)}
	}
	defer resp.Body.Close()

	rawBody, _ := io.ReadAll(resp.Body)

	// 3. Trata erro da API
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Success: false, Message: fmt.Sprintf("Completion API rejected the request (status %d): %s", resp.StatusCode, excerpt(string(rawBody)))}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(rawBody, &completion); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error decoding completion response: %v", err)}
	}
	if completion.Error != nil {
		return Result{Success: false, Message: "Completion API error: " + completion.Error.Message}
	}
	if len(completion.Choices) == 0 {
		return Result{Success: false, Message: "Completion API returned no choices."}
	}

	// 4. O conteúdo do modelo tem que ser o JSON {subject, content}
	content := completion.Choices[0].Message.Content

	var email emailPayload
	if err := json.Unmarshal([]byte(content), &email); err != nil {
		return Result{
			Success: false,
			Message: fmt.Sprintf("AI returned malformed JSON. Response from AI was: '%s'. Error: %v", excerpt(content), err),
		}
	}

	// 5. Ambos os campos precisam existir e não ser nulos
	var missing []string
	if email.Subject == nil {
		missing = append(missing, "subject")
	}
	if email.Content == nil {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return Result{
			Success: false,
			Message: fmt.Sprintf("AI response was valid JSON but missing required fields: %s. Check AI's adherence to output format instructions.", strings.Join(missing, ", ")),
		}
	}

	return Result{Success: true, Subject: *email.Subject, Content: *email.Content}
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.siteURL)
	req.Header.Set("X-Title", "Ligue CRM AI Email")
}

func excerpt(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
