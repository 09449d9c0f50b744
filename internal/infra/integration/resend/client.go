package resend

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

const defaultBaseURL = "https://api.resend.com"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Send: dispara um email pela API. Resposta com id = sucesso; qualquer outro
// formato vira erro com a mensagem do provedor.
func (c *Client) Send(ctx context.Context, from string, to []string, subject, html string) (string, error) {
	// 1. Monta o payload do provedor
	payload := sendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal email: %w", err)
	}

	// 2. Cria Request
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/emails", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	// 3. Envia
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request resend: %w", err)
	}
	defer resp.Body.Close()

	rawBody, _ := io.ReadAll(resp.Body)

	// 4. Decodifica (o provedor devolve JSON também nos erros)
	var response sendEmailResponse
	if err := json.Unmarshal(rawBody, &response); err != nil {
		return "", fmt.Errorf("erro decode resend (status %d): %s", resp.StatusCode, string(rawBody))
	}

	// 5. Só considera sucesso se veio id
	if response.ID == "" {
		msg := response.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return "", fmt.Errorf("resend failed: %s", msg)
	}

	return response.ID, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
