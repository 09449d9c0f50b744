package openrouter

// Modelo usado quando o template não especifica nenhum
const DefaultModel = "openai/gpt-4o"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// emailPayload é o JSON que o modelo deve devolver: exatamente subject + content.
// Ponteiros para distinguir campo ausente de string vazia.
type emailPayload struct {
	Subject *string `json:"subject"`
	Content *string `json:"content"`
}

// Result é o resultado etiquetado da geração. Falha de parse, campo faltando ou
// erro de transporte viram Success=false com Message — nunca um erro propagado.
type Result struct {
	Success bool   `json:"success"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}
