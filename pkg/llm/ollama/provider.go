package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"doc-manager-be/pkg/llm"
)

type OllamaProvider struct {
	baseURL      string
	defaultModel string
}

func NewOllamaProvider(baseURL, defaultModel string) llm.LLMProvider {
	return &OllamaProvider{
		baseURL:      baseURL,
		defaultModel: defaultModel,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

func (p *OllamaProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}

	model := p.defaultModel
	if opts.Model != "" {
		model = opts.Model
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		messages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	reqBody := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error from ollama response, code %d, body %s", res.StatusCode, string(resBytes))
	}

	var parsed chatResponse
	if err := json.Unmarshal(resBytes, &parsed); err != nil {
		return "", err
	}
	return parsed.Message.Content, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
