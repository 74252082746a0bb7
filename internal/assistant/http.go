package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// systemInstruction frames the model as "بيان", the platform's
// communication-skills tutor.
const systemInstruction = `أنت "بيان"، مساعد ذكي متخصص في مهارات التواصل واللغة العربية، تابع لمنصة ISTA TATA.
دورك هو مساعدة المتدربين في فهم دروس التواصل، تحسين لغتهم، والإجابة على استفساراتهم المعقدة.
يجب أن تكون إجاباتك احترافية ومهذبة، دقيقة لغوياً، مشجعة ومحفزة.`

// HTTPGenerator calls a text-generation endpoint over HTTP.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGenerator(endpoint, apiKey string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	SystemInstruction string `json:"system_instruction"`
	Prompt            string `json:"prompt"`
	Context           string `json:"context,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt, lessonContext string) (string, error) {
	if g.endpoint == "" {
		return "", errors.New("assistant endpoint not configured")
	}

	body, err := json.Marshal(generateRequest{
		SystemInstruction: systemInstruction,
		Prompt:            prompt,
		Context:           lessonContext,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	return out.Text, nil
}
