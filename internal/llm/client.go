// llm — клиент суммаризации ссылок через OpenAI Responses API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/validator"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
)

var (
	// ErrProvider — сбой провайдера модели: сеть, авторизация, квота, пустой ответ.
	ErrProvider = errors.New("llm provider error")
	// ErrNoLinks — нечего суммаризировать.
	ErrNoLinks = errors.New("no links to summarize")
)

// Client реализует service.Summarizer.
// На один вызов Summarize приходится один запрос к модели, сколько бы ссылок ни было.
type Client struct {
	client    *http.Client
	endpoint  string
	apiKey    string
	model     string
	wordLimit int
}

// New создаёт клиента модели. HTTP-клиент настраивается извне.
func New(client *http.Client, cfg config.LLMConfig) *Client {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	wordLimit := cfg.WordLimit
	if wordLimit <= 0 {
		wordLimit = 20
	}

	return &Client{
		client:    client,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		wordLimit: wordLimit,
	}
}

type responsesRequest struct {
	Model        string `json:"model"`
	Input        string `json:"input"`
	Instructions string `json:"instructions,omitempty"`
}

// responsesResponse — часть ответа Responses API. output_text есть в SDK-обёртках,
// «сырое» API отдаёт текст внутри output[].content[].
type responsesResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r responsesResponse) text() string {
	if r.OutputText != "" {
		return r.OutputText
	}

	var b strings.Builder
	for _, item := range r.Output {
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}

	return b.String()
}

// Summarize строит промпт по всем ссылкам, делает один вызов модели и
// передаёт текст ответа в validator.Validate. Ошибка валидации
// (*validator.ValidationError) возвращается как есть.
func (c *Client) Summarize(ctx context.Context, links []string, instructions string) (*models.ArticleBatch, error) {
	const op = "llm.Summarize"

	if len(links) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoLinks)
	}

	raw, err := c.Generate(ctx, BuildPrompt(links, c.wordLimit), instructions)
	if err != nil {
		return nil, err
	}

	batch, err := validator.Validate(raw)
	if err != nil {
		log.From(ctx).Debug("llm_output_rejected",
			slog.String("op", op),
			slog.Int("output_len", len(raw)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	return batch, nil
}

// Generate отправляет один запрос к модели и возвращает «сырой» текст ответа.
func (c *Client) Generate(ctx context.Context, input, instructions string) (string, error) {
	const op = "llm.Generate"

	body, err := json.Marshal(responsesRequest{
		Model:        c.model,
		Input:        input,
		Instructions: instructions,
	})
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: new_request: %w: %v", op, ErrProvider, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.From(ctx).Warn("http_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: do: %w: %v", op, ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%s: status=%d: %w: %s", op, resp.StatusCode, ErrProvider, strings.TrimSpace(string(payload)))
	}

	var out responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode: %w: %v", op, ErrProvider, err)
	}

	if out.Error != nil && out.Error.Message != "" {
		return "", fmt.Errorf("%s: %w: %s", op, ErrProvider, out.Error.Message)
	}

	text := out.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w: empty output", op, ErrProvider)
	}

	return text, nil
}
