package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// Client предоставляет интерфейс для работы с API нейросети
type Client struct {
	client    *openai.Client
	modelName string
	timeout   time.Duration
}

// Config содержит конфигурацию для клиента нейросети
type Config struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Timeout   int
}

// New создает новый экземпляр клиента нейросети
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для Completion Provider")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = openai.GPT3Dot5Turbo
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:    openai.NewClientWithConfig(config),
		modelName: cfg.ModelName,
		timeout:   time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

// Complete выполняет один запрос к API и возвращает сгенерированный текст.
// Ровно одна попытка, без ретраев: обработка ошибки - ответственность
// вызывающей стороны.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("model", c.modelName).Msg("completion request failed")
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("пустой ответ от API: не получены варианты")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("пустой ответ от API")
	}

	log.Debug().Str("model", c.modelName).Int("maxTokens", maxTokens).Msg("completion request succeeded")
	return content, nil
}
