package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nutriai/internal/core/ai/provider"
	"nutriai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config provider.Config
	client *resty.Client
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []provider.Message `json:"messages"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Temperature float64            `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "NutriAI")

	return &Client{config: cfg, client: client}
}

// Generate 發送 chat completion 請求
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	body := chatRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return nil, common.ErrQuotaExceeded.Wrap(fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), resp.String()))
	default:
		return nil, fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if result.Error != nil {
		if result.Error.Code == http.StatusTooManyRequests || result.Error.Code == http.StatusPaymentRequired {
			return nil, common.ErrQuotaExceeded.Wrap(fmt.Errorf("openrouter: %s", result.Error.Message))
		}
		return nil, fmt.Errorf("OpenRouter error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenRouter response")
	}

	return &provider.Response{
		Content: result.Choices[0].Message.Content,
		Usage:   result.Usage,
	}, nil
}

// GetModel 獲取模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close resty 無需釋放資源
func (c *Client) Close() error {
	return nil
}
