package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutriai/internal/core/ai/provider"
	"nutriai/internal/pkg/common"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client Gemini API 客戶端
type Client struct {
	config provider.Config
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient 創建 Gemini 客戶端
func NewClient(ctx context.Context, cfg provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0)
	if cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(cfg.MaxTokens))
	}

	return &Client{config: cfg, client: client, model: model}, nil
}

// Generate 將訊息串接為單一文字提示後送出
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	parts := make([]genai.Part, 0, len(req.Messages))
	for _, m := range req.Messages {
		parts = append(parts, genai.Text(m.Content))
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		if IsQuotaError(err) {
			return nil, common.ErrQuotaExceeded.Wrap(err)
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	out := &provider.Response{Content: sb.String()}
	if resp.UsageMetadata != nil {
		out.Usage = provider.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

// IsQuotaError 判斷是否為配額耗盡（ResourceExhausted 或 HTTP 429）
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if status.Code(err) == codes.ResourceExhausted {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "resourceexhausted") || strings.Contains(msg, "resource has been exhausted") || strings.Contains(msg, "quota")
}

// GetModel 獲取模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉連線
func (c *Client) Close() error {
	return c.client.Close()
}
