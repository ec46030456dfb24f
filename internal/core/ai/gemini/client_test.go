package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"nutriai/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsQuotaError(t *testing.T) {
	assert.False(t, IsQuotaError(nil))
	assert.False(t, IsQuotaError(errors.New("connection reset")))
	assert.True(t, IsQuotaError(status.Error(codes.ResourceExhausted, "limit")))
	assert.True(t, IsQuotaError(fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusTooManyRequests})))
	assert.True(t, IsQuotaError(errors.New("googleapi: Error 429: Quota exceeded for metric")))
	assert.False(t, IsQuotaError(status.Error(codes.InvalidArgument, "bad prompt")))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), providerConfig(""))
	assert.Error(t, err)
}

func providerConfig(key string) provider.Config {
	return provider.Config{APIKey: key}
}
