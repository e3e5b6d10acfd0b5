package declient

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAuthorizationHook(t *testing.T) {
	t.Parallel()

	hook := AuthorizationHook("Bearer", "token123")
	req, err := hook.BeforeRequest(NewRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", req.Headers["Authorization"])
	assert.Nil(t, hook.AfterRequest)
}

func TestUserAgentHook_respects_existing_header(t *testing.T) {
	t.Parallel()

	hook := UserAgentHook("declient-test/1.0")

	req, err := hook.BeforeRequest(NewRequest())
	require.NoError(t, err)
	assert.Equal(t, "declient-test/1.0", req.Headers["User-Agent"])

	preset := NewRequest().AddHeaders(map[string]string{"User-Agent": "custom"})
	req, err = hook.BeforeRequest(preset)
	require.NoError(t, err)
	assert.Equal(t, "custom", req.Headers["User-Agent"])
}

type capturingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *capturingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

func (l *capturingLogger) Debug(msg string, _ ...any) { l.log(msg) }
func (l *capturingLogger) Info(msg string, _ ...any)  { l.log(msg) }
func (l *capturingLogger) Warn(msg string, _ ...any)  { l.log(msg) }
func (l *capturingLogger) Error(msg string, _ ...any) { l.log(msg) }

func TestLoggingHook_passes_values_through(t *testing.T) {
	t.Parallel()

	logger := &capturingLogger{}
	hook := LoggingHook(logger)

	req := NewRequest().SetMethod("GET").SetPath("/x")
	got, err := hook.BeforeRequest(req)
	require.NoError(t, err)
	assert.Same(t, req, got)

	res := &Result{StatusCode: 200}
	gotRes, err := hook.AfterRequest(req, res)
	require.NoError(t, err)
	assert.Same(t, res, gotRes)

	assert.Equal(t, []string{"request", "response"}, logger.entries)
}

func TestRateLimitHook_blocks_until_slot(t *testing.T) {
	t.Parallel()

	// 1 token, refill every 50ms: the second call must wait.
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	hook := RateLimitHook(limiter)

	start := time.Now()
	_, err := hook.BeforeRequest(NewRequest())
	require.NoError(t, err)
	_, err = hook.BeforeRequest(NewRequest())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRateLimitHook_honors_request_context(t *testing.T) {
	t.Parallel()

	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow(), "drain the only token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	hook := RateLimitHook(limiter)
	_, err := hook.BeforeRequest(NewRequest().SetContext(ctx))
	assert.Error(t, err)
}
