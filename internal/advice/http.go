package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// requestTimeout caps a single phrase-generation call. The call is
// fire-and-forget from the frame loop's point of view, but an abandoned
// goroutine should still not linger.
const requestTimeout = 10 * time.Second

// HTTPProvider calls the external phrase-generation service. The service
// is rate-limit-sensitive, so calls pass through a local non-blocking
// limiter: a frame that arrives while the limiter is exhausted has its
// call dropped, not queued.
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHTTPProvider creates a provider for the coach phrase service.
// minInterval is the smallest allowed gap between outbound calls.
func NewHTTPProvider(endpoint, apiKey string, minInterval time.Duration) *HTTPProvider {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	return &HTTPProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Name returns the provider identifier for logging.
func (p *HTTPProvider) Name() string {
	return "coach-api"
}

// Available returns true if an endpoint is configured.
func (p *HTTPProvider) Available() bool {
	return p.endpoint != ""
}

// Generate requests one phrase from the service. Returns an error when the
// local limiter is exhausted, the call fails, or the response is unusable;
// the caller falls back to canned phrases in every such case.
func (p *HTTPProvider) Generate(ctx context.Context, req Request) (string, error) {
	if !p.limiter.Allow() {
		return "", fmt.Errorf("advice rate limit: call dropped")
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coach API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", fmt.Errorf("coach API returned empty text")
	}

	return parsed.Text, nil
}
