// Package generation wraps a model binding with text extraction, error
// classification and a short linear-backoff retry loop.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clearclause/internal/logging"
	"clearclause/internal/providers"

	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

type FailureReason string

const (
	RateLimited FailureReason = "rate_limited"
	Exhausted   FailureReason = "exhausted"
	Unknown     FailureReason = "unknown"
)

type Request struct {
	Operation   string
	Prompt      string
	MaxAttempts int
	Sampling    providers.Sampling
}

// Result is either a success carrying non-empty Text or a failure with a
// reason. String gives the text or a human-readable failure message.
type Result struct {
	Text     string
	Failure  FailureReason
	Attempts int
	message  string
}

func (r Result) OK() bool {
	return r.Failure == ""
}

func (r Result) String() string {
	if r.OK() {
		return r.Text
	}
	return r.message
}

// Attempt describes one call to the binding, for auditing.
type Attempt struct {
	RequestID string
	Operation string
	Provider  string
	Model     string
	Number    int
	Status    string
	ErrorType providers.ErrorType
	Latency   time.Duration
}

type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, a Attempt)
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithRecorder(r AttemptRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithSleep replaces the wait between attempts. Tests use it to observe
// delays without sleeping.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithFallbacks adds providers tried in order, each with the full attempt
// budget, when the ones before them end in failure.
func WithFallbacks(ps ...providers.LLMProvider) Option {
	return func(c *Client) {
		for _, p := range ps {
			if p != nil {
				c.fallbacks = append(c.fallbacks, p)
			}
		}
	}
}

type Client struct {
	provider    providers.LLMProvider
	fallbacks   []providers.LLMProvider
	logger      *zap.Logger
	recorder    AttemptRecorder
	maxAttempts int
	backoff     time.Duration
	sleep       func(time.Duration)
}

func New(p providers.LLMProvider, opts ...Option) *Client {
	c := &Client{
		provider:    p,
		logger:      zap.NewNop(),
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate never returns an error; failures come back as a Result whose
// String is safe to show to a user. Waits between attempts are not
// interrupted by ctx. When the primary provider fails, each fallback gets
// its own attempt budget; the last failure is reported.
func (c *Client) Generate(ctx context.Context, req Request) Result {
	log := logging.FromContext(ctx, c.logger).With(zap.String("operation", req.Operation))
	if strings.TrimSpace(req.Prompt) == "" {
		log.Warn("generation skipped: empty prompt")
		return Result{Failure: Unknown, message: "Error: Unable to generate response: prompt is empty"}
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = c.maxAttempts
	}

	chain := append([]providers.LLMProvider{c.provider}, c.fallbacks...)
	var (
		res   Result
		total int
	)
	for i, p := range chain {
		if i > 0 {
			log.Warn("falling back to next provider",
				zap.Int("provider_index", i),
				zap.String("previous_failure", string(res.Failure)))
		}
		res = c.run(ctx, log, p, req, maxAttempts)
		total += res.Attempts
		if res.OK() {
			break
		}
	}
	res.Attempts = total
	return res
}

func (c *Client) run(ctx context.Context, log *zap.Logger, p providers.LLMProvider, req Request, maxAttempts int) Result {
	var lastErrType providers.ErrorType
	for attempt := 0; attempt < maxAttempts; attempt++ {
		started := time.Now()
		resp, info, err := c.call(ctx, p, req)
		rec := Attempt{
			RequestID: logging.RequestID(ctx),
			Operation: req.Operation,
			Provider:  info.Name,
			Model:     info.Model,
			Number:    attempt + 1,
			Latency:   time.Since(started),
		}

		if err == nil {
			text := ExtractText(resp)
			if strings.TrimSpace(text) != "" && !strings.Contains(text, NoContentSentinel) {
				rec.Status = "success"
				c.record(ctx, rec)
				return Result{Text: text, Attempts: attempt + 1}
			}
			rec.Status = "empty"
			c.record(ctx, rec)
			lastErrType = ""
			log.Warn("generation attempt returned no content",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxAttempts),
				zap.String("provider", info.Name))
			continue
		}

		errType := providers.ClassifyError(err)
		lastErrType = errType
		rec.Status = "error"
		rec.ErrorType = errType
		c.record(ctx, rec)
		log.Warn("generation attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxAttempts),
			zap.String("provider", info.Name),
			zap.String("error_type", string(errType)),
			zap.Error(err))

		if !errType.Retryable() {
			return Result{
				Failure:  Unknown,
				Attempts: attempt + 1,
				message:  "Error: Unable to generate response. Please try again later.",
			}
		}
		if attempt < maxAttempts-1 {
			c.sleep(c.backoff * time.Duration(attempt+1))
		}
	}

	if lastErrType.Retryable() {
		return Result{
			Failure:  RateLimited,
			Attempts: maxAttempts,
			message:  fmt.Sprintf("Error: Unable to generate response after %d attempts", maxAttempts),
		}
	}
	return Result{Failure: Exhausted, Attempts: maxAttempts, message: "Error: Failed to generate response"}
}

func (c *Client) call(ctx context.Context, p providers.LLMProvider, req Request) (resp providers.Response, info providers.ProviderInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.Generate(ctx, providers.GenerateRequest{
		Operation: req.Operation,
		Prompt:    req.Prompt,
		Sampling:  req.Sampling,
	})
}

func (c *Client) record(ctx context.Context, a Attempt) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordAttempt(ctx, a)
}
