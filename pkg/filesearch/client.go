package filesearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docrag-be/internal/constant"
	"docrag-be/internal/pkg/logger"
)

const (
	DefaultPollInterval    = 3 * time.Second
	DefaultMaxPollAttempts = 100

	logModule = "FILE_SEARCH"
)

// Client mediates every interaction with the file search provider.
// A nil *Client is valid and fails every call with ErrNotInitialized.
type Client struct {
	api             StoreAPI
	generator       Generator
	pollInterval    time.Duration
	maxPollAttempts int
	sleep           func(ctx context.Context, d time.Duration) error
	logger          logger.ILogger
}

type Option func(*Client)

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxPollAttempts bounds the number of status checks per upload. Zero means unbounded.
func WithMaxPollAttempts(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxPollAttempts = n
		}
	}
}

func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func WithLogger(l logger.ILogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(api StoreAPI, generator Generator, opts ...Option) (*Client, error) {
	if api == nil || generator == nil {
		return nil, ErrNotInitialized
	}

	c := &Client{
		api:             api,
		generator:       generator,
		pollInterval:    DefaultPollInterval,
		maxPollAttempts: DefaultMaxPollAttempts,
		sleep:           sleepContext,
		logger:          logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) ready() error {
	if c == nil || c.api == nil || c.generator == nil {
		return ErrNotInitialized
	}
	return nil
}

func (c *Client) CreateStore(ctx context.Context, displayName string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	store, err := c.api.CreateStore(ctx, displayName)
	if err != nil {
		return "", fmt.Errorf("create store %q: %w", displayName, err)
	}
	if store == nil || store.Name == "" {
		return "", ErrMissingStoreName
	}

	c.logger.Info(logModule, "Store created", map[string]interface{}{
		"store":        store.Name,
		"display_name": displayName,
	})
	return store.Name, nil
}

type uploadOptions struct {
	progress func(attempt int, elapsed time.Duration)
}

type UploadOption func(*uploadOptions)

// WithProgress is called after every status check with the attempt number
// and the time spent waiting so far.
func WithProgress(fn func(attempt int, elapsed time.Duration)) UploadOption {
	return func(o *uploadOptions) {
		o.progress = fn
	}
}

// UploadFile submits the file and blocks until the provider finishes indexing it.
// Status is re-checked at a constant interval; a failed check aborts the upload.
func (c *Client) UploadFile(ctx context.Context, storeName string, file FileUpload, opts ...UploadOption) error {
	if err := c.ready(); err != nil {
		return err
	}

	var o uploadOptions
	for _, opt := range opts {
		opt(&o)
	}

	op, err := c.api.UploadToStore(ctx, storeName, file)
	if err != nil {
		return fmt.Errorf("upload %q to %s: %w", file.Name, storeName, err)
	}
	if op == nil {
		return fmt.Errorf("upload %q to %s: no operation returned", file.Name, storeName)
	}

	var elapsed time.Duration
	for attempt := 1; !op.Done; attempt++ {
		if c.maxPollAttempts > 0 && attempt > c.maxPollAttempts {
			return fmt.Errorf("%w: %s after %d checks", ErrOperationTimeout, op.Name, c.maxPollAttempts)
		}

		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return err
		}
		elapsed += c.pollInterval

		next, err := c.api.GetOperation(ctx, op.Name)
		if err != nil {
			return fmt.Errorf("check upload operation %s: %w", op.Name, err)
		}
		if next == nil {
			return fmt.Errorf("check upload operation %s: empty status", op.Name)
		}
		op = next

		if o.progress != nil {
			o.progress(attempt, elapsed)
		}
	}

	if op.Error != nil {
		return fmt.Errorf("%w: %s (code %d)", ErrOperationFailed, op.Error.Message, op.Error.Code)
	}

	c.logger.Info(logModule, "File indexed", map[string]interface{}{
		"store":   storeName,
		"file":    file.Name,
		"elapsed": elapsed.String(),
	})
	return nil
}

func (c *Client) Query(ctx context.Context, storeName, query string) (*QueryResult, error) {
	return c.QueryWithHistory(ctx, storeName, query, nil)
}

// QueryWithHistory is Query with earlier turns of the conversation prepended.
// The last turn is assumed to be the current question and is skipped.
func (c *Client) QueryWithHistory(ctx context.Context, storeName, query string, history []Turn) (*QueryResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	res, err := c.generator.Generate(ctx, GenerateRequest{
		StoreNames:        []string{storeName},
		SystemInstruction: constant.FileSearchSystemPrompt,
		Prompt:            buildQueryPrompt(query, history),
	})
	if err != nil {
		return nil, fmt.Errorf("query store %s: %w", storeName, err)
	}

	result := &QueryResult{
		Text:            res.Text,
		GroundingChunks: res.GroundingChunks,
	}
	if result.GroundingChunks == nil {
		result.GroundingChunks = []GroundingChunk{}
	}
	return result, nil
}

// GenerateExampleQuestions never fails: anything unexpected is logged and
// yields an empty list.
func (c *Client) GenerateExampleQuestions(ctx context.Context, storeName string) []string {
	if err := c.ready(); err != nil {
		if c != nil && c.logger != nil {
			c.logger.Warn(logModule, "Example questions skipped", map[string]interface{}{"error": err.Error()})
		}
		return []string{}
	}

	res, err := c.generator.Generate(ctx, GenerateRequest{
		StoreNames: []string{storeName},
		Prompt:     constant.ExampleQuestionsPrompt,
	})
	if err != nil {
		c.logger.Warn(logModule, "Failed to generate example questions", map[string]interface{}{
			"store": storeName,
			"error": err.Error(),
		})
		return []string{}
	}

	questions, err := ParseExampleQuestions(res.Text)
	if err != nil {
		c.logger.Warn(logModule, "Received unexpected format for example questions", map[string]interface{}{
			"store": storeName,
			"error": err.Error(),
			"raw":   res.Text,
		})
	}
	return questions
}

func (c *Client) DeleteStore(ctx context.Context, storeName string) error {
	if err := c.ready(); err != nil {
		return err
	}

	if err := c.api.DeleteStore(ctx, storeName, true); err != nil {
		return fmt.Errorf("delete store %s: %w", storeName, err)
	}

	c.logger.Info(logModule, "Store deleted", map[string]interface{}{"store": storeName})
	return nil
}

func buildQueryPrompt(query string, history []Turn) string {
	question := fmt.Sprintf(constant.FileSearchQueryTemplate, query)
	if len(history) <= 1 {
		return question
	}

	var b strings.Builder
	b.WriteString(constant.FileSearchHistoryHeader)
	b.WriteString("\n")
	for _, turn := range history[:len(history)-1] {
		label := constant.FileSearchHistoryModel
		if turn.Role == constant.ChatMessageRoleUser {
			label = constant.FileSearchHistoryUser
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
	}
	b.WriteString("\n")
	b.WriteString(constant.FileSearchCurrentHeader)
	b.WriteString("\n")
	b.WriteString(question)
	return b.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
