package client

import (
	"context"
	"time"

	"bitlink/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client is a minimal interface to allow mocking in tests.
type Client interface {
	Post(ctx context.Context, tag string, rec map[string]any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client *fluent.Fluent
}

// audit log 只是附帶紀錄：重試一次、等待上限很短，避免卡住互動輸入
const (
	defaultTimeout = time.Second
	maxRetry       = 1
	retryWait      = 100 // ms
	maxRetryWait   = 500 // ms
)

// NewFluentdClient creates a Fluentd forward client. It returns a NoopClient
// when no host is configured or the server cannot be reached, so lookups
// never fail because of the audit sink.
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if config.Fluentd.Host == "" {
		return &NoopClient{}, func() {}, nil
	}
	prefix := "bitlink"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	timeout := defaultTimeout
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost:         config.Fluentd.Host,
		FluentPort:         config.Fluentd.Port,
		Timeout:            timeout,
		WriteTimeout:       timeout,
		TagPrefix:          prefix,
		Async:              config.Fluentd.Async,
		ForceStopAsyncSend: config.Fluentd.Async,
		MaxRetry:           maxRetry,
		RetryWait:          retryWait,
		MaxRetryWait:       maxRetryWait,
	})
	if err != nil {
		logger.Warn("fluentd unreachable, lookup audit log disabled",
			zap.String("host", config.Fluentd.Host),
			zap.Int("port", config.Fluentd.Port),
			zap.Error(err),
		)
		return &NoopClient{}, func() {}, nil
	}
	fluentdClient := &FluentdClient{client: f}

	cleanup := func() {
		if err := fluentdClient.Close(); err != nil {
			logger.Warn("failed to close fluentd client", zap.Error(err))
		}
	}
	return fluentdClient, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post sends a record to Fluentd; fluent prepends the configured TagPrefix.
// e.g. tag="lookup_log" => "bitlink.lookup_log"
func (c *FluentdClient) Post(ctx context.Context, tag string, rec map[string]any) error {
	// fluent-logger-golang doesn't support context cancellation directly.
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Post(tag, rec)
}

// --------------------
// Noop client (disabled mode)
// --------------------

type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, rec map[string]any) error { return nil }
func (n *NoopClient) Close() error                                                   { return nil }
