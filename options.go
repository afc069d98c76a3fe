package leadscope

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	dsn              string
	minConns         int32
	maxConns         int32
	acquireTimeout   time.Duration
	statementTimeout time.Duration
	readiness        time.Duration

	defaultPageSize int
	maxPageSize     int
	maxExportRows   int

	assistant *assistantConfig
	campaigns *campaignConfig

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

type assistantConfig struct {
	apiKey  string
	baseURL string
	model   string
}

type campaignConfig struct {
	addrs    []string
	password string
	key      []byte
	prefix   string
}

// WithPostgres sets the contact store DSN. Required.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dsn = dsn
	}
}

// WithPoolSize bounds the number of pooled connections.
func WithPoolSize(minConns, maxConns int32) Option {
	return func(c *clientConfig) {
		c.minConns = minConns
		c.maxConns = maxConns
	}
}

// WithTimeouts sets the connection acquire deadline and the server-side
// statement timeout.
func WithTimeouts(acquire, statement time.Duration) Option {
	return func(c *clientConfig) {
		c.acquireTimeout = acquire
		c.statementTimeout = statement
	}
}

// WithReadinessTimeout bounds how long New waits for the stores to answer.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readiness = d
	}
}

// WithPageSizes sets the default and maximum page sizes.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	}
}

// WithMaxExportRows lowers the CSV export cap.
func WithMaxExportRows(n int) Option {
	return func(c *clientConfig) {
		c.maxExportRows = n
	}
}

// WithAssistant enables the language-model assistant for general searches.
// An empty model selects the default.
func WithAssistant(apiKey, model string) Option {
	return func(c *clientConfig) {
		c.assistant = &assistantConfig{apiKey: apiKey, model: model}
	}
}

// WithAssistantBaseURL points the assistant at an OpenAI-compatible endpoint.
func WithAssistantBaseURL(url string) Option {
	return func(c *clientConfig) {
		if c.assistant == nil {
			c.assistant = &assistantConfig{}
		}
		c.assistant.baseURL = url
	}
}

// WithCampaigns enables campaign search over the Redis store at addr.
// key is the 32-byte payload key; prefix namespaces the campaign hashes.
func WithCampaigns(addr, password string, key []byte, prefix string) Option {
	return func(c *clientConfig) {
		c.campaigns = &campaignConfig{
			addrs:    []string{addr},
			password: password,
			key:      key,
			prefix:   prefix,
		}
	}
}

// WithLogger sets the logger used for skipped campaigns and assistant failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithPrometheus registers client metrics (operation counts and durations)
// on reg. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.metricsReg = reg
	}
}
