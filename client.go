package leadscope

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/db"
	dbPostgres "github.com/kailas-cloud/leadscope/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/leadscope/internal/db/redis"
	"github.com/kailas-cloud/leadscope/internal/logger"
	campaignrepo "github.com/kailas-cloud/leadscope/internal/repository/campaign"
	contactrepo "github.com/kailas-cloud/leadscope/internal/repository/contact"
	openaiTransport "github.com/kailas-cloud/leadscope/internal/transport/openai"
	analyzeuc "github.com/kailas-cloud/leadscope/internal/usecase/analyze"
	campaignuc "github.com/kailas-cloud/leadscope/internal/usecase/campaign"
	exportuc "github.com/kailas-cloud/leadscope/internal/usecase/export"
	searchuc "github.com/kailas-cloud/leadscope/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/leadscope/internal/usecase/suggest"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultAssistantModel   = "gpt-4o-mini"
)

// Client is the leadscope entry point.
type Client struct {
	pool      db.SQLStore
	campaigns *dbRedis.Store
	logger    *zap.Logger
	obs       *observer

	analyzer    *analyzeuc.Service
	searchSvc   *searchuc.Service
	exportSvc   *exportuc.Service
	suggestSvc  *suggestuc.Service
	campaignSvc *campaignuc.Service
}

// New opens the contact store, waits for it and wires the services.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readiness: defaultReadinessTimeout}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.dsn == "" {
		return nil, errors.New("leadscope: postgres dsn required (use WithPostgres)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	pool, err := dbPostgres.Open(ctx, dbPostgres.Config{
		DSN:              cfg.dsn,
		MinConns:         cfg.minConns,
		MaxConns:         cfg.maxConns,
		AcquireTimeout:   cfg.acquireTimeout,
		StatementTimeout: cfg.statementTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("leadscope: open contact store: %w", err)
	}
	if err := pool.WaitForReady(ctx, cfg.readiness); err != nil {
		pool.Close()
		return nil, fmt.Errorf("leadscope: contact store not ready: %w", err)
	}

	c := wireClient(pool, cfg, obs)

	if cfg.campaigns != nil {
		if err := c.openCampaigns(ctx, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return c, nil
}

func wireClient(pool db.SQLStore, cfg *clientConfig, obs *observer) *Client {
	l := cfg.logger
	if l == nil {
		l = zap.NewNop()
	}

	// Keep the interface nil, not a typed nil pointer, without an assistant.
	var assistant analyzeuc.Assistant
	if a := cfg.assistant; a != nil && a.apiKey != "" {
		model := a.model
		if model == "" {
			model = defaultAssistantModel
		}
		assistant = openaiTransport.NewAssistant(&openaiTransport.Config{
			APIKey:  a.apiKey,
			BaseURL: a.baseURL,
			Model:   model,
		})
	}

	contacts := contactrepo.New(pool)
	analyzer := analyzeuc.New(assistant)
	return &Client{
		pool:   pool,
		logger: l,
		obs:    obs,

		analyzer: analyzer,
		searchSvc: searchuc.New(contacts, analyzer).
			WithLimits(cfg.defaultPageSize, cfg.maxPageSize),
		exportSvc:  exportuc.New(contacts).WithMaxRows(cfg.maxExportRows),
		suggestSvc: suggestuc.New(contacts),
	}
}

func (c *Client) openCampaigns(ctx context.Context, cfg *clientConfig) error {
	cipher, err := campaignrepo.NewCipher(cfg.campaigns.key)
	if err != nil {
		return fmt.Errorf("leadscope: campaign key: %w", err)
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.campaigns.addrs,
		Password: cfg.campaigns.password,
	})
	if err != nil {
		return fmt.Errorf("leadscope: create campaign store: %w", err)
	}
	if err := store.WaitForReady(ctx, cfg.readiness); err != nil {
		store.Close()
		return fmt.Errorf("leadscope: campaign store not ready: %w", err)
	}

	c.campaigns = store
	c.campaignSvc = campaignuc.New(campaignrepo.New(store, cipher, cfg.campaigns.prefix)).
		WithLimits(cfg.defaultPageSize, cfg.maxPageSize)
	return nil
}

// Close releases the pools.
func (c *Client) Close() {
	if c.campaigns != nil {
		c.campaigns.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
}

// Ping checks contact store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Analyze reads free text into intent and filters without querying.
func (c *Client) Analyze(ctx context.Context, text string) Analysis {
	defer c.obs.observe("analyze", time.Now(), nil)
	return c.analyzer.Analyze(c.withLogger(ctx), text)
}

// Search runs a free-text search. limit <= 0 selects the default page size.
func (c *Client) Search(ctx context.Context, text string, limit int) (res NaturalResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	n, err := c.searchSvc.Natural(c.withLogger(ctx), text, limit)
	if err != nil {
		return NaturalResult{}, err
	}
	return NaturalResult{Contacts: n.Contacts, Total: n.Total, Analysis: n.Analysis}, nil
}

// Find starts a structured search.
func (c *Client) Find() *SearchBuilder {
	return &SearchBuilder{client: c}
}

// ExportCSV writes every row matching b, up to the export cap, as CSV.
// It returns the number of data rows written.
func (c *Client) ExportCSV(ctx context.Context, b *SearchBuilder, w io.Writer) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("export", start, err) }()

	q, err := b.Query()
	if err != nil {
		return 0, err
	}
	return c.exportSvc.Export(c.withLogger(ctx), q, w)
}

// Suggest returns distinct values of field containing partial.
func (c *Client) Suggest(ctx context.Context, field, partial string, limit int) (out []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	return c.suggestSvc.Suggest(c.withLogger(ctx), field, partial, limit)
}

// Aggregations returns the browse-view breakdowns.
func (c *Client) Aggregations(ctx context.Context) (agg Aggregations, err error) {
	start := time.Now()
	defer func() { c.obs.observe("aggregations", start, err) }()

	return c.searchSvc.Aggregations(c.withLogger(ctx))
}

// Statistics returns the scalar summary of the contact store.
func (c *Client) Statistics(ctx context.Context) (st Statistics, err error) {
	start := time.Now()
	defer func() { c.obs.observe("statistics", start, err) }()

	return c.searchSvc.Statistics(c.withLogger(ctx))
}

// SearchCampaigns searches decrypted campaign rows.
func (c *Client) SearchCampaigns(ctx context.Context, text string, limit int) (res CampaignResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_campaigns", start, err) }()

	if c.campaignSvc == nil {
		return CampaignResult{}, ErrCampaignsDisabled
	}
	return c.campaignSvc.Search(c.withLogger(ctx), text, limit)
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
