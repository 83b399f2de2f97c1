// Package container provides dependency injection for the khoroch-khata application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"fjacquet/khoroch-khata/internal/advisor"
	"fjacquet/khoroch-khata/internal/auth"
	"fjacquet/khoroch-khata/internal/categorizer"
	"fjacquet/khoroch-khata/internal/config"
	"fjacquet/khoroch-khata/internal/identity"
	"fjacquet/khoroch-khata/internal/ledger"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/portability"
	"fjacquet/khoroch-khata/internal/reminder"
	"fjacquet/khoroch-khata/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	fs       afero.Fs
	backend  store.Backend
	store    *store.Store
	ledger   *ledger.Service
	keywords categorizer.KeywordTable
	lookup   *categorizer.Lookup
	backup   *portability.Service
	hasher   auth.Hasher
	advisor  *advisor.Service
	gemini   *advisor.GeminiClient
}

// Option overrides one of the dependencies NewContainer would build.
type Option func(*options)

type options struct {
	logger  logging.Logger
	fs      afero.Fs
	backend store.Backend
	ids     identity.Generator
	client  advisor.Client
}

// WithLogger replaces the logger derived from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFilesystem sets the filesystem used by the file backend, the keyword
// table and exports.
func WithFilesystem(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithBackend bypasses storage.backend.
func WithBackend(b store.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(ids identity.Generator) Option {
	return func(o *options) { o.ids = ids }
}

// WithAdvisorClient injects a generation client regardless of ai.enabled.
func WithAdvisorClient(c advisor.Client) Option {
	return func(o *options) { o.client = c }
}

// NewContainer creates and wires all application dependencies. The state
// document is loaded before it returns.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	fs := o.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	backend := o.backend
	if backend == nil {
		var err error
		if backend, err = newBackend(cfg, fs, logger); err != nil {
			return nil, err
		}
	}

	st := store.New(backend, logger)
	if _, err := st.Load(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	ids := o.ids
	if ids == nil {
		ids = identity.UUIDGenerator{}
	}

	keywords := categorizer.DefaultKeywordTable()
	if cfg.Categorization.KeywordsFile != "" {
		table, err := categorizer.LoadKeywordTable(fs, cfg.Categorization.KeywordsFile)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to load keyword table: %w", err)
		}
		keywords = table
	}

	c := &Container{
		logger:   logger,
		config:   cfg,
		fs:       fs,
		backend:  backend,
		store:    st,
		ledger:   ledger.NewService(st, ids, logger),
		keywords: keywords,
		lookup:   categorizer.NewLookup(keywords, logger),
		backup:   portability.NewService(st, logger),
		hasher:   auth.NewHasher(cfg.Auth.HashPasswords),
	}

	client := o.client
	if client == nil && cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := advisor.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.WithError(err).Warn("AI advisor disabled")
		} else {
			c.gemini = gemini
			client = gemini
		}
	}
	c.advisor = advisor.NewService(client, logger,
		advisor.WithRequestsPerMinute(cfg.AI.RequestsPerMinute),
		advisor.WithTimeout(time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
		advisor.WithMinTransactions(cfg.AI.MinTransactions),
		advisor.WithWeekend(cfg.Weekend()))

	logger.Info("Container initialized successfully",
		logging.Field{Key: "backend", Value: cfg.Storage.Backend},
		logging.Field{Key: "ai_enabled", Value: client != nil})

	return c, nil
}

func newBackend(cfg *config.Config, fs afero.Fs, logger logging.Logger) (store.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendSQLite:
		b, err := store.NewSQLiteBackend(cfg.Storage.Path, cfg.Storage.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return b, nil
	case config.BackendFile, "":
		return store.NewFileBackend(fs, cfg.Storage.Path, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetFilesystem returns the filesystem exports are written to.
func (c *Container) GetFilesystem() afero.Fs {
	return c.fs
}

// GetStore returns the state store.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetLedger returns the service every state mutation goes through.
func (c *Container) GetLedger() *ledger.Service {
	return c.ledger
}

// GetKeywordTable returns the keyword rules in use.
func (c *Container) GetKeywordTable() categorizer.KeywordTable {
	return c.keywords
}

// GetLookup returns the smart category lookup.
func (c *Container) GetLookup() *categorizer.Lookup {
	return c.lookup
}

// GetPortability returns the backup and sync service.
func (c *Container) GetPortability() *portability.Service {
	return c.backup
}

// GetAdvisor returns the spending advisor. It answers ErrAdvisorDisabled
// when no AI client is configured.
func (c *Container) GetAdvisor() *advisor.Service {
	return c.advisor
}

// NewComposer starts a transaction draft against the current state of the
// active profile.
func (c *Container) NewComposer(opts ...categorizer.ComposerOption) *categorizer.Composer {
	state := c.ledger.State()
	hint := time.Duration(c.config.Categorization.HintSeconds) * time.Second
	opts = append([]categorizer.ComposerOption{categorizer.WithHintDuration(hint)}, opts...)
	return categorizer.NewComposer(c.lookup, activeHistory(state), state.Categories, opts...)
}

// activeHistory returns the active profile's transactions in stored order,
// newest first.
func activeHistory(state models.AppState) []models.Transaction {
	history := make([]models.Transaction, 0, len(state.Transactions))
	for _, t := range state.Transactions {
		if t.ProfileID == state.ActiveProfileID {
			history = append(history, t)
		}
	}
	return history
}

// NewGate returns a fresh authentication flow.
func (c *Container) NewGate() *auth.Gate {
	return auth.NewGate(c.ledger, c.hasher, c.config.Auth.MinPasswordLength, c.logger)
}

// NewSweeper returns a reminder sweeper that re-reads the persisted document
// on every tick, so reminders added by other processes are seen.
func (c *Container) NewSweeper(notifier reminder.Notifier, opts ...reminder.Option) *reminder.Sweeper {
	interval := time.Duration(c.config.Reminders.IntervalSeconds) * time.Second
	opts = append([]reminder.Option{reminder.WithInterval(interval)}, opts...)
	return reminder.NewSweeper(storeSource{st: c.store, logger: c.logger}, notifier, c.logger, opts...)
}

type storeSource struct {
	st     *store.Store
	logger logging.Logger
}

func (s storeSource) Snapshot() models.AppState {
	state, err := s.st.Peek(context.Background())
	if err != nil {
		s.logger.WithError(err).Warn("Failed to reload state for reminders")
	}
	return state
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	var firstErr error
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.logger.Info("Container closed")
	return firstErr
}
