// Package advisor asks a generative model for spending advice on a
// profile's transactions.
package advisor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/report"
)

// MinTransactions is how many transactions unlock advice.
const MinTransactions = 5

const (
	// FallbackMessage replaces the advice when the model cannot be reached.
	FallbackMessage = "দুঃখিত, বর্তমানে AI পরামর্শ পাওয়া যাচ্ছে না। অনুগ্রহ করে পরে চেষ্টা করুন।"
	// EmptyMessage replaces an empty answer.
	EmptyMessage = "কোনো পরামর্শ পাওয়া যায়নি।"
)

var (
	ErrNotEnoughData   = errors.New("not enough transactions for advice")
	ErrAdvisorDisabled = errors.New("advisor is not configured")
)

// Advice is the outcome of one request.
type Advice struct {
	Text     string
	Analysis report.Analysis
	// Fallback is set when Text is FallbackMessage; Err holds the cause.
	Fallback bool
	Err      error
}

// Service gates, throttles and times out requests to a Client. It only
// reads the transactions it is given.
type Service struct {
	client  Client
	limiter *rate.Limiter
	timeout time.Duration
	minTx   int
	weekend []time.Weekday
	logger  logging.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithRequestsPerMinute throttles calls to the client.
func WithRequestsPerMinute(rpm int) Option {
	return func(s *Service) {
		if rpm > 0 {
			s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
		}
	}
}

// WithTimeout bounds a single call to the client.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMinTransactions raises the unlock threshold. Values below
// MinTransactions are ignored.
func WithMinTransactions(n int) Option {
	return func(s *Service) {
		if n > MinTransactions {
			s.minTx = n
		}
	}
}

// WithWeekend sets the rest days used by the analysis.
func WithWeekend(days []time.Weekday) Option {
	return func(s *Service) { s.weekend = days }
}

// NewService creates a Service. A nil client makes every request fail with
// ErrAdvisorDisabled.
func NewService(client Client, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		client:  client,
		limiter: rate.NewLimiter(rate.Inf, 1),
		timeout: 30 * time.Second,
		minTx:   MinTransactions,
		logger:  logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Unlocked reports whether txs is enough to ask for advice.
func (s *Service) Unlocked(txs []models.Transaction) bool {
	return len(txs) >= s.minTx
}

// Progress returns the unlock progress for txs in percent.
func (s *Service) Progress(txs []models.Transaction) int {
	return Progress(len(txs), s.minTx)
}

// Advise analyzes txs and asks the client for advice. Below the minimum
// the client is never called. Client failures are reported through
// Advice.Fallback, not as an error.
func (s *Service) Advise(ctx context.Context, txs []models.Transaction, currency models.CurrencyConfig) (Advice, error) {
	if s.client == nil {
		return Advice{}, ErrAdvisorDisabled
	}
	if !s.Unlocked(txs) {
		return Advice{}, ErrNotEnoughData
	}
	analysis, ok := report.Analyze(txs, s.weekend)
	if !ok {
		return Advice{}, ErrNotEnoughData
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return s.fallback(analysis, err), nil
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.client.Generate(callCtx, SystemInstruction, BuildPrompt(txs, currency))
	if err != nil {
		return s.fallback(analysis, err), nil
	}
	if text == "" {
		text = EmptyMessage
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()},
	).Info("Advice generated")
	return Advice{Text: text, Analysis: analysis}, nil
}

func (s *Service) fallback(a report.Analysis, err error) Advice {
	s.logger.WithError(err).Warn("Advisor unavailable")
	return Advice{Text: FallbackMessage, Analysis: a, Fallback: true, Err: err}
}
