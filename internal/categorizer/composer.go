package categorizer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/models"
)

// DefaultHintDuration is how long the "suggested" flag stays up after the
// keyword pass sets a category.
const DefaultHintDuration = 2 * time.Second

// Composer holds an in-progress transaction and applies lookup suggestions
// to it. It never touches the store; callers submit Draft() themselves.
type Composer struct {
	lookup     *Lookup
	history    []models.Transaction
	categories models.Categories
	now        func() time.Time
	hint       time.Duration

	draft     models.Transaction
	amountSet bool
	pinned    bool
	match     *models.Transaction
	pending   string
	hintUntil time.Time
}

// ComposerOption customizes a Composer.
type ComposerOption func(*Composer)

// WithDefaultCategory pre-selects a category, as the quick payment
// shortcuts do. It does not count as a manual choice.
func WithDefaultCategory(name string) ComposerOption {
	return func(c *Composer) { c.draft.Category = name }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// WithHintDuration overrides DefaultHintDuration.
func WithHintDuration(d time.Duration) ComposerOption {
	return func(c *Composer) { c.hint = d }
}

// WithInitial starts from an existing transaction, for editing.
func WithInitial(tx models.Transaction) ComposerOption {
	return func(c *Composer) {
		c.draft = tx
		c.amountSet = true
		c.pinned = tx.Category != ""
	}
}

// NewComposer creates a Composer over the given history and category set.
// The draft starts as a cash expense dated today.
func NewComposer(lookup *Lookup, history []models.Transaction, categories models.Categories, opts ...ComposerOption) *Composer {
	c := &Composer{
		lookup:     lookup,
		history:    history,
		categories: categories,
		now:        time.Now,
		hint:       DefaultHintDuration,
		draft: models.Transaction{
			Type:          models.TypeExpense,
			PaymentMethod: models.PaymentCash,
			Amount:        decimal.Zero,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.draft.Date.IsZero() {
		c.draft.Date = dateutils.FromTime(c.now())
	}
	return c
}

// SetType switches between income and expense and clears the category.
func (c *Composer) SetType(t models.TransactionType) {
	c.draft.Type = t
	c.draft.Category = ""
	c.pinned = false
	c.pending = ""
}

// SetAmount sets the amount.
func (c *Composer) SetAmount(a decimal.Decimal) {
	c.draft.Amount = a
	c.amountSet = true
}

// SetDate sets the date.
func (c *Composer) SetDate(d dateutils.Date) { c.draft.Date = d }

// SetPaymentMethod sets the payment method.
func (c *Composer) SetPaymentMethod(m models.PaymentMethod) { c.draft.PaymentMethod = m }

// SetCategory records a manual category choice. Later keyword matches are
// held as pending instead of replacing it.
func (c *Composer) SetCategory(name string) {
	c.draft.Category = name
	c.pinned = name != ""
	c.pending = ""
}

// SetNote updates the note and reruns the lookup.
func (c *Composer) SetNote(note string) Suggestion {
	c.draft.Note = note
	if strings.TrimSpace(note) == "" {
		c.match = nil
		c.pending = ""
		c.hintUntil = time.Time{}
		return Suggestion{}
	}

	sug := c.lookup.Run(Input{
		Note:       note,
		Type:       c.draft.Type,
		History:    c.history,
		Categories: c.categories,
	})
	c.match = sug.Match
	c.pending = ""

	switch {
	case sug.Category == "" || sug.Category == c.draft.Category:
	case c.pinned:
		c.pending = sug.Category
	default:
		c.applyCategory(sug.Category)
	}
	return sug
}

func (c *Composer) applyCategory(name string) {
	c.draft.Category = name
	c.hintUntil = c.now().Add(c.hint)
}

// PendingSuggestion returns a keyword suggestion waiting for confirmation
// because the user picked a category by hand.
func (c *Composer) PendingSuggestion() (string, bool) {
	return c.pending, c.pending != ""
}

// AcceptSuggestion applies the pending keyword suggestion.
func (c *Composer) AcceptSuggestion() bool {
	if c.pending == "" {
		return false
	}
	c.applyCategory(c.pending)
	c.pending = ""
	return true
}

// HistoricalMatch returns the past transaction currently offered for reuse.
func (c *Composer) HistoricalMatch() (models.Transaction, bool) {
	if c.match == nil {
		return models.Transaction{}, false
	}
	return *c.match, true
}

// ApplyHistoricalMatch copies amount, category, type and payment method
// from the offered transaction, then withdraws the offer.
func (c *Composer) ApplyHistoricalMatch() bool {
	if c.match == nil {
		return false
	}
	m := c.match
	c.draft.Amount = m.Amount
	c.amountSet = true
	c.draft.Category = m.Category
	c.draft.Type = m.Type
	c.draft.PaymentMethod = m.PaymentMethod
	c.pinned = true
	c.pending = ""
	c.match = nil
	return true
}

// ShowHint reports whether the "suggested" flag is still up.
func (c *Composer) ShowHint() bool {
	return !c.hintUntil.IsZero() && c.now().Before(c.hintUntil)
}

// Ready reports whether the draft has what a submit needs.
func (c *Composer) Ready() bool {
	return c.amountSet && c.draft.Category != "" && !c.draft.Amount.IsNegative()
}

// Draft returns the transaction being composed.
func (c *Composer) Draft() models.Transaction {
	return c.draft
}
