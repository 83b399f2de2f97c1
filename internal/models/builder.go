package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/dateutils"
)

// TransactionBuilder provides a fluent API for constructing transactions
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a new TransactionBuilder with default values
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Type:          TypeExpense,
			PaymentMethod: PaymentCash,
			Amount:        decimal.Zero,
		},
	}
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if !t.Valid() {
		b.err = fmt.Errorf("unknown transaction type %q", t)
		return b
	}
	b.tx.Type = t
	return b
}

// WithAmount sets the transaction amount
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithCalendarDate sets the transaction date
func (b *TransactionBuilder) WithCalendarDate(d dateutils.Date) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Date = d
	return b
}

// WithCategory sets the transaction category
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Category = category
	return b
}

// WithNote sets the free-text note
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Note = note
	return b
}

// WithPaymentMethod sets how the transaction was paid
func (b *TransactionBuilder) WithPaymentMethod(method PaymentMethod) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if !method.Valid() {
		b.err = fmt.Errorf("unknown payment method %q", method)
		return b
	}
	b.tx.PaymentMethod = method
	return b
}

// Build validates the transaction and returns the final Transaction
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}

	if b.tx.Date.IsZero() {
		return Transaction{}, errors.New("date is required")
	}
	if b.tx.Amount.IsNegative() {
		return Transaction{}, errors.New("amount must not be negative")
	}
	if strings.TrimSpace(b.tx.Category) == "" {
		return Transaction{}, errors.New("category is required")
	}

	return b.tx, nil
}
