package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

type fakeClient struct {
	text   string
	err    error
	calls  int
	system string
	prompt string
	block  bool
}

func (f *fakeClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system, f.prompt = system, prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

var taka = models.CurrencyConfig{Symbol: "৳", Position: models.PositionPrefix}

func tx(date, category string, amount int64, note string) models.Transaction {
	return models.Transaction{
		ID: date + category, ProfileID: "p1", Type: models.TypeExpense, Category: category,
		Amount: decimal.NewFromInt(amount), Date: dateutils.MustParse(date), Note: note,
		PaymentMethod: models.PaymentCash,
	}
}

func five() []models.Transaction {
	return []models.Transaction{
		tx("2024-05-03", "খাদ্য", 500, "চা ও নাস্তা"),
		tx("2024-05-04", "বিনোদন", 1200, "সিনেমা"),
		tx("2024-05-05", "পরিবহন", 80, "বাস"),
		tx("2024-05-06", "খাদ্য", 300, "লাঞ্চ"),
		tx("2024-05-07", "বাজার", 1500, "সাপ্তাহিক বাজার"),
	}
}

func TestSummaryLine(t *testing.T) {
	line := SummaryLine(tx("2024-05-03", "খাদ্য", 1500, "চা"), taka)
	assert.Equal(t, "2024-05-03 (Friday): expense of ৳ ১,৫০০ for খাদ্য (চা)", line)

	suffix := models.CurrencyConfig{Symbol: "Tk", Position: models.PositionSuffix}
	assert.Contains(t, SummaryLine(tx("2024-05-06", "খাদ্য", 20, ""), suffix), "(Monday): expense of ২০ Tk for খাদ্য ()")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(five(), taka)
	assert.True(t, strings.HasPrefix(prompt, "এখানে আমার সাম্প্রতিক আর্থিক লেনদেনের তথ্য দেওয়া হলো:\n2024-05-03 (Friday)"))
	assert.Contains(t, prompt, "2024-05-07 (Tuesday): expense of ৳ ১,৫০০ for বাজার (সাপ্তাহিক বাজার)\n\n")
	assert.True(t, strings.HasSuffix(prompt, "কারেন্সি হিসেবে '৳' ব্যবহার করুন।"))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		count, threshold, want int
	}{
		{0, 5, 0},
		{2, 5, 40},
		{5, 5, 100},
		{12, 5, 100},
		{3, 0, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(tt.count, tt.threshold))
	}
}

func TestAdvise_Gate(t *testing.T) {
	client := &fakeClient{text: "ভালো"}
	svc := NewService(client, logging.NewMockLogger())

	_, err := svc.Advise(context.Background(), five()[:4], taka)
	assert.ErrorIs(t, err, ErrNotEnoughData)
	assert.Zero(t, client.calls)
	assert.Equal(t, 80, svc.Progress(five()[:4]))
	assert.False(t, svc.Unlocked(five()[:4]))

	_, err = NewService(nil, nil).Advise(context.Background(), five(), taka)
	assert.ErrorIs(t, err, ErrAdvisorDisabled)
}

func TestAdvise_Success(t *testing.T) {
	client := &fakeClient{text: "খরচ কমান"}
	svc := NewService(client, logging.NewMockLogger())

	advice, err := svc.Advise(context.Background(), five(), taka)
	require.NoError(t, err)
	assert.Equal(t, "খরচ কমান", advice.Text)
	assert.False(t, advice.Fallback)
	assert.Equal(t, SystemInstruction, client.system)
	assert.Equal(t, BuildPrompt(five(), taka), client.prompt)

	assert.True(t, decimal.NewFromInt(3580).Equal(advice.Analysis.TotalExpenses))
	assert.True(t, decimal.NewFromInt(1700).Equal(advice.Analysis.WeekendSpending))
	assert.Equal(t, "বাজার", advice.Analysis.TopCategory.Category)
}

func TestAdvise_EmptyAnswer(t *testing.T) {
	svc := NewService(&fakeClient{}, logging.NewMockLogger())
	advice, err := svc.Advise(context.Background(), five(), taka)
	require.NoError(t, err)
	assert.Equal(t, EmptyMessage, advice.Text)
}

func TestAdvise_FailureFallsBack(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc := NewService(&fakeClient{err: boom}, logging.NewMockLogger())

	txs := five()
	advice, err := svc.Advise(context.Background(), txs, taka)
	require.NoError(t, err)
	assert.True(t, advice.Fallback)
	assert.Equal(t, FallbackMessage, advice.Text)
	assert.ErrorIs(t, advice.Err, boom)
	assert.Equal(t, five(), txs)
}

func TestAdvise_Timeout(t *testing.T) {
	svc := NewService(&fakeClient{block: true}, logging.NewMockLogger(), WithTimeout(10*time.Millisecond))
	advice, err := svc.Advise(context.Background(), five(), taka)
	require.NoError(t, err)
	assert.True(t, advice.Fallback)
	assert.ErrorIs(t, advice.Err, context.DeadlineExceeded)
}

func TestAdvise_RateLimited(t *testing.T) {
	client := &fakeClient{text: "ok"}
	svc := NewService(client, logging.NewMockLogger(), WithRequestsPerMinute(1))

	_, err := svc.Advise(context.Background(), five(), taka)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	advice, err := svc.Advise(ctx, five(), taka)
	require.NoError(t, err)
	assert.True(t, advice.Fallback)
	assert.Equal(t, 1, client.calls)
}

func TestAdvise_MinTransactionsOption(t *testing.T) {
	tests := []struct {
		name      string
		min       int
		count     int
		wantErr   error
		wantCalls int
	}{
		{name: "lower threshold is ignored", min: 2, count: 2, wantErr: ErrNotEnoughData},
		{name: "zero threshold is ignored", min: 0, count: 4, wantErr: ErrNotEnoughData},
		{name: "default threshold still unlocks", min: 2, count: 5, wantCalls: 1},
		{name: "higher threshold applies", min: 8, count: 5, wantErr: ErrNotEnoughData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{text: "ok"}
			svc := NewService(client, nil, WithMinTransactions(tt.min))
			txs := make([]models.Transaction, 0, tt.count)
			for len(txs) < tt.count {
				txs = append(txs, five()...)
			}
			_, err := svc.Advise(context.Background(), txs[:tt.count], taka)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, client.calls)
		})
	}
}
