package transaction_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/cmd/profile"
	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/cmd/transaction"
	"fjacquet/khoroch-khata/internal/container"
	"fjacquet/khoroch-khata/internal/identity"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(profile.Cmd, transaction.Cmd)
}

func setup(t *testing.T) {
	t.Helper()
	root.ContainerOptions = []container.Option{
		container.WithFilesystem(afero.NewMemMapFs()),
		container.WithIDGenerator(identity.NewSequenceGenerator("id")),
	}
	root.Now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		root.ContainerOptions = nil
		root.Now = time.Now
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := root.Run(context.Background(), &out, append(args, "--log-level", "error"))
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestTransactionCommand_Metadata(t *testing.T) {
	assert.Equal(t, "transaction", transaction.Cmd.Use)
	assert.Contains(t, transaction.Cmd.Aliases, "tx")
	names := []string{}
	for _, c := range transaction.Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "update", "delete", "list", "share", "suggest"}, names)
}

func TestAdd_SuggestsCategoryFromNote(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")

	out := mustRun(t, "transaction", "add", "--amount", "৫০", "--note", "বাস ভাড়া ৫০ টাকা")
	assert.Contains(t, out, "Suggested category: পরিবহন")
	assert.Contains(t, out, "Saved id-2\t2024-05-10\texpense\tপরিবহন\t৳ 50\tCash")

	list := mustRun(t, "transaction", "list")
	assert.Contains(t, list, "id-2")
	assert.Contains(t, list, "1 transaction(s)")
}

func TestAdd_ManualCategoryIsKept(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")

	out := mustRun(t, "tx", "add", "--amount", "120", "--category", "খাদ্য", "--note", "uber home")
	assert.Contains(t, out, "Keeping খাদ্য; pass --accept-suggestion to use পরিবহন")
	assert.Contains(t, out, "\tখাদ্য\t")

	out = mustRun(t, "tx", "add", "--amount", "120", "--category", "খাদ্য", "--note", "uber home", "--accept-suggestion")
	assert.Contains(t, out, "Using suggested category পরিবহন")
}

func TestAdd_UseHistoricalMatch(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")
	mustRun(t, "tx", "add", "--amount", "300", "--category", "বাজার", "--note", "Weekly fish", "--payment", "bkash")

	out := mustRun(t, "tx", "add", "--note", "weekly", "--use-match")
	assert.Contains(t, out, "Similar entry: Weekly fish | বাজার")
	assert.Contains(t, out, "\tবাজার\t৳ 300\tbKash\tweekly")
}

func TestAdd_RequiresAmountAndCategory(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")

	_, err := run(t, "tx", "add", "--note", "something unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "an amount and a category are required")
}

func TestAdd_WithoutProfileFails(t *testing.T) {
	setup(t)
	_, err := run(t, "tx", "add", "--amount", "10", "--category", "খাদ্য")
	assert.Error(t, err)
}

func TestUpdateDeleteAndShare(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")
	mustRun(t, "tx", "add", "--amount", "500", "--category", "বিল", "--note", "electricity")

	out := mustRun(t, "tx", "update", "id-2", "--amount", "650")
	assert.Contains(t, out, "Saved id-2\t2024-05-10\texpense\tবিল\t৳ 650")

	share := mustRun(t, "tx", "share", "id-2")
	assert.Contains(t, share, "বিল")
	assert.Contains(t, share, "৬৫০")

	mustRun(t, "tx", "delete", "id-2")
	list := mustRun(t, "tx", "list")
	assert.Contains(t, list, "0 transaction(s)")

	_, err := run(t, "tx", "delete", "id-2")
	assert.Error(t, err)
}

func TestList_Filters(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")
	mustRun(t, "tx", "add", "--amount", "100", "--category", "খাদ্য", "--note", "lunch", "--date", "2024-05-09")
	mustRun(t, "tx", "add", "--amount", "900", "--category", "বাজার", "--note", "rice", "--date", "2024-04-20")
	mustRun(t, "tx", "add", "--type", "income", "--amount", "5000", "--category", "বেতন", "--note", "salary")

	tests := []struct {
		name  string
		args  []string
		count string
	}{
		{"all", nil, "3 transaction(s)"},
		{"this month", []string{"--range", "this_month"}, "2 transaction(s)"},
		{"last month", []string{"--range", "last_month"}, "1 transaction(s)"},
		{"custom", []string{"--from", "2024-05-01", "--to", "2024-05-09"}, "1 transaction(s)"},
		{"income only", []string{"--type", "income"}, "1 transaction(s)"},
		{"category", []string{"--category", "বাজার"}, "1 transaction(s)"},
		{"search", []string{"--search", "LUN"}, "1 transaction(s)"},
		{"limit", []string{"--limit", "2"}, "2 transaction(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, append([]string{"tx", "list"}, tt.args...)...)
			assert.Contains(t, out, tt.count)
		})
	}

	_, err := run(t, "tx", "list", "--range", "fortnight")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")

	out := mustRun(t, "tx", "suggest", "মাসের বেতন", "--type", "income")
	assert.Contains(t, out, "Suggested category: বেতন")

	out = mustRun(t, "tx", "suggest", "zzz")
	assert.Contains(t, out, "No suggestion")
}
