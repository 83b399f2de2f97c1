package budget_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/cmd/budget"
	"fjacquet/khoroch-khata/cmd/profile"
	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/cmd/transaction"
	"fjacquet/khoroch-khata/internal/container"
	"fjacquet/khoroch-khata/internal/identity"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(budget.Cmd, profile.Cmd, transaction.Cmd)
}

func setup(t *testing.T) {
	t.Helper()
	root.ContainerOptions = []container.Option{
		container.WithFilesystem(afero.NewMemMapFs()),
		container.WithIDGenerator(identity.NewSequenceGenerator("id")),
	}
	root.Now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }
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

func TestBudgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget", budget.Cmd.Use)
	assert.Len(t, budget.Cmd.Commands(), 2)
}

func TestBudgetProgress(t *testing.T) {
	setup(t)
	mustRun(t, "profile", "add", "--name", "Rahim")

	assert.Contains(t, mustRun(t, "budget", "show"), "No budgets set")

	assert.Contains(t, mustRun(t, "budget", "set", "খাদ্য", "1000"), "Budget for খাদ্য set to ৳ 1,000")
	mustRun(t, "budget", "set", "বাজার", "৫০০")
	mustRun(t, "budget", "set", "বিল", "0")

	mustRun(t, "tx", "add", "--amount", "600", "--category", "খাদ্য", "--date", "2024-05-02")
	mustRun(t, "tx", "add", "--amount", "700", "--category", "বাজার", "--date", "2024-05-03")
	mustRun(t, "tx", "add", "--amount", "900", "--category", "খাদ্য", "--date", "2024-04-30")

	out := mustRun(t, "budget", "show")
	assert.Contains(t, out, "খাদ্য\t৳ 600 / ৳ 1,000\t60%\n")
	assert.Contains(t, out, "বাজার\t৳ 700 / ৳ 500\t100%\tLIMIT REACHED")
	assert.NotContains(t, out, "বিল", "zero limits are hidden")
}

func TestBudgetErrors(t *testing.T) {
	setup(t)

	_, err := run(t, "budget", "set", "খাদ্য", "100")
	assert.Error(t, err, "no active profile")

	mustRun(t, "profile", "add", "--name", "Rahim")
	_, err = run(t, "budget", "set", "খাদ্য", "-5")
	assert.Error(t, err)
	_, err = run(t, "budget", "set", "খাদ্য")
	assert.Error(t, err)
}
