package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/cmd/profile"
	"fjacquet/khoroch-khata/cmd/report"
	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/cmd/transaction"
	"fjacquet/khoroch-khata/internal/container"
	"fjacquet/khoroch-khata/internal/identity"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(report.Cmd, profile.Cmd, transaction.Cmd)
}

func setup(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	root.ContainerOptions = []container.Option{
		container.WithFilesystem(fs),
		container.WithIDGenerator(identity.NewSequenceGenerator("id")),
	}
	root.Now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		root.ContainerOptions = nil
		root.Now = time.Now
	})
	return fs
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

func seed(t *testing.T) {
	t.Helper()
	mustRun(t, "profile", "add", "--name", "Rahim")
	mustRun(t, "tx", "add", "--type", "income", "--amount", "30000", "--category", "বেতন", "--date", "2024-05-01")
	mustRun(t, "tx", "add", "--amount", "1200", "--category", "খাদ্য", "--date", "2024-05-02", "--note", "dinner")
	mustRun(t, "tx", "add", "--amount", "800", "--category", "বাজার", "--date", "2024-05-03")
	mustRun(t, "tx", "add", "--amount", "500", "--category", "খাদ্য", "--date", "2024-04-28")
}

func TestReportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "report", report.Cmd.Use)
	assert.Contains(t, report.Cmd.Long, "Example")
}

func TestSummary_Text(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "report", "summary")
	assert.Contains(t, out, "Rahim (this_month)")
	assert.Contains(t, out, "income   ৳ 30,000")
	assert.Contains(t, out, "expense  ৳ 2,000")
	assert.Contains(t, out, "balance  ৳ 28,000")
	assert.Contains(t, out, "  খাদ্য\t৳ 1,200")
}

func TestSummary_JSON(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "report", "summary", "--range", "all", "--format", "json")
	var summary struct {
		Profile string `json:"profile"`
		Count   int    `json:"count"`
		Totals  struct {
			Expense json.Number `json:"expense"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "Rahim", summary.Profile)
	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, "2500", summary.Totals.Expense.String())
}

func TestSummary_YAMLAndErrors(t *testing.T) {
	setup(t)

	_, err := run(t, "report", "summary")
	assert.Error(t, err, "no profile yet")

	seed(t)
	out := mustRun(t, "report", "summary", "--range", "last_month", "--format", "yaml")
	assert.Contains(t, out, "profile: Rahim")
	assert.Contains(t, out, "count: 1")

	_, err = run(t, "report", "summary", "--format", "xml")
	assert.Error(t, err)
}

func TestCSVExport(t *testing.T) {
	fs := setup(t)
	seed(t)

	out := mustRun(t, "report", "csv", "--range", "this_month")
	assert.Contains(t, out, "Exported 3 transaction(s) to Report-2024-05-20.csv")

	data, err := afero.ReadFile(fs, "Report-2024-05-20.csv")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbf")), "Excel needs the byte order mark")
	assert.Contains(t, string(data), "dinner")

	mustRun(t, "report", "csv", "--output", "all.csv")
	exists, err := afero.Exists(fs, "all.csv")
	require.NoError(t, err)
	assert.True(t, exists)
}
