// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fjacquet/khoroch-khata/internal/config"
	"fjacquet/khoroch-khata/internal/container"
	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// App is the dependency container built before every command runs.
	App *container.Container

	// ContainerOptions are passed to every container the root command builds.
	ContainerOptions []container.Option

	// Now is the clock commands read the current date from.
	Now = time.Now

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "khoroch-khata",
		Short: "A local-first expense and income tracker with multiple profiles.",
		Long: `khoroch-khata keeps a personal ledger of income and expenses for several
profiles in a single local document. It suggests categories from your notes,
tracks monthly budgets and reminders, and exports backups, sync codes and CSV reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to khoroch-khata!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if App == nil {
				return
			}
			if err := App.Close(); err != nil {
				Log.Warnf("Failed to close storage: %v", err)
			}
			App = nil
		},
	}

	// SharedFlags hold the persistent options accessible to all commands
	SharedFlags = CommonFlags{}
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	DataPath   string
	Backend    string
	LogLevel   string
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches ./, .khoroch-khata/ and $HOME/.khoroch-khata/)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataPath, "data", "d", "", "Storage path overriding storage.path")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Storage backend: file, sqlite or memory")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level overriding log.level")
}

func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFrom(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.DataPath != "" {
		cfg.Storage.Path = SharedFlags.DataPath
	}
	if SharedFlags.Backend != "" {
		cfg.Storage.Backend = SharedFlags.Backend
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	logger := logging.NewLogrusAdapterFromLogger(Log)
	logging.SetLogger(logger)

	opts := append([]container.Option{container.WithLogger(logger)}, ContainerOptions...)
	App, err = container.NewContainer(cmd.Context(), cfg, opts...)
	return err
}

// Run executes the command tree with args, printing results to out. Flags
// are reset first so Run can be called repeatedly.
func Run(ctx context.Context, out io.Writer, args []string) error {
	ResetFlags(Cmd)
	Cmd.SetOut(out)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(ctx)
	// PersistentPostRun is skipped when a command fails.
	if App != nil {
		_ = App.Close()
		App = nil
	}
	return err
}

// ResetFlags restores every flag of cmd and its children to its default,
// so the command tree can be executed more than once in a process.
func ResetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		ResetFlags(child)
	}
}

// Out returns where cmd prints its results.
func Out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// Currency returns the formatting rule of the loaded document.
func Currency() models.CurrencyConfig {
	return App.GetLedger().State().Currency
}

// ParseType maps "income" or "expense" to a transaction type.
func ParseType(s string) (models.TransactionType, error) {
	t := models.TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q (must be income or expense)", s)
	}
	return t, nil
}

// ParseDate reads a YYYY-MM-DD date, accepting Bengali digits. An empty
// string means today.
func ParseDate(s string) (dateutils.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return dateutils.Today(Now()), nil
	}
	return dateutils.Parse(currencyutils.ToLatinDigits(s))
}

// ParseAmount reads a non-negative amount, accepting Bengali digits and
// currency noise such as "৳" or "টাকা".
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative: %s", s)
	}
	return amount, nil
}

// ParsePaymentMethod matches a payment method ignoring case.
func ParsePaymentMethod(s string) (models.PaymentMethod, error) {
	for _, m := range models.PaymentMethods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}
