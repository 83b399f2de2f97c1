// Package backup handles the backup, restore and device sync commands
package backup

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/portability"
)

var (
	output   string
	codeFile string
)

// Cmd represents the backup command
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the whole document to a file or restore it",
	Long: `Export the whole document, every profile included, to a JSON backup file, or
replace the current document with a backup. A file that is not a valid backup
leaves the current data untouched.`,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := root.App.GetPortability().Backup()
		if err != nil {
			return err
		}
		path := output
		if path == "" {
			path = portability.BackupFileName(root.App.GetConfig().Export.BackupPrefix, root.Now())
		}
		if err := afero.WriteFile(root.App.GetFilesystem(), path, data, models.PermissionDataFile); err != nil {
			return fmt.Errorf("failed to write backup %s: %w", path, err)
		}
		fmt.Fprintf(root.Out(cmd), "Backup written to %s\n", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the current document with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := afero.ReadFile(root.App.GetFilesystem(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup %s: %w", args[0], err)
		}
		state, err := root.App.GetPortability().RestoreBackup(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Restored %d profile(s) and %d transaction(s)\n", len(state.Profiles), len(state.Transactions))
		return nil
	},
}

// SyncCmd represents the sync command
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Move the document between devices with a sync code",
	Long: `A sync code is the whole document as one line of text. Generate it on one
device and import it on another to replace that device's data.`,
}

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Print the sync code of the current document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := root.App.GetPortability().SyncCode()
		if err != nil {
			return err
		}
		fmt.Fprintln(root.Out(cmd), code)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [code]",
	Short: "Replace the current document with a sync code",
	Long: `Replace the current document with a sync code given as an argument, read
from --file, or read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readCode(cmd, args)
		if err != nil {
			return err
		}
		state, err := root.App.GetPortability().ImportSyncCode(cmd.Context(), code)
		if err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Imported %d profile(s) and %d transaction(s)\n", len(state.Profiles), len(state.Transactions))
		return nil
	},
}

func readCode(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case codeFile != "":
		data, err := afero.ReadFile(root.App.GetFilesystem(), codeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read sync code %s: %w", codeFile, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read sync code: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

func init() {
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Backup file (default <prefix>-<date>.json)")
	Cmd.AddCommand(exportCmd, restoreCmd)

	importCmd.Flags().StringVar(&codeFile, "file", "", "Read the sync code from a file")
	SyncCmd.AddCommand(codeCmd, importCmd)
}
