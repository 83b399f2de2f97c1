// Package category handles the category management commands
package category

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/models"
)

var (
	txType string
	icon   string
	rename string
)

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the income and expense categories",
	Long: `Manage the shared income and expense categories. Renaming or deleting a
category never rewrites existing transactions.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories of a type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		for _, c := range root.App.GetLedger().State().Categories.For(t) {
			fmt.Fprintf(root.Out(cmd), "%s\t%s\n", c.Name, c.Icon)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		c, err := root.App.GetLedger().AddCategory(cmd.Context(), t, args[0], icon)
		if err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Added %s category %s\n", t, c.Name)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Rename a category or change its icon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		l := root.App.GetLedger()
		categories := l.State().Categories
		i := categories.IndexFold(t, args[0])
		if i < 0 {
			return fmt.Errorf("category not found: %s", args[0])
		}
		current := categories.For(t)[i]
		name, newIcon := current.Name, current.Icon
		if cmd.Flags().Changed("name") {
			name = rename
		}
		if cmd.Flags().Changed("icon") {
			newIcon = icon
		}
		if err := l.UpdateCategory(cmd.Context(), t, current.Name, name, newIcon); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Updated %s category %s\n", t, name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		if err := root.App.GetLedger().DeleteCategory(cmd.Context(), t, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Deleted %s category %s\n", t, args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, addCmd, updateCmd, deleteCmd} {
		c.Flags().StringVarP(&txType, "type", "t", string(models.TypeExpense), "Category type: income or expense")
	}
	addCmd.Flags().StringVarP(&icon, "icon", "i", models.DefaultCategoryIcon, "Icon token")
	updateCmd.Flags().StringVarP(&icon, "icon", "i", models.DefaultCategoryIcon, "New icon token")
	updateCmd.Flags().StringVarP(&rename, "name", "n", "", "New name")

	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
}
