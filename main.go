package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/khoroch-khata/cmd/auth"
	"fjacquet/khoroch-khata/cmd/backup"
	"fjacquet/khoroch-khata/cmd/budget"
	"fjacquet/khoroch-khata/cmd/category"
	"fjacquet/khoroch-khata/cmd/insights"
	"fjacquet/khoroch-khata/cmd/profile"
	"fjacquet/khoroch-khata/cmd/reminder"
	"fjacquet/khoroch-khata/cmd/report"
	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/cmd/settings"
	"fjacquet/khoroch-khata/cmd/transaction"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(profile.Cmd)
	root.Cmd.AddCommand(transaction.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(reminder.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(backup.Cmd)
	root.Cmd.AddCommand(backup.SyncCmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(auth.Cmd)
	root.Cmd.AddCommand(settings.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
