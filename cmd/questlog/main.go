package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"questlog/internal/bootstrap"
	notifydto "questlog/internal/modules/notify/dto"
	"questlog/internal/platform/config"
	apperrors "questlog/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".questlog")
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "questlog",
		Short:         "Timeboxed XP tracker for tasks and rewards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newCatalogCmd(&dataDir, "task", "tasks", "earnable tasks"))
	root.AddCommand(newCatalogCmd(&dataDir, "reward", "rewards", "spendable rewards"))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the questlog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newCatalogCmd(dataDir *string, use, collection, what string) *cobra.Command {
	parent := &cobra.Command{Use: use, Short: "Manage " + what}

	var baseMinutes int
	var baseXP, multiplier float64

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.Define(context.Background(), collection, args[0], baseMinutes, baseXP, multiplier)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "defined %s: %d min -> %.2f XP (x%.2f)\n", out.Name, out.BaseMinutes, out.BaseXP, out.Multiplier)
			return nil
		},
	}
	addCmd.Flags().IntVar(&baseMinutes, "minutes", 30, "baseline duration in minutes")
	addCmd.Flags().Float64Var(&baseXP, "xp", 10, "XP at the baseline duration")
	addCmd.Flags().Float64Var(&multiplier, "multiplier", 1.0, "growth multiplier per extra baseline")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List definitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defs, err := app.CatalogCLI.List(context.Background(), collection)
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no %s defined\n", what)
				return nil
			}
			for _, d := range defs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %4d min  %8.2f XP  x%.2f\n", d.Name, d.BaseMinutes, d.BaseXP, d.Multiplier)
			}
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.Remove(context.Background(), collection, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	var previewMinutes int
	previewCmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Preview the XP for a given duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.Appraise(context.Background(), collection, args[0], previewMinutes)
			if err != nil {
				return err
			}
			note := ""
			if out.Partial {
				note = " (partial credit)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s for %d min: %.2f XP%s\n", out.Name, out.Minutes, out.XP, note)
			return nil
		},
	}
	previewCmd.Flags().IntVar(&previewMinutes, "minutes", 30, "duration to appraise")

	parent.AddCommand(addCmd, listCmd, rmCmd, previewCmd)
	return parent
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Run timed sessions"}

	var minutes int
	startCmd := &cobra.Command{
		Use:   "start <earn|spend> <name>",
		Short: "Start a timed session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), args[0], args[1], minutes)
			if err != nil {
				var short apperrors.InsufficientBalance
				if errors.As(err, &short) {
					return fmt.Errorf("not enough XP: need %.2f, have %.2f (short %.2f)", short.Required, short.Available, short.Shortfall())
				}
				return err
			}
			verb := "earn"
			if out.Charged {
				verb = "charged, enjoy"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s started: %s, %d min, %.2f XP (%s)\n", out.SessionID, out.Name, out.TargetMinutes, out.Amount, verb)
			return nil
		},
	}
	startCmd.Flags().IntVar(&minutes, "minutes", 30, "session length in minutes")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			tick, err := app.SessionCLI.Tick(context.Background())
			if err != nil {
				if errors.Is(err, apperrors.ErrNoActiveSession) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no session running")
					return nil
				}
				return err
			}
			if tick.Completed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s completed: %.2f XP\n", tick.Name, tick.Amount)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %02d:%02d remaining of %d min\n",
				tick.Name, tick.Kind, tick.RemainingSeconds/60, tick.RemainingSeconds%60, tick.TargetMinutes)
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the countdown until the session completes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			for {
				tick, err := app.SessionCLI.Tick(cmd.Context())
				if err != nil {
					if errors.Is(err, apperrors.ErrNoActiveSession) {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no session running")
						return nil
					}
					return err
				}
				if tick.Completed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s completed: %.2f XP\n", tick.Name, tick.Amount)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\r%s: %02d:%02d remaining ", tick.Name, tick.RemainingSeconds/60, tick.RemainingSeconds%60)
				select {
				case <-cmd.Context().Done():
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
					return cmd.Context().Err()
				case <-time.After(time.Second):
				}
			}
		},
	}

	abandonCmd := &cobra.Command{
		Use:   "abandon",
		Short: "Discard the running session without completing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session abandoned")
			return nil
		},
	}

	session.AddCommand(startCmd, statusCmd, watchCmd, abandonCmd)
	return session
}

func newLogCmd(dataDir *string) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Inspect and edit the XP ledger"}

	var limit int
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			entries, err := app.LedgerCLI.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ledger is empty")
				return nil
			}
			for _, e := range entries {
				sign := "+"
				if e.Kind == "spend" {
					sign = "-"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %s%8.2f XP  %4d min\n",
					e.At.Format("2006-01-02 15:04"), e.Name, sign, e.Amount, e.Minutes)
			}
			return nil
		},
	}
	recentCmd.Flags().IntVar(&limit, "limit", 10, "number of entries")

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			entry, err := app.LedgerCLI.UndoLast(context.Background())
			if err != nil {
				if errors.Is(err, apperrors.ErrEmptyLedger) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to undo")
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s entry: %s %.2f XP\n", entry.Kind, entry.Name, entry.Amount)
			return nil
		},
	}

	logCmd.AddCommand(recentCmd, undoCmd)
	return logCmd
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Show balance and progress"}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current XP balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			balance, err := app.LedgerCLI.Balance(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.2f XP\n", balance)
			return nil
		},
	}

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Show the balance after every entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			points, err := app.LedgerCLI.Series(context.Background())
			if err != nil {
				return err
			}
			for _, p := range points {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %8.2f\n", p.At.Format("2006-01-02 15:04"), p.Balance)
			}
			return nil
		},
	}

	var kind string
	byNameCmd := &cobra.Command{
		Use:   "by-name",
		Short: "Show XP totals per task or reward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			totals, err := app.LedgerCLI.TotalsByName(context.Background(), kind)
			if err != nil {
				return err
			}
			for _, t := range totals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8.2f XP\n", t.Name, t.XP)
			}
			return nil
		},
	}
	byNameCmd.Flags().StringVar(&kind, "kind", "earn", "entry kind: earn|spend")

	var month string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show earned and spent XP per day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			days, err := app.LedgerCLI.TotalsByDate(context.Background())
			if err != nil {
				return err
			}
			for _, d := range days {
				if month != "" && d.Date.Format("2006-01") != month {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  earned %8.2f  spent %8.2f\n", d.Date.Format("2006-01-02"), d.Earned, d.Spent)
			}
			return nil
		},
	}
	calendarCmd.Flags().StringVar(&month, "month", "", "limit to one month (YYYY-MM)")

	stats.AddCommand(balanceCmd, seriesCmd, byNameCmd, calendarCmd)
	return stats
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Manage completion notifiers"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured notifiers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			notifiers, err := app.NotifyCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(notifiers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifiers configured")
				return nil
			}
			for _, n := range notifiers {
				state := "disabled"
				if n.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %s\n", n.Name, state, n.Binary)
			}
			return nil
		},
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check notifier binaries and checksums",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s binary=%v checksum=%v", r.Name, r.BinaryReachable, r.ChecksumValid)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%s", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	testCmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test announcement to every enabled notifier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			err = app.NotifyCLI.Test(context.Background(), notifydto.AnnounceInput{
				Kind:        "earn",
				Name:        "test",
				Minutes:     1,
				Amount:      1,
				CompletedAt: time.Now(),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "test announcement sent")
			return nil
		},
	}

	notify.AddCommand(listCmd, doctorCmd, testCmd)
	return notify
}

func newResetCmd(dataDir *string) *cobra.Command {
	reset := &cobra.Command{Use: "reset", Short: "Clear stored data"}

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Remove all task definitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.Reset(context.Background(), "tasks"); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tasks cleared")
			return nil
		},
	}

	rewardsCmd := &cobra.Command{
		Use:   "rewards",
		Short: "Remove all reward definitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.Reset(context.Background(), "rewards"); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "rewards cleared")
			return nil
		},
	}

	logResetCmd := &cobra.Command{
		Use:   "log",
		Short: "Erase the XP ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.LedgerCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ledger cleared")
			return nil
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Erase definitions, ledger, and any running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.CatalogCLI.Reset(ctx, "tasks"); err != nil {
				return err
			}
			if err := app.CatalogCLI.Reset(ctx, "rewards"); err != nil {
				return err
			}
			if err := app.LedgerCLI.Reset(ctx); err != nil {
				return err
			}
			if err := app.SessionCLI.Reset(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		},
	}

	reset.AddCommand(tasksCmd, rewardsCmd, logResetCmd, allCmd)
	return reset
}
