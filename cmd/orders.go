package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"atelier/app/repositories"

	"github.com/spf13/cobra"
)

func newOrdersCommand(c *cli) *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect stored orders and manage the order ledger",
		Long: `Every accepted order is written to its own JSON file and indexed in the
order ledger, which also hands out order numbers. These commands read the
ledger and back it up or restore it. Stop the server first: only one
process may open the ledger.`,
	}

	ordersCmd.AddCommand(
		newOrdersListCommand(c),
		newOrdersShowCommand(c),
		newOrdersBackupCommand(c),
		newOrdersRestoreCommand(c),
	)
	return ordersCmd
}

// withLedger runs fn with the ledger open
func withLedger(c *cli, fn func(a *app) error) error {
	a := newApp(c.cfg)
	if err := a.openLedger(); err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newOrdersListCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accepted orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(c, func(a *app) error {
				records, err := a.orders.List()
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NUMBER\tRECEIVED\tFILE")
				for _, r := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Sequence, r.ReceivedAt.Format(time.RFC3339), r.FileName)
				}
				return tw.Flush()
			})
		},
	}
}

func newOrdersShowCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Print a stored order after checking it was not modified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order number %q", args[0])
			}

			return withLedger(c, func(a *app) error {
				data, err := a.orders.Read(seq)
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("order %d not found", seq)
				}
				if errors.Is(err, repositories.ErrDigestMismatch) {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: order %d was modified after it was received\n", seq)
				} else if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			})
		},
	}
}

func newOrdersBackupCommand(c *cli) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the order ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				backupDir := filepath.Join(c.cfg.DataDir, "backups")
				if err := os.MkdirAll(backupDir, 0755); err != nil {
					return fmt.Errorf("failed to create backup directory: %w", err)
				}
				out = filepath.Join(backupDir, fmt.Sprintf("ledger_%d.bak", time.Now().Unix()))
			}

			return withLedger(c, func(a *app) error {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create backup file: %w", err)
				}
				defer f.Close()

				if err := a.ledger.Backup(f); err != nil {
					return err
				}
				if err := f.Sync(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ledger backed up successfully to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "backup file (default is <dataDir>/backups/ledger_<unix time>.bak)")
	return cmd
}

func newOrdersRestoreCommand(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the order ledger with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]
			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			return withLedger(c, func(a *app) error {
				records, err := a.ledger.List()
				if err != nil {
					return err
				}
				if len(records) > 0 && !yes {
					if !confirm(cmd, fmt.Sprintf("The ledger holds %d orders. Replace it?", len(records))) {
						fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
						return nil
					}
				}

				f, err := os.Open(backupFile)
				if err != nil {
					return fmt.Errorf("failed to open backup file: %w", err)
				}
				defer f.Close()

				if err := a.ledger.Clear(); err != nil {
					return fmt.Errorf("failed to clear ledger: %w", err)
				}
				if err := a.ledger.Restore(f); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger restored successfully")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace a non-empty ledger without asking")
	return cmd
}
