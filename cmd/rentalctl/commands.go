package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/leasedesk/rental-portal/internal/app"
	"github.com/leasedesk/rental-portal/internal/business/performance"
	"github.com/leasedesk/rental-portal/internal/platform/config"
	"github.com/leasedesk/rental-portal/internal/platform/database"
	"github.com/leasedesk/rental-portal/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentalctl",
		Short:         "Rental portal maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCmd(),
		mappingsCmd(),
		reportCmd(),
		snapshotCmd(),
	)
	return root
}

// withApp loads the config and backends for one command run.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	// keep stdout clean for command output
	zlog, err := logger.New(cfg.LogLevel, "console", "rentalctl")
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer zlog.Sync()

	a, err := app.New(cmd.Context(), cfg, zlog)
	defer a.Close()
	if err != nil {
		return err
	}
	return fn(a)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				if err := database.Migrate(a.DB); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(database.Models))
				return nil
			})
		},
	}
}

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage unit photo folder mappings",
	}

	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a {\"<unit_id>\": \"<folder>\"} JSON file into the configured backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings, err := readMappingFile(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "would import %d mappings\n", len(mappings))
				return nil
			}
			return withApp(cmd, func(a *app.App) error {
				if err := a.Mappings.Import(cmd.Context(), mappings); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d mappings into %s\n", len(mappings), a.Config.FolderMappingBackend)
				return nil
			})
		},
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")

	getCmd := &cobra.Command{
		Use:   "get <unit_id>",
		Short: "Print the folder mapped to a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				folder, err := a.Mappings.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), folder)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print every mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				all, err := a.Mappings.All(cmd.Context())
				if err != nil {
					return err
				}
				ids := make([]string, 0, len(all))
				for id := range all {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, all[id])
				}
				return nil
			})
		},
	}

	cmd.AddCommand(importCmd, getCmd, listCmd)
	return cmd
}

func readMappingFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	mappings := make(map[string]string)
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for id, folder := range mappings {
		if folder == "" {
			return nil, fmt.Errorf("unit %s has an empty folder", id)
		}
	}
	return mappings, nil
}

func reportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the property performance report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q", format)
			}
			return withApp(cmd, func(a *app.App) error {
				rows, err := a.Performance.Report(cmd.Context())
				if err != nil {
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}

				switch format {
				case "csv":
					return performance.WriteCSV(w, rows)
				case "xlsx":
					return performance.WriteXLSX(w, rows)
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Store the current performance report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				snap, saved, err := a.Performance.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				if !saved {
					fmt.Fprintf(cmd.OutOrStdout(), "unchanged since %s (%s)\n", snap.SnapshotID, snap.GeneratedAt.Format("2006-01-02"))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %s with %d properties\n", snap.SnapshotID, len(snap.Properties))
				return nil
			})
		},
	}
}
