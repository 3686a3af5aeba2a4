// Command casework prices cabinet sections from job files and manages the
// estimating database.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/casework/internal/config"
	"github.com/Simplici0/casework/internal/db"
	"github.com/Simplici0/casework/internal/logging"
	"github.com/Simplici0/casework/internal/migrations"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/report"
	"github.com/Simplici0/casework/internal/seed"
	"github.com/Simplici0/casework/internal/store"
)

var (
	logger  = zap.NewNop()
	cfg     config.Config
	dbPath  string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "casework",
		Short:        "Cabinet estimating engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			if logger, err = logging.New(level, cfg.IsDev()); err != nil {
				return err
			}
			for _, warning := range cfg.Warnings {
				logger.Warn(warning)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newImportCmd(),
		newResolveCmd(),
		newBreakdownCmd(),
		newExportCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(database *sql.DB) error {
				version, err := migrations.Version(database)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default organization and catalogs if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(database *sql.DB) error {
				stats, err := seed.Run(cmd.Context(), database, seed.Config{OrganizationName: cfg.OrganizationName})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rows\n", stats.Inserts)
				return nil
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <job.yaml>",
		Short: "Store a job file's catalogs, organization, estimate and section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(args[0])
			if err != nil {
				return err
			}

			return withDB(cmd.Context(), func(database *sql.DB) error {
				ctx := cmd.Context()
				s := store.New(database)

				if err := s.SaveSnapshot(ctx, job.Catalog); err != nil {
					return err
				}
				orgID, err := s.CreateOrganization(ctx, *job.Organization)
				if err != nil {
					return err
				}
				var project model.ProjectDefaults
				if job.Project != nil {
					project = *job.Project
				}
				estimateID, err := s.CreateEstimate(ctx, orgID, project)
				if err != nil {
					return err
				}
				section := *job.Section
				section.EstimateID = estimateID
				sectionID, err := s.CreateSection(ctx, section)
				if err != nil {
					return err
				}

				logger.Debug("job imported",
					zap.Int64("organization_id", orgID),
					zap.Int64("estimate_id", estimateID),
					zap.Int64("section_id", sectionID),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "/estimates/%d/sections/%d\n", estimateID, sectionID)
				return nil
			})
		},
	}
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <job.yaml>",
		Short: "Print the effective configuration and finish decisions for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(args[0])
			if err != nil {
				return err
			}
			q, err := job.quote()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(q.Resolution)
		},
	}
}

func newBreakdownCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "breakdown <job.yaml>",
		Short: "Print the cost and labor breakdown for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(args[0])
			if err != nil {
				return err
			}
			q, err := job.quote()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q.Table)
			}
			return report.Text(cmd.OutOrStdout(), job.document(q))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	var formatName, output string
	cmd := &cobra.Command{
		Use:   "export <job.yaml>",
		Short: "Render a job's breakdown as xlsx or pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName = strings.ToLower(formatName)
			if formatName == "" && output != "" {
				formatName = strings.TrimPrefix(filepath.Ext(output), ".")
			}

			var render func(report.Document) ([]byte, error)
			switch formatName {
			case "xlsx":
				render = report.Excel
			case "pdf":
				render = report.PDF
			default:
				return fmt.Errorf("unsupported format %q (want xlsx or pdf)", formatName)
			}

			job, err := loadJob(args[0])
			if err != nil {
				return err
			}
			q, err := job.quote()
			if err != nil {
				return err
			}
			data, err := render(job.document(q))
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + "." + formatName
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Debug("export written", zap.String("file", output), zap.Int("bytes", len(data)))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: xlsx or pdf (defaults to the -o extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

// withDB opens the configured database, applies migrations and runs fn.
func withDB(ctx context.Context, fn func(*sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return err
	}
	logger.Debug("database ready", zap.String("path", cfg.DBPath))
	return fn(database)
}
