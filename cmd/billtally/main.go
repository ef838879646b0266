package main

import (
	"fmt"
	"log"
	"os"

	"github.com/TobiSchelling/billtally/internal/config"
	"github.com/TobiSchelling/billtally/internal/database"
	"github.com/TobiSchelling/billtally/internal/export"
	"github.com/TobiSchelling/billtally/internal/logging"
	"github.com/TobiSchelling/billtally/internal/pipeline"
	"github.com/TobiSchelling/billtally/internal/tabulate"
	"github.com/spf13/cobra"
)

var version = "dev"

const defaultSnapshotPath = "billtally.db"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "billtally",
	Short:        "Legislative vote tallies",
	Long:         "billtally joins legislators, bills, votes and vote results and reports support and opposition counts.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./"+config.FileName+" if present)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statusCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("billtally", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName + " to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := config.FileName
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your input tables.")
		return nil
	},
}

// --- input flags shared by report and import ---

var inputs struct {
	legislators string
	bills       string
	votes       string
	voteResults string
	logFile     string
}

func addInputFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVar(&inputs.bills, "bills-path", def.Inputs.Bills, "Filepath to bills csv file")
	cmd.Flags().StringVar(&inputs.legislators, "legislators-path", def.Inputs.Legislators, "Filepath to legislators csv file")
	cmd.Flags().StringVar(&inputs.votes, "votes-path", def.Inputs.Votes, "Filepath to votes csv file")
	cmd.Flags().StringVar(&inputs.voteResults, "vote-results-path", def.Inputs.VoteResults, "Filepath to vote_results csv file")
	cmd.Flags().StringVar(&inputs.logFile, "log-file", def.Logging.File, "Filepath to the log file (empty disables it)")
}

// applyInputFlags copies explicitly set flags over the loaded config.
func applyInputFlags(cmd *cobra.Command) {
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("bills-path", &cfg.Inputs.Bills, inputs.bills)
	set("legislators-path", &cfg.Inputs.Legislators, inputs.legislators)
	set("votes-path", &cfg.Inputs.Votes, inputs.votes)
	set("vote-results-path", &cfg.Inputs.VoteResults, inputs.voteResults)
	set("log-file", &cfg.Logging.File, inputs.logFile)
}

func openLogger() (*logging.FileLogger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.Open(cfg.Logging.File, os.Stdout, level)
}

// --- report command ---

var (
	outputPath  string
	deliverMode string
	format      string
	reportDB    string
	dryRun      bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a deliverable: 1 = counts per legislator, 2 = counts and sponsor per bill",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyInputFlags(cmd)
		if cmd.Flags().Changed("output-path") {
			cfg.Output.Path = outputPath
		}
		if cmd.Flags().Changed("deliver-mode") {
			cfg.Report.DeliverMode = deliverMode
		}
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = format
		}
		if cmd.Flags().Changed("db") {
			cfg.Snapshot.Path = reportDB
		}

		logger, err := openLogger()
		if err != nil {
			return err
		}
		defer logger.Close()

		logger.Info("Starting program.")
		logger.Info("Parsing arguments.")

		mode, err := tabulate.ParseDeliverable(cfg.Report.DeliverMode)
		if err != nil {
			logger.Critical("Invalid deliverable mode.")
			return nil
		}
		outFormat, err := export.ParseFormat(cfg.Output.Format)
		if err != nil {
			logger.Critical("Invalid output format.")
			return nil
		}

		var source pipeline.Source = pipeline.FileSource{Paths: cfg.Paths()}
		if cfg.Snapshot.Path != "" {
			db, err := database.OpenReadOnly(cfg.Snapshot.Path)
			if err != nil {
				logger.Critical("Error preparing data: " + err.Error())
				return err
			}
			defer db.Close()
			source = db
		}

		opts := pipeline.Options{Deliverable: mode, Format: outFormat, OutputPath: cfg.Output.Path}
		pipe := pipeline.New(source, logger)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(opts)
		} else {
			result = pipe.Run(opts)
		}

		if verbose || dryRun {
			printSteps(result)
		}
		return result.Err()
	},
}

func init() {
	def := config.Default()
	addInputFlags(reportCmd)
	reportCmd.Flags().StringVar(&outputPath, "output-path", def.Output.Path, "Filepath to output file")
	reportCmd.Flags().StringVar(&deliverMode, "deliver-mode", def.Report.DeliverMode, "Deliverable mode. 1 or 2")
	reportCmd.Flags().StringVar(&format, "format", def.Output.Format, "Output format: csv, markdown or html")
	reportCmd.Flags().StringVar(&reportDB, "db", "", "Read tables from a SQLite snapshot instead of the csv files")
	reportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate the deliverable without writing output")
}

func printSteps(result *pipeline.Result) {
	for i, step := range result.Steps {
		fmt.Printf("\nStep %d/3: %s\n", i+1, step.Name)
		if step.Err != nil {
			fmt.Printf("  Error: %v\n", step.Err)
		} else {
			fmt.Printf("  %s\n", step.Summary)
		}
	}
}

// --- import command ---

var importDB string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the csv tables into a SQLite snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyInputFlags(cmd)

		logger, err := openLogger()
		if err != nil {
			return err
		}
		defer logger.Close()

		db, err := database.Open(snapshotPath(cmd, importDB))
		if err != nil {
			return err
		}
		defer db.Close()

		tables, err := pipeline.Import(cfg.Paths(), db, logger)
		if err != nil {
			return err
		}
		fmt.Printf("\nImport complete:\n")
		fmt.Printf("  Legislators: %d\n", len(tables.Legislators))
		fmt.Printf("  Bills: %d\n", len(tables.Bills))
		fmt.Printf("  Votes: %d\n", len(tables.Votes))
		fmt.Printf("  Vote results: %d\n", len(tables.VoteResults))
		return nil
	},
}

func init() {
	addInputFlags(importCmd)
	importCmd.Flags().StringVar(&importDB, "db", defaultSnapshotPath, "Filepath to the SQLite snapshot")
}

// --- status command ---

var statusDB string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenExisting(snapshotPath(cmd, statusDB))
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		last, err := db.GetLastImport()
		if err != nil {
			return fmt.Errorf("getting last import: %w", err)
		}

		fmt.Printf("Snapshot: %s\n\n", db.Path())
		fmt.Println("Tables:")
		fmt.Printf("  Legislators: %d\n", stats.Legislators)
		fmt.Printf("  Bills: %d\n", stats.Bills)
		fmt.Printf("  Votes: %d\n", stats.Votes)
		fmt.Printf("  Vote results: %d\n", stats.VoteResults)
		fmt.Println("\nImports:")
		fmt.Printf("  Total: %d\n", stats.Imports)
		if last != nil && last.ImportedAt != nil {
			fmt.Printf("  Last: %s\n", *last.ImportedAt)
			fmt.Printf("    %s\n    %s\n    %s\n    %s\n",
				last.Paths.Legislators, last.Paths.Bills, last.Paths.Votes, last.Paths.VoteResults)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDB, "db", defaultSnapshotPath, "Filepath to the SQLite snapshot")
}

// snapshotPath prefers an explicit --db, then the configured snapshot, then
// the flag default.
func snapshotPath(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("db") || cfg.Snapshot.Path == "" {
		return flagValue
	}
	return cfg.Snapshot.Path
}
