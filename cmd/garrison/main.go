// Package main provides the garrison CLI: roster consolidation and student
// sheet routing for the office's partition workbooks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/asset"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/config"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/notify"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/partition"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/watch"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// consolidate / watch flags
	sheetName string
	idColumn  string
	gradeFrom string
	gradeTo   string
	outSheet  string
	outFile   string

	// route flags
	rowSpec    string
	modeName   string
	withLegend bool
	withLogo   bool
	reportPath string

	// partitions flags
	initBooks bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "garrison",
	Short: "Roster bookkeeping for the campus benefits office",
	Long: `garrison maintains the office's student roster workbooks: it merges
duplicate intake rows per student ID and provisions one worksheet per
student in the letter-partitioned roster workbooks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [roster.xlsx]",
	Short: "Merge duplicate intake rows per student ID",
	Long: `Merges every row that shares a student ID into one row. Within the
grade column range the last non-blank value wins; blanks never overwrite.
Rows without a student ID are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runConsolidate,
}

var routeCmd = &cobra.Command{
	Use:   "route [roster.xlsx]",
	Short: "Provision one worksheet per student in the partition workbooks",
	Long: `Reads the selected roster rows, derives each student's display key
("Last, First Middle"), finds or creates their sheet in the partition
workbook for their last-name initial, populates the student template, and
re-sorts every workbook's tabs.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

var partitionsCmd = &cobra.Command{
	Use:   "partitions",
	Short: "Show and validate the letter-to-workbook partition map",
	RunE:  runPartitions,
}

var watchCmd = &cobra.Command{
	Use:   "watch [roster.xlsx]",
	Short: "Re-run consolidation whenever the roster workbook changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	for _, cmd := range []*cobra.Command{consolidateCmd, watchCmd} {
		cmd.Flags().StringVar(&sheetName, "sheet", "", "Source sheet name (default from config)")
		cmd.Flags().StringVar(&idColumn, "id-column", "", "Student ID column letter (default from config)")
		cmd.Flags().StringVar(&gradeFrom, "from", "", "First grade column letter (default from config)")
		cmd.Flags().StringVar(&gradeTo, "to", "", "Last grade column letter (default from config)")
		cmd.Flags().StringVar(&outSheet, "out-sheet", "", "Output sheet name (default from config; \"-\" rewrites in place)")
		cmd.Flags().StringVar(&outFile, "out-file", "", "Save the result to a different workbook")
	}

	routeCmd.Flags().StringVar(&rowSpec, "rows", "", "Rows to route, e.g. \"2,3,5-7\" (default: all data rows)")
	routeCmd.Flags().StringVar(&modeName, "mode", string(roster.ModeFull), "Template depth: plain, full")
	routeCmd.Flags().BoolVar(&withLegend, "legend", false, "Write the status legend (overrides mode and config)")
	routeCmd.Flags().BoolVar(&withLogo, "logo", false, "Anchor the office logo (overrides mode and config)")
	routeCmd.Flags().StringVar(&reportPath, "report", "", "Write the run report JSON to this file")

	partitionsCmd.Flags().BoolVar(&initBooks, "init", false, "Create any partition workbooks missing on disk")

	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(partitionsCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// consolidateRequest folds the config defaults and command flags into one
// request. Flags win when set.
func consolidateRequest(cfg config.Config, path string) roster.ConsolidateRequest {
	req := roster.ConsolidateRequest{
		Path:      path,
		Sheet:     cfg.Source.Sheet,
		IDColumn:  cfg.Consolidate.IDColumn,
		GradeFrom: cfg.Consolidate.GradeFrom,
		GradeTo:   cfg.Consolidate.GradeTo,
		OutSheet:  cfg.Consolidate.OutputSheet,
		OutPath:   outFile,
	}
	if sheetName != "" {
		req.Sheet = sheetName
	}
	if idColumn != "" {
		req.IDColumn = idColumn
	}
	if gradeFrom != "" {
		req.GradeFrom = gradeFrom
	}
	if gradeTo != "" {
		req.GradeTo = gradeTo
	}
	switch outSheet {
	case "":
	case "-":
		req.OutSheet = ""
	default:
		req.OutSheet = outSheet
	}
	return req
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}

	report, err := roster.Consolidate(logger, consolidateRequest(cfg, args[0]))
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}
	fmt.Printf("%s: %d rows -> %d students on %q\n",
		args[0], report.InRows, report.OutRows, report.Output)
	return nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}

	router, err := buildRouter(cmd, cfg)
	if err != nil {
		return err
	}

	var selected []int
	if rowSpec != "" {
		selected, err = grid.ParseRowSpec(rowSpec)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			return fmt.Errorf("row selection %q matches no data rows", rowSpec)
		}
	}

	f, err := excelize.OpenFile(args[0])
	if err != nil {
		return err
	}
	rows, err := grid.ReadSheet(f, sourceSheet(cfg))
	f.Close()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: %w", sourceSheet(cfg), roster.ErrEmptySheet)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	report, runErr := router.Route(ctx, rows, selected)

	fmt.Printf("run %s: %d created, %d updated, %d skipped, %d failed\n",
		report.ID,
		report.Count(roster.OutcomeCreated),
		report.Count(roster.OutcomeUpdated),
		report.Count(roster.OutcomeSkipped),
		report.Count(roster.OutcomeFailed),
	)
	for _, item := range report.Failures() {
		fmt.Printf("  row %d: %s\n", item.Row, item.Reason)
	}

	if reportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return runErr
}

func buildRouter(cmd *cobra.Command, cfg config.Config) (*roster.Router, error) {
	m, err := cfg.RoutingMap()
	if err != nil {
		return nil, fmt.Errorf("partition map: %w", err)
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	opts := roster.DefaultOptions()
	switch modeName {
	case string(roster.ModePlain):
		opts.Mode = roster.ModePlain
	case string(roster.ModeFull):
		opts.Mode = roster.ModeFull
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be plain or full)", modeName)
	}
	if cfg.Template.Legend != nil {
		opts.IncludeLegend = cfg.Template.Legend
	}
	if cfg.Template.Logo != nil {
		opts.IncludeLogo = cfg.Template.Logo
	}
	if cmd.Flags().Changed("legend") {
		opts.IncludeLegend = &withLegend
	}
	if cmd.Flags().Changed("logo") {
		opts.IncludeLogo = &withLogo
	}

	router := &roster.Router{
		Map:     m,
		Opener:  partition.PathOpener{Paths: cfg.Partitions.Books},
		Layout:  layout,
		Options: opts,
		LogoID:  cfg.Assets.Logo,
		Logger:  logger,
	}
	if cfg.Assets.Dir != "" {
		router.Assets = asset.Dir{Root: cfg.Assets.Dir}
	}
	if cfg.Notify.SMTP.Host != "" {
		router.Notifier = notify.Mailer{
			Host:     cfg.Notify.SMTP.Host,
			Port:     cfg.Notify.SMTP.Port,
			From:     cfg.Notify.SMTP.From,
			To:       cfg.Notify.To,
			Username: cfg.Notify.SMTP.Username,
			Password: os.Getenv(cfg.Notify.SMTP.PasswordEnv),
		}
	} else {
		router.Notifier = notify.Log{Logger: logger}
	}
	return router, nil
}

func sourceSheet(cfg config.Config) string {
	if sheetName != "" {
		return sheetName
	}
	return cfg.Source.Sheet
}

func sameTarget(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func runPartitions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if initBooks {
		ids := make([]string, 0, len(cfg.Partitions.Books))
		for id := range cfg.Partitions.Books {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			path := cfg.Partitions.Books[id]
			if _, err := os.Stat(path); err == nil {
				continue
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
			}
			b, err := partition.Create(id, path)
			if err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", b.Path, b.ID)
			b.Close()
		}
	}

	for r := 'A'; r <= 'Z'; r++ {
		letter := string(r)
		id := cfg.Partitions.Letters[letter]
		if id == "" {
			fmt.Printf("%s  (unassigned)\n", letter)
			continue
		}
		fmt.Printf("%s  %s  %s\n", letter, id, cfg.Partitions.Books[id])
	}

	m, err := cfg.RoutingMap()
	if err != nil {
		return fmt.Errorf("partition map incomplete:\n%w", err)
	}
	ids := m.BookIDs()
	fmt.Printf("partition map covers A-Z across %d books: %s\n", len(ids), strings.Join(ids, ", "))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}
	req := consolidateRequest(cfg, args[0])
	// Saving onto the watched workbook would trigger the watcher again.
	if req.OutPath == "" || sameTarget(req.OutPath, args[0]) {
		return fmt.Errorf("watch requires --out-file pointing away from the watched workbook")
	}

	rerun := func(context.Context) {
		report, err := roster.Consolidate(logger, req)
		if err != nil {
			logger.Error("consolidation failed", zap.Error(err))
			return
		}
		fmt.Printf("%s: %d rows -> %d students on %q\n",
			args[0], report.InRows, report.OutRows, report.Output)
	}

	w, err := watch.New(args[0], logger, rerun)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	// One pass up front so the output is fresh before the first change.
	rerun(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}
	return nil
}
