// Package main provides the CLI entry point for facetgrid-go.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/parser"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/server"
)

var (
	outputPath  string
	configPath  string
	logLevel    string
	labelColumn string
	groupColumn string
	feature     string
	columns     int
	fixedY      bool
	yMin        float64
	yMax        float64
	labels      []string
	sheet       string
	listenAddr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "facetgrid [input.csv|input.xlsx]",
		Short: "Render a grid of per-group box plots",
		Long: `facetgrid-go splits a table by a group column and draws one box plot
of a feature per group, faceted by a label column, into a single PNG.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config: render options, or server config for serve")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&labelColumn, "label", "label", "Label column (x-axis inside each cell)")
	pf.StringVar(&groupColumn, "group", "subject", "Group column (one cell per value)")
	pf.StringVar(&sheet, "sheet", "", "Worksheet of an XLSX input (default: first sheet)")

	f := rootCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "Output PNG path (default: <feature>.png)")
	f.StringVar(&feature, "feature", "", "Feature column to plot (default: first candidate)")
	f.IntVar(&columns, "cols", 6, "Number of grid columns")
	f.BoolVar(&fixedY, "fixed-y", false, "Use one y-axis range for every cell")
	f.Float64Var(&yMin, "y-min", 0, "Fixed y-axis minimum (default: data minimum)")
	f.Float64Var(&yMax, "y-max", 0, "Fixed y-axis maximum (default: data maximum × 1.1)")
	f.StringSliceVar(&labels, "labels", nil, "Label values to keep (default: all)")

	columnsCmd := &cobra.Command{
		Use:   "columns [input.csv|input.xlsx]",
		Short: "List columns, feature candidates and label values",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumns,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form and render API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Address to listen on")

	rootCmd.AddCommand(columnsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() (log.Logger, error) {
	lvl, err := level.Parse(logLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level %q: %w", logLevel, err)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(lvl))
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

// loadOptions builds render options from the config file and the flags
// that were set explicitly.
func loadOptions(cmd *cobra.Command) (facetgrid.Options, error) {
	opts := facetgrid.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = facetgrid.LoadOptions(configPath); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("label") || configPath == "" {
		opts.LabelColumn = labelColumn
	}
	if flags.Changed("group") || configPath == "" {
		opts.GroupColumn = groupColumn
	}
	if flags.Changed("sheet") {
		opts.Sheet = sheet
	}
	if flags.Lookup("feature") == nil {
		return opts, nil
	}
	if flags.Changed("feature") {
		opts.Feature = feature
	}
	if flags.Changed("cols") {
		opts.Columns = columns
	}
	if flags.Changed("fixed-y") {
		opts.FixedY = fixedY
	}
	if flags.Changed("y-min") {
		opts.YMin = &yMin
	}
	if flags.Changed("y-max") {
		opts.YMax = &yMax
	}
	if flags.Changed("labels") {
		opts.Labels = labels
		if opts.Labels == nil {
			opts.Labels = []string{}
		}
	}
	return opts, nil
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger, err := newLogger()
	if err != nil {
		return err
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	opts.Logger = logger

	res, err := facetgrid.RenderFile(inputPath, opts)
	if err != nil {
		if facetgrid.IsConfigurationError(err) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return fmt.Errorf("render failed: %w", err)
	}

	path := outputPath
	if path == "" {
		path = res.Filename
	}
	if err := os.WriteFile(path, res.PNG, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Println(res.Status)
	level.Info(logger).Log("msg", "wrote composite", "path", path, "size", humanize.Bytes(uint64(len(res.PNG))),
		"rows", res.Layout.Rows, "cols", res.Layout.Cols)
	return nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	t, err := parser.Load(args[0], opts.Sheet)
	if err != nil {
		return err
	}
	d, err := facetgrid.Describe(t, opts.LabelColumn, opts.GroupColumn)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}
	if cmd.Flags().Changed("listen") || configPath == "" {
		cfg.ListenAddress = listenAddr
	}
	if cmd.Flags().Changed("label") {
		cfg.Defaults.LabelColumn = labelColumn
	}
	if cmd.Flags().Changed("group") {
		cfg.Defaults.GroupColumn = groupColumn
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Defaults.Sheet = sheet
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(cfg, logger, reg).Run(ctx)
}
