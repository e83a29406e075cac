package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"pension-report/internal/config"
	"pension-report/internal/document"
	"pension-report/internal/export"
	"pension-report/internal/handler"
	"pension-report/internal/logging"
	"pension-report/internal/model"
	"pension-report/internal/predictclient"
	"pension-report/internal/profile"
	"pension-report/internal/projection"
	"pension-report/internal/report"
	"pension-report/internal/session"
	"pension-report/internal/sheet"
	"pension-report/internal/store"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "pension-report",
		Short: "Pension projection and report export service",
		RunE:  runServe,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "project <monthly-pension>",
			Short: "Print the projection series for a monthly pension",
			Args:  cobra.ExactArgs(1),
			RunE:  runProject,
		},
		&cobra.Command{
			Use:   "export-usage",
			Short: "Write the usage log to an XLSX file in the export directory",
			RunE:  runExportUsage,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	usage      *store.UsageStore
	dispatcher *export.Dispatcher
	handler    *handler.Handler
}

func setup() (*app, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	catalog, err := profile.Load(cfg.Profiles.Path)
	if err != nil {
		return nil, err
	}

	usage, err := store.Open(cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore()
	dispatcher := export.NewDispatcher(export.Dependencies{
		Sessions:  sessions,
		Profiles:  catalog,
		Assembler: report.NewAssembler(cfg, time.Now),
		Renderer:  document.NewRenderer(cfg.Report.Currency, logger),
		Sheets:    sheet.NewExporter(logger),
		Usage:     usage,
	}, logger)

	h := handler.New(handler.Dependencies{
		Predictor:  predictclient.New(cfg.Predict.URL, cfg.Predict.Timeout, logger),
		Sessions:   sessions,
		Catalog:    catalog,
		Projection: projection.NewGenerator(cfg.Projection),
		Dispatcher: dispatcher,
	}, logger)

	return &app{cfg: cfg, logger: logger, usage: usage, dispatcher: dispatcher, handler: h}, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.usage.Close()

	addr := ":" + strconv.Itoa(a.cfg.Server.Port)
	a.logger.Info().Str("addr", addr).Str("predict_url", a.cfg.Predict.URL).Msg("pension report service starting")
	if err := fasthttp.ListenAndServe(addr, a.handler.Handle); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	v0, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid monthly pension %q: %w", args[0], err)
	}

	result := &model.PredictionResult{Estimate: &model.PredictionEstimate{EstimatedMonthlyPension: v0}}
	points, err := projection.NewGenerator(cfg.Projection).ForResult(result, time.Now())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}

func runExportUsage(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.usage.Close()

	out := a.dispatcher.ExportUsageLog(export.FileSaver{Dir: a.cfg.Server.ExportDir})
	if out.Err != nil {
		return fmt.Errorf("%s: %w", out.Notification.Message, out.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", a.cfg.Server.ExportDir, out.Filename)
	return nil
}
