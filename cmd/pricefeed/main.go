// Package main is the pricefeed CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andresgonzalez1997/pricefeed/internal/cli"
	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/ingest"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"github.com/andresgonzalez1997/pricefeed/internal/server"
	"github.com/andresgonzalez1997/pricefeed/internal/warehouse"
	"github.com/andresgonzalez1997/pricefeed/internal/watcher"
	"github.com/andresgonzalez1997/pricefeed/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/pricefeed/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if
// that exists it is used, so that "pricefeed server" from the project
// dir uses the project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "read":
		runRead()
	case "ingest":
		runIngest()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("pricefeed version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (drop events, row labels, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ing := components.Ingestor
	watchOpts := []watcher.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	var watchSvc *watcher.Watcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Watch.Directories) > 0 {
		watchSvc = watcher.NewWatcher(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			cfg.Watch.RecursiveOrDefault(),
			func(path string) {
				if _, err := ing.IngestFile(context.Background(), path, cfg.Watch.Layout); err != nil {
					logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(ing, components.Warehouse, cfg, watchSvc, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// captureUploader keeps the reconciled table in memory instead of
// writing it anywhere. Used by the read command.
type captureUploader struct {
	table *models.Table
}

func (c *captureUploader) Upload(ctx context.Context, tbl *models.Table) (int64, error) {
	c.table = tbl
	return int64(len(tbl.Rows)), nil
}

func runRead() {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	layoutName := fs.String("layout", "", "layout name (default from config)")
	outputFormat := fs.String("output", "text", "output format: text, csv, or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pricefeed read [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	format := cli.OutputText
	switch *outputFormat {
	case "text":
	case "csv":
		format = cli.OutputCSV
	case "json":
		format = cli.OutputJSON
	default:
		fmt.Printf("Unknown output format %q; use text, csv, or json\n", *outputFormat)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	capture := &captureUploader{}
	ing := newIngestor(cfg, capture, logger, cfg.Debug)
	if _, err := ing.IngestFile(context.Background(), path, *layoutName); err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteTable(os.Stdout, capture.table, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	layoutName := fs.String("layout", "", "layout name (default from config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pricefeed ingest [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		n, err := components.Ingestor.IngestDirectory(ctx, path, *layoutName, cfg.Watch.Extensions)
		if err != nil {
			fmt.Printf("Ingesting directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %d file(s) from %s\n", n, path)
		return
	}
	result, err := components.Ingestor.IngestFile(ctx, path, *layoutName)
	if err != nil {
		fmt.Printf("Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d record(s) into %s\n", result.Records, components.Warehouse.Table())
	if result.EffectiveDate != "" {
		fmt.Printf("Effective date: %s\n", result.EffectiveDate)
	}
	if result.PlantLocation != "" {
		fmt.Printf("Plant location: %s\n", result.PlantLocation)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Table            string   `json:"table"`
	Rows             int64    `json:"rows"`
	DefaultLayout    string   `json:"default_layout"`
	WatchDirectories []string `json:"watch_directories,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = open the warehouse directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		wh, err := warehouse.NewSQLiteWarehouse(cfg.Warehouse.DatabasePath, cfg.Warehouse.Table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open warehouse: %v\n", err)
			os.Exit(1)
		}
		defer wh.Close()
		count, err := wh.Count(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count rows failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Table:            wh.Table(),
			Rows:             count,
			DefaultLayout:    cfg.DefaultLayout,
			WatchDirectories: cfg.Watch.Directories,
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("table:           %s\n", status.Table)
		fmt.Printf("rows:            %d\n", status.Rows)
		fmt.Printf("default_layout:  %s\n", status.DefaultLayout)
		for _, d := range status.WatchDirectories {
			fmt.Printf("watching:        %s\n", d)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Warehouse *warehouse.SQLiteWarehouse
	Ingestor  *ingest.Ingestor
}

func (c *Components) Close() {
	if c.Warehouse != nil {
		_ = c.Warehouse.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	wh, err := warehouse.NewSQLiteWarehouse(cfg.Warehouse.DatabasePath, cfg.Warehouse.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize warehouse: %w", err)
	}
	return &Components{
		Warehouse: wh,
		Ingestor:  newIngestor(cfg, wh, logger, debug),
	}, nil
}

func newIngestor(cfg *config.Config, uploader ingest.Uploader, logger *zap.Logger, debug bool) *ingest.Ingestor {
	opts := []ingest.IngestorOption{}
	if debug && logger != nil {
		opts = append(opts, ingest.WithLogger(logger))
	}
	return ingest.NewIngestor(cfg, uploader, opts...)
}

func printUsage() {
	fmt.Println(`pricefeed - Price sheet reconciliation service

Usage:
  pricefeed server [flags]              Start the HTTP server and drop-directory watcher
  pricefeed read [flags] <file>         Reconcile a sheet and print the table (no upload)
  pricefeed ingest [flags] <path>       Reconcile a sheet or directory and upload it
  pricefeed status [flags]              Show warehouse status
  pricefeed version                     Show version
  pricefeed help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/pricefeed/config.yaml)
  --debug            Enable debug logging (drop events, row labels, etc.)

Read Flags:
  --config string    Config file path
  --layout string    Layout name (default from config)
  --output string    Output format: text, csv, or json (default: text)

Ingest Flags:
  --config string    Config file path
  --layout string    Layout name (default from config)

Status Flags:
  --config string    Config file path (used when --server is empty)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to open the warehouse directly.
  --output string    Output format: text or json (default: text)

Examples:
  pricefeed server
  pricefeed read prices.pdf
  pricefeed read --output csv prices.pdf > prices.csv
  pricefeed ingest --layout purina_horizontal prices.pdf
  pricefeed ingest /drop/sheets
  pricefeed status --output json`)
}
