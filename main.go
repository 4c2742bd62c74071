package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kardianos/service"
	"github.com/rs/zerolog/log"

	"orwatch/internal/config"
	"orwatch/internal/diff"
	"orwatch/internal/logging"
	"orwatch/internal/notify"
	"orwatch/internal/openrouter"
	"orwatch/internal/output"
	"orwatch/internal/snapshot"
)

const version = "0.1.0"

func main() {
	godotenv.Load() // Load .env file if present

	// Detect subcommand first
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "watch" {
		runWatch(args[1:])
		return
	}

	// Create a new FlagSet for clean parsing
	fs := flag.NewFlagSet("orwatch", flag.ExitOnError)

	var (
		configPath   string
		snapshotPath string
		dryRun       bool
		showHelp     bool
		showVer      bool
	)

	fs.StringVar(&configPath, "config", "", "Path to config file (default ~/.orwatch.yaml)")
	fs.StringVar(&snapshotPath, "snapshot", "", "Path to snapshot file (overrides config)")
	fs.BoolVar(&dryRun, "dry-run", false, "Compute alerts but send and save nothing")
	fs.BoolVar(&showHelp, "help", false, "Show help")
	fs.BoolVar(&showHelp, "h", false, "Show help")
	fs.BoolVar(&showVer, "version", false, "Show version")
	fs.BoolVar(&showVer, "v", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `orwatch - OpenRouter model pricing watcher

Usage: orwatch [command] [options]

Commands:
  (none)    Check the catalog once and exit
  watch     Check on an interval, optionally as a background service

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  DISCORD_WEBHOOK   Webhook URL for alerts (overrides config file)
  TEST_DISCORD      Any non-empty value sends a test ping and exits

Examples:
  orwatch                           Check once
  orwatch --dry-run                 Show alerts without sending or saving
  orwatch --snapshot /tmp/snap.json
  orwatch watch                     Check every hour in the foreground
  orwatch watch install             Install as a background service
  orwatch watch install --interval 30m
`)
	}

	fs.Parse(args)

	if showVer {
		fmt.Printf("orwatch version %s\n", version)
		return
	}

	if showHelp {
		fs.Usage()
		return
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig(configPath, snapshotPath)

	if err := runPipeline(cfg, dryRun); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// loadConfig resolves configuration and wires up logging, exiting on
// either failure.
func loadConfig(path, snapshotOverride string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration failed")
	}
	if snapshotOverride != "" {
		cfg.SnapshotPath = snapshotOverride
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("configuring logging failed")
	}
	return cfg
}

// runPipeline performs one fetch, diff, notify, persist cycle. Fatal
// pipeline errors are returned; notification failures never are.
func runPipeline(cfg *config.Config, dryRun bool) error {
	client := openrouter.New(cfg.APIURL, time.Duration(cfg.FetchTimeout))

	log.Info().Str("url", cfg.APIURL).Msg("fetching model catalog")
	models, err := client.ListModels()
	if err != nil {
		return err
	}

	records, err := openrouter.Normalize(models)
	if err != nil {
		return err
	}
	log.Info().Int("models", len(records)).Msg("fetched model catalog")

	notifier := notify.New(cfg.WebhookURL, time.Duration(cfg.NotifyTimeout))

	if cfg.TestMode {
		if dryRun {
			log.Info().Msg("dry run, test message not sent")
			return nil
		}
		notifier.Send(output.TestMessage)
		log.Info().Msg("test message sent")
		return nil
	}

	store := &snapshot.Store{Path: cfg.SnapshotPath}
	previous, err := store.Load()
	if err != nil {
		return err
	}

	if len(previous) == 0 {
		log.Info().Msg("no previous snapshot, skipping change detection")
	} else {
		changes, err := diff.Changes(records, previous)
		if err != nil {
			return err
		}
		if len(changes) > 0 {
			log.Info().Int("changes", len(changes)).Msg("detected catalog changes")
			msg := output.UpdatesMessage(changes)
			if dryRun {
				log.Info().Str("message", msg).Msg("dry run, alert not sent")
			} else {
				notifier.Send(msg)
			}
		} else {
			log.Info().Msg("no changes detected")
		}
	}

	if dryRun {
		log.Info().Msg("dry run, snapshot not saved")
	} else {
		if err := store.Save(records); err != nil {
			return err
		}
		log.Info().Str("path", cfg.SnapshotPath).Msg("snapshot saved")
	}

	free, err := diff.FreeModels(records)
	if err != nil {
		return err
	}
	if len(free) > 0 {
		log.Info().Int("count", len(free)).Msg("free models available")
		msg := output.FreeModelsMessage(free)
		if dryRun {
			log.Info().Str("message", msg).Msg("dry run, free models alert not sent")
		} else {
			notifier.Send(msg)
		}
	} else {
		log.Info().Msg("no free models in catalog")
	}

	return nil
}

// watchService implements service.Interface for periodic checks
type watchService struct {
	interval     time.Duration
	configPath   string
	snapshotPath string
	stop         chan struct{}
	logger       service.Logger
}

func (w *watchService) Start(svc service.Service) error {
	w.stop = make(chan struct{})
	go w.run()
	return nil
}

func (w *watchService) Stop(svc service.Service) error {
	close(w.stop)
	return nil
}

func (w *watchService) run() {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		if w.logger != nil {
			w.logger.Errorf("Error loading configuration: %v", err)
		}
		return
	}
	if w.snapshotPath != "" {
		cfg.SnapshotPath = w.snapshotPath
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		if w.logger != nil {
			w.logger.Errorf("Error configuring logging: %v", err)
		}
		return
	}

	// Check immediately on start
	w.runOnce(cfg)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(cfg)
		case <-w.stop:
			return
		}
	}
}

// runOnce contains pipeline errors so one failed check never stops the
// ticker; the next tick starts a fresh run.
func (w *watchService) runOnce(cfg *config.Config) {
	if err := runPipeline(cfg, false); err != nil {
		log.Error().Err(err).Msg("run failed")
	}
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var (
		interval     time.Duration
		configPath   string
		snapshotPath string
	)
	fs.DurationVar(&interval, "interval", time.Hour, "Check interval (e.g., 1h, 30m)")
	fs.StringVar(&configPath, "config", "", "Path to config file (default ~/.orwatch.yaml)")
	fs.StringVar(&snapshotPath, "snapshot", "", "Path to snapshot file (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: orwatch watch [command] [options]

Commands:
  (none)      Run checks in the foreground
  run         Same as (none); used by the installed service
  install     Install as a background service
  start       Start the background service
  stop        Stop the background service
  uninstall   Remove the background service
  status      Show service status

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  orwatch watch                     Check every hour in the foreground
  orwatch watch install             Install service (checks every hour)
  orwatch watch install --interval 30m
  orwatch watch stop
`)
	}

	// Check for service commands before parsing flags
	var svcCommand string
	if len(args) > 0 {
		switch args[0] {
		case "run", "install", "start", "stop", "uninstall", "status":
			svcCommand = args[0]
			args = args[1:]
		}
	}

	fs.Parse(args)

	svcArgs := []string{"watch", "run", fmt.Sprintf("--interval=%s", interval)}
	if configPath != "" {
		svcArgs = append(svcArgs, fmt.Sprintf("--config=%s", configPath))
	}
	if snapshotPath != "" {
		svcArgs = append(svcArgs, fmt.Sprintf("--snapshot=%s", snapshotPath))
	}

	svcConfig := &service.Config{
		Name:        "orwatch-watch",
		DisplayName: "orwatch Watch Service",
		Description: "Watches OpenRouter model pricing and posts changes to a Discord webhook",
		Arguments:   svcArgs,
	}

	svc := &watchService{
		interval:     interval,
		configPath:   configPath,
		snapshotPath: snapshotPath,
	}
	s, err := service.New(svc, svcConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("creating service failed")
	}

	switch svcCommand {
	case "install":
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading configuration failed")
		}
		if cfg.WebhookURL == "" {
			log.Warn().Msg("no webhook URL configured, alerts will only be logged")
		}
		if err := s.Install(); err != nil {
			log.Fatal().Err(err).Msg("installing service failed")
		}
		if err := s.Start(); err != nil {
			log.Fatal().Err(err).Msg("service installed but failed to start")
		}
		fmt.Println("Service installed and started.")
		fmt.Printf("Check interval: %s\n", interval)

	case "start":
		if err := s.Start(); err != nil {
			log.Fatal().Err(err).Msg("starting service failed")
		}
		fmt.Println("Service started.")

	case "stop":
		if err := s.Stop(); err != nil {
			log.Fatal().Err(err).Msg("stopping service failed")
		}
		fmt.Println("Service stopped.")

	case "uninstall":
		s.Stop() // ignore error
		if err := s.Uninstall(); err != nil {
			log.Fatal().Err(err).Msg("uninstalling service failed")
		}
		fmt.Println("Service uninstalled.")

	case "status":
		status, err := s.Status()
		if err != nil {
			fmt.Printf("Service status: not installed or error (%v)\n", err)
			return
		}
		switch status {
		case service.StatusRunning:
			fmt.Println("Service status: running")
		case service.StatusStopped:
			fmt.Println("Service status: stopped")
		default:
			fmt.Println("Service status: unknown")
		}

	default: // "" or "run": run the check loop
		logger, err := s.Logger(nil)
		if err == nil {
			svc.logger = logger
		}
		if err := s.Run(); err != nil {
			log.Fatal().Err(err).Msg("service run failed")
		}
	}
}
