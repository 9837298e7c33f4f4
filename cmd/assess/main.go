package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/diarisk/internal/config"
	"github.com/okian/diarisk/internal/formclient"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	defaults := config.New()
	var (
		server  = flag.String("server", "", "Evaluate against a running server instead of in-process")
		model   = flag.String("model", defaults.ModelPath, "Model artifact for in-process runs")
		scaler  = flag.String("scaler", defaults.ScalerPath, "Scaler artifact for in-process runs")
		skin    = flag.String("skin", defaults.SkinFormula, "Skin thickness formula: linear or bands")
		lang    = flag.String("lang", defaults.Language, "Output language: en or hi")
		workers = flag.Int("workers", formclient.DefaultWorkers, "Number of concurrent evaluations")
		timeout = flag.Duration("timeout", formclient.DefaultTimeout, "Per-form timeout")
		logFile = flag.String("log", "", "Also write logs to this file")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || flag.NArg() == 0 {
		formclient.ShowHelp(os.Stdout)
		return
	}

	closer, err := formclient.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &formclient.Config{
		FormFiles:  flag.Args(),
		ServerURL:  *server,
		ModelPath:  *model,
		ScalerPath: *scaler,
		Skin:       *skin,
		Lang:       *lang,
		Workers:    *workers,
		Timeout:    *timeout,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if _, err := formclient.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Assessment failed: " + err.Error() + "\n")
		stop()
		cancel()
		_ = closer.Close()
		os.Exit(1)
	}
}
