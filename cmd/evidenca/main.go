package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/erazemk/evidenca/internal/cli"
	"github.com/erazemk/evidenca/internal/config"
	"github.com/erazemk/evidenca/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitCommandError
	}

	logOpts := logger.Options{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Format == config.LogFormatConsole,
	}
	if cfg.Log.File != "" {
		f, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening log file: %v\n", err)
			return cli.ExitCommandError
		}
		defer f.Close()
		logOpts.File = f
	}
	log := logger.New(logOpts)

	root := cli.NewRootCommand(cfg, log)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
