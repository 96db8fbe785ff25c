package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/lixenwraith/bpe/config"
)

func main() {
	// Panic recovery: the view command restores the terminal through its own defers first
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nBPE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bpe: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bpe", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML settings file")
	debugMode := fs.Bool("debug", false, "write debug logs to the log directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	cmd, cmdArgs := rest[0], rest[1:]

	var log *zap.Logger
	if cmd == "view" && !*debugMode {
		// The terminal owns stderr while viewing
		log = zap.NewNop()
	} else {
		l, logFile, err := setupLogging(*debugMode, cfg.Log.Dir, level)
		if err != nil {
			return err
		}
		if logFile != nil {
			defer logFile.Close()
		}
		log = l
	}
	defer log.Sync() //nolint:errcheck

	a := &app{cfg: cfg, log: log, stdout: stdout}
	switch cmd {
	case "demo":
		return a.demo(cmdArgs)
	case "info":
		return a.info(cmdArgs)
	case "export":
		return a.export(cmdArgs)
	case "view":
		return a.view(cmdArgs)
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}
