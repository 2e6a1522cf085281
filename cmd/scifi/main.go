package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robertguss/scifi-stories-go/internal/app"
	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/config"
	"github.com/robertguss/scifi-stories-go/internal/logging"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/watcher"
)

const usage = `Usage: scifi [--config file] [command] [flags]

Commands:
  (none)        browse stories in the terminal UI
  list          print one page of the story list
  show <id>     print a story and its neighbours
  serve         run the fixture story API

Run "scifi <command> --help" for command flags.
`

// ErrUsage is returned for malformed command lines
var ErrUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		if errors.Is(err, ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	global := flag.NewFlagSet("scifi", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "path to a YAML config file")
	if err := global.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return runTUI(ctx, cfg)
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "tui":
		return runTUI(ctx, cfg)
	case "list":
		return runList(ctx, cfg, cmdArgs, stdout, stderr)
	case "show":
		return runShow(ctx, cfg, cmdArgs, stdout, stderr)
	case "serve":
		return runServe(ctx, cfg, cmdArgs, stderr)
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	logger, closer, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	theme.SetTheme(cfg.Theme)
	if cfg.ThemeFile != "" {
		t, err := theme.LoadThemeFromYAML(cfg.ThemeFile)
		if err != nil {
			return err
		}
		theme.Current = t
	}

	logger.Info("starting", "api", cfg.APIBaseURL, "page_size", cfg.PageSize, "theme", theme.Current.Name)

	repo := client.NewFromConfig(cfg, logger.With("component", "client"))
	model := app.New(ctx, cfg, repo, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if cfg.WatchTheme && cfg.ThemeFile != "" {
		w := watcher.WatchTheme(cfg.ThemeFile, cfg.WatchDebounce, logger.With("component", "watcher"))
		w.SetSender(p)
		if err := w.Start(); err != nil {
			logger.Warn("theme watcher disabled", "err", err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running scifi: %w", err)
	}
	return nil
}
