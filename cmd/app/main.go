package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"github.com/astrosteveo/awesome-copilot-tui/internal/adapters/loghandler"
	"github.com/astrosteveo/awesome-copilot-tui/internal/app"
	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// sessFactory opens a Session against the configured project root and
// performs the initial reload, the way every subcommand needs to start.
type sessFactory func(cmd *cobra.Command, force bool) (*usecase.Session, error)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	)
	defer stop()

	cmd, exitCode := newRootCmd(app.NewDefaultDependencies)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return *exitCode
}

func newRootCmd(depsFactory func(*slog.Logger) *usecase.Dependencies) (*cobra.Command, *int) {
	exitCode := 0
	var (
		root    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "awesome-copilot-tui",
		Short:         "Reconcile a project's Copilot assets against the upstream catalog",
		SilenceUsage:  false,
		SilenceErrors: true,
	}
	cmd.SetErr(os.Stderr)
	cmd.PersistentFlags().StringVar(&root, "root", ".", "project root to reconcile")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	newSess := func(cmd *cobra.Command, force bool) (*usecase.Session, error) {
		logger := setupLogger(verbose)
		deps := depsFactory(logger)
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %v: %w", err, usecase.ErrStartup)
		}
		configPath := filepath.Join(usecase.ExpandHomeDir(usecase.DefaultConfigDir(), homeDir), "config.toml")
		configFile, err := deps.Config.Load(cmd.Context(), configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", usecase.ErrStartup)
		}

		absRoot, err := deps.FileSystem.Abs(cmd.Context(), root)
		if err != nil {
			return nil, fmt.Errorf("resolve project root: %w", usecase.ErrUsage)
		}

		appCfg, err := usecase.RuntimeConfigFromFile(configFile, absRoot, homeDir)
		if err != nil {
			return nil, err
		}
		appCfg.Verbose = verbose
		if strings.EqualFold(configFile.UI.Color, "auto") {
			appCfg.UseColor = shouldUseColor(os.Stdout)
		}

		logger, _ = withFileLogging(logger, configFile.Logging, verbose)

		sess, err := usecase.Open(cmd.Context(), *deps, *appCfg, logger)
		if err != nil {
			return nil, err
		}
		if err := sess.Reload(cmd.Context(), force); err != nil {
			return nil, err
		}
		return sess, nil
	}

	cmd.AddCommand(newReloadCmd(newSess, &exitCode))
	cmd.AddCommand(newStatusCmd(newSess, &exitCode))
	cmd.AddCommand(newListCmd(newSess, &exitCode))
	cmd.AddCommand(newEnableCmd(newSess, &exitCode))
	cmd.AddCommand(newDisableCmd(newSess, &exitCode))
	cmd.AddCommand(newToggleCollectionCmd(newSess, &exitCode))
	cmd.AddCommand(newResetCmd(newSess, &exitCode))
	cmd.AddCommand(newSaveCmd(newSess, &exitCode))
	cmd.AddCommand(newVersionCmd())

	return cmd, &exitCode
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := loghandler.NewHandler(os.Stderr, &loghandler.Options{
		Level:    level,
		UseColor: shouldUseColor(os.Stderr),
	})
	return slog.New(handler)
}

func withFileLogging(logger *slog.Logger, logCfg usecase.LoggingConfig, verbose bool) (*slog.Logger, func()) {
	dir := strings.TrimSpace(logCfg.Dir)
	if dir == "" {
		return logger, func() {}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("cannot resolve home dir for log file", "error", err)
		return logger, func() {}
	}
	expanded := usecase.ExpandHomeDir(dir, homeDir)
	if err := os.MkdirAll(expanded, 0o750); err != nil {
		logger.Warn("cannot create log directory", "path", expanded, "error", err)
		return logger, func() {}
	}
	filename := "awesome-copilot-tui-" + time.Now().Format("2006-01-02") + ".log"
	logPath := filepath.Join(expanded, filename)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		logger.Warn("cannot open log file", "path", logPath, "error", err)
		return logger, func() {}
	}

	fileLevel := parseLogLevel(logCfg.Level)
	if verbose && fileLevel > slog.LevelDebug {
		fileLevel = slog.LevelDebug
	}
	fileHandler := loghandler.NewHandler(f, &loghandler.Options{
		Level:    fileLevel,
		UseColor: false,
	})

	combined := loghandler.NewMultiHandler(logger.Handler(), fileHandler)
	return slog.New(combined), func() { _ = f.Close() }
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func shouldUseColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
