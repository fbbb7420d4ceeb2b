package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/autotab/internal/logx"
	"github.com/iw2rmb/autotab/settings"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		logx.New(os.Stderr, "autotab", logx.Options{Level: log.InfoLevel}).Error("command failed", "err", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	config   string
	logLevel string
	logFile  string
}

func (g *globalFlags) settingsPath() (string, error) {
	if g.config != "" {
		return g.config, nil
	}
	return settings.DefaultPath()
}

// logger writes to the log file. The terminal belongs to the TUI, so
// nothing is logged to stderr while it runs.
func (g *globalFlags) logger() (*log.Logger, io.Closer, error) {
	path := g.logFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "autotab.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := logx.New(f, "autotab", logx.Options{
		Level:      logx.ParseLevel(g.logLevel),
		Timestamps: true,
	})
	return l, f, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "autotab",
		Short:         "Inline LLM completions for terminal text fields",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.config, "config", "", "settings file (default: user config dir)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "log file (default: autotab.log in the temp dir)")

	root.AddCommand(newDemoCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newVersionCmd())
	return root
}
