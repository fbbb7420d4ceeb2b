package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/autotab"
	"github.com/iw2rmb/autotab/pagectx"
	"github.com/iw2rmb/autotab/provider"
	"github.com/iw2rmb/autotab/settings"
)

// providers builds provider configs from settings. The HTTP client is shared
// so that Dynamic only rebuilds its backend when a setting changes.
type providers struct {
	client *http.Client
	logger *log.Logger
}

func newProviders(logger *log.Logger) *providers {
	return &providers{client: cleanhttp.DefaultPooledClient(), logger: logger}
}

func (p *providers) config(s settings.Settings) provider.Config {
	return provider.Config{
		Backend:    s.Provider,
		APIKey:     s.APIKey,
		Model:      s.Model,
		BaseURL:    s.BaseURL,
		UserAgent:  autotab.UserAgent(),
		HTTPClient: p.client,
		Logger:     p.logger,
	}
}

func (p *providers) dynamic(st *settings.Store) *provider.Dynamic {
	return provider.NewDynamic(func() provider.Config { return p.config(st.Get()) })
}

// contextHook loads the context script named by s, or returns nil when none
// is set. path is the settings file the script is relative to.
func contextHook(path string, s settings.Settings) (*pagectx.LuaHook, error) {
	script := s.ScriptPath(path)
	if script == "" {
		return nil, nil
	}
	return pagectx.LoadLuaHook(script)
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.settingsPath()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		},
		newConfigInitCmd(g),
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.settingsPath()
				if err != nil {
					return err
				}
				s, err := settings.Load(path)
				if err != nil {
					return err
				}
				if s.APIKey != "" {
					s.APIKey = "********"
				}
				out, err := toml.Marshal(s)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
		newConfigCheckCmd(g),
	)
	return cmd
}

func newConfigInitCmd(g *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.settingsPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := settings.Save(path, settings.Defaults()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigCheckCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate settings and probe the configured provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.settingsPath()
			if err != nil {
				return err
			}
			s, err := settings.Load(path)
			if err != nil {
				return err
			}
			hook, err := contextHook(path, s)
			if err != nil {
				return err
			}
			if hook != nil {
				hook.Close()
			}
			logger, closer, err := g.logger()
			if err != nil {
				return err
			}
			defer closer.Close()

			st := settings.NewStore(s)
			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout())
			defer cancel()
			if err := newProviders(logger).dynamic(st).Check(ctx); err != nil {
				if provider.IsConfigError(err) {
					return fmt.Errorf("provider %s is misconfigured: %w", s.Provider, err)
				}
				return fmt.Errorf("provider %s: %w", s.Provider, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", s.Provider)
			return err
		},
	}
}
