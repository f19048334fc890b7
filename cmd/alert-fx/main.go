package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/config"
	"github.com/lixenwraith/alert-fx/core"
	"github.com/lixenwraith/alert-fx/logging"
	"github.com/lixenwraith/alert-fx/overlay"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	envFile    string
	token      string
	debug      bool
	logPath    string
	mute       bool
	hud        bool
)

func main() {
	// Restore the terminal if the main goroutine panics
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "alert-fx",
		Short: "Terminal stream alert overlay",
		Long: `alert-fx shows Streamlabs alerts (donations, bits, subs, raids, hosts, follows)
as animated cards with particle bursts and synthesized sound, one at a time by priority.

Keys while running:
  d b s r R h f   inject a test alert (donation, bits, sub, resub, raid, host, follow)
  m               toggle sound
  i               toggle the status line
  q, Esc          quit`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), overlay.Options{})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/alert-fx/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file holding "+config.TokenEnv)
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Streamlabs socket token (overrides "+config.TokenEnv+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", logging.DefaultPath(), "debug log file")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "start with sound muted")
	rootCmd.PersistentFlags().BoolVar(&hud, "hud", false, "show the status line ([display] hud in the config also enables it)")

	rootCmd.AddCommand(newTestCmd(), newDemoCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newTestCmd previews a single alert offline and exits when it has played
func newTestCmd() *cobra.Command {
	names := make([]string, 0, len(alert.Categories))
	for _, c := range alert.Categories {
		names = append(names, string(c))
	}

	return &cobra.Command{
		Use:       "test <category>",
		Short:     "Play one test alert and exit",
		Long:      "Play one canned alert offline. Categories: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := alert.ParseCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q (want one of %s)", args[0], strings.Join(names, ", "))
			}
			return run(cmd.Context(), overlay.Options{
				Offline:      true,
				Alerts:       []alert.Alert{overlay.Sample(c)},
				ExitWhenIdle: true,
			})
		},
	}
}

// newDemoCmd queues one alert of every category over ambient motes
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show every alert category offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), overlay.Options{
				Offline: true,
				Alerts:  overlay.Samples(),
				Ambient: true,
			})
		},
	}
}

// run loads settings, sets up logging and hands the terminal to the overlay
func run(ctx context.Context, opts overlay.Options) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	for _, w := range loaded.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	cfg := loaded.Config

	if !opts.Offline {
		cfg.Token, err = config.LoadToken(token, envFile)
		if err != nil && !errors.Is(err, config.ErrMissingToken) {
			return err
		}
	}

	logger, closer := logging.Setup(debug, logPath)
	defer closer.Close()
	logger.Info("starting", "version", version, "config", path, "offline", opts.Offline, "token_set", cfg.Token != "")

	opts.Config = cfg
	opts.Muted = mute
	opts.HUD = hud
	return overlay.New(opts, logger).Run(ctx)
}
