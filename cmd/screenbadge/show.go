package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
	"github.com/jmylchreest/screenbadge/internal/daemon"
	"github.com/jmylchreest/screenbadge/internal/display"
	"github.com/jmylchreest/screenbadge/internal/display/native"
)

var showOpts struct {
	color     string
	thickness int
	width     int
	height    int
	monitor   int
	duration  time.Duration
	headless  bool
	watch     bool
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the badge until interrupted",
	Long: `Show the badge in the top-left corner of the screen.

The badge stays up until screenbadge receives SIGINT or SIGTERM, the
--for duration elapses, or the window is closed by the compositor.

Flags override values from the config file. With --watch, changes to the
config file are applied to the running badge.`,
	Example: `  screenbadge show --color red --thickness 4
  screenbadge show --for 30s
  screenbadge show --watch`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addBadgeFlags(showCmd)
	addRunFlags(showCmd)
}

// addBadgeFlags registers the flags that override badge configuration.
func addBadgeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&showOpts.color, "color", config.DefaultColor,
		"Border color (any CSS color)")
	cmd.Flags().IntVar(&showOpts.thickness, "thickness", config.DefaultThickness,
		"Border thickness in pixels")
	cmd.Flags().IntVar(&showOpts.width, "width", config.DefaultWidth,
		"Badge width in pixels")
	cmd.Flags().IntVar(&showOpts.height, "height", config.DefaultHeight,
		"Badge height in pixels")
	cmd.Flags().IntVar(&showOpts.monitor, "monitor", 0,
		"Monitor to show the badge on (0 = compositor's choice)")
}

// addRunFlags registers the flags that control how long and where the badge runs.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&showOpts.duration, "for", 0,
		"Close the badge after this long (0 = until interrupted)")
	cmd.Flags().BoolVar(&showOpts.headless, "headless", false,
		"Do not open a window; log the badge instead")
	cmd.Flags().BoolVar(&showOpts.watch, "watch", false,
		"Apply config file changes while running")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, base config.BadgeConfig) (config.BadgeConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("color") {
		base.Color = showOpts.color
	}
	if flags.Changed("thickness") {
		base.Thickness = showOpts.thickness
	}
	if flags.Changed("width") {
		base.Width = showOpts.width
	}
	if flags.Changed("height") {
		base.Height = showOpts.height
	}
	if flags.Changed("monitor") {
		base.Monitor = showOpts.monitor
	}
	if err := base.Validate(); err != nil {
		return config.BadgeConfig{}, fmt.Errorf("invalid badge options: %w", err)
	}
	return base, nil
}

func newBackend() badge.Backend {
	if showOpts.headless {
		return display.NewHeadlessBackend(logger)
	}
	return native.NewBackend(logger)
}

func runShow(cmd *cobra.Command, args []string) error {
	badgeCfg, err := applyFlagOverrides(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if showOpts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, showOpts.duration)
		defer cancel()
	}

	supervisor := daemon.NewSupervisor(badgeCfg, newBackend(), logger)

	if !showOpts.watch {
		return supervisor.Controller().Run(ctx, func(ctx context.Context) error {
			return waitForBadge(ctx, supervisor)
		})
	}

	watcher := daemon.NewConfigWatcher(globalOpts.configPath, logger)
	watcher.SetReloadCallback(func(newConfig config.BadgeConfig) {
		merged, err := applyFlagOverrides(cmd, newConfig)
		if err != nil {
			logger.Warn("ignoring reloaded config", "error", err)
			return
		}
		if err := supervisor.Apply(ctx, merged); err != nil {
			logger.Warn("failed to apply reloaded config", "error", err)
		}
	})
	if err := watcher.Start(ctx, cfg); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}
	defer watcher.Stop()

	supervisor.Start()
	defer stopBadge(ctx, supervisor)

	return waitForBadge(ctx, supervisor)
}

// waitForBadge blocks until ctx is done or the badge goes away on its own.
// A session ended by a config reload is followed to its replacement.
func waitForBadge(ctx context.Context, supervisor *daemon.Supervisor) error {
	for {
		controller := supervisor.Controller()
		session := controller.Session()
		if session == nil {
			return controller.Err()
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.Info("badge duration elapsed", "duration", showOpts.duration)
			}
			return nil
		case <-session.Done():
			if supervisor.Controller() != controller {
				continue
			}
			if err := session.Err(); err != nil {
				return err
			}
			logger.Info("badge closed")
			return nil
		}
	}
}

// stopBadge closes the badge, waiting at most the configured close timeout.
func stopBadge(ctx context.Context, supervisor *daemon.Supervisor) {
	waitCtx := context.WithoutCancel(ctx)
	if timeout := supervisor.Controller().Config().CloseTimeout.Duration(); timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(waitCtx, timeout)
		defer cancel()
	}
	if err := supervisor.Stop(waitCtx); err != nil {
		logger.Warn("badge did not close in time", "error", err)
	}
}
