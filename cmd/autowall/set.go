package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autowall/internal/hyprpaper"
)

var setOpts struct {
	monitor string
	mode    string
}

var setCmd = &cobra.Command{
	Use:   "set <wallpaper>",
	Short: "Preload and display a wallpaper now",
	Long: `Preload a wallpaper and display it, bypassing the schedule.

Relative names resolve against WALLPAPER_DIR. autowalld keeps running and
switches back at the next scheduled change, but it does not unload the image
set here.

Examples:
  autowall set beach.jpg
  autowall set ~/Pictures/city.png --monitor DP-1 --mode cover`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

var reloadCmd = &cobra.Command{
	Use:   "reload <wallpaper>",
	Short: "Preload, display and unload in one hyprpaper request",
	Long: `Send hyprpaper's reload command, which preloads the wallpaper, applies it
and unloads the monitor's previous image in a single step.`,
	Args: cobra.ExactArgs(1),
	RunE: runReload,
}

var unloadCmd = &cobra.Command{
	Use:   "unload <wallpaper|all>",
	Short: "Unload a preloaded wallpaper",
	Long: `Free a preloaded wallpaper from hyprpaper's memory. "all" unloads every
image that is not currently displayed.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnload,
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(unloadCmd)

	for _, cmd := range []*cobra.Command{setCmd, reloadCmd} {
		cmd.Flags().StringVar(&setOpts.monitor, "monitor", "",
			"Monitor to apply to (default: [display] monitor, or all monitors)")
		cmd.Flags().StringVar(&setOpts.mode, "mode", "",
			"Fit mode passed to hyprpaper (default: [display] mode)")
	}
}

// displayTarget returns the monitor and mode, falling back to the daemon config.
func displayTarget() (monitor, mode string) {
	monitor, mode = setOpts.monitor, setOpts.mode
	if monitor == "" {
		monitor = cfg.Display.Monitor
	}
	if mode == "" {
		mode = cfg.Display.Mode
	}
	return monitor, mode
}

// send delivers commands in order, stopping at the first failure.
func send(cmds ...hyprpaper.Command) error {
	client, err := hyprpaperClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Debug("sending to hyprpaper", "socket", client.SocketPath(), "commands", len(cmds))

	for _, c := range cmds {
		if _, err := client.Send(ctx, c); err != nil {
			return err
		}
		logger.Debug("command accepted", "command", c.Encode())
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	path := resolve(args[0])
	monitor, mode := displayTarget()

	if err := send(
		hyprpaper.Preload{Path: path},
		hyprpaper.Wallpaper{Monitor: monitor, Mode: mode, Path: path},
	); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runReload(cmd *cobra.Command, args []string) error {
	path := resolve(args[0])
	monitor, mode := displayTarget()

	if err := send(hyprpaper.Reload{Monitor: monitor, Mode: mode, Path: path}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runUnload(cmd *cobra.Command, args []string) error {
	unload := hyprpaper.UnloadAll()
	if args[0] != "all" {
		unload = hyprpaper.Unload{Path: resolve(args[0])}
	}
	return send(unload)
}
