// File: cmd/watch.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"transclude/pkg/config"
	"transclude/pkg/include"
	"transclude/pkg/watch"

	"github.com/spf13/cobra"
)

// watchCmd keeps a document's expansion up to date: it expands once, then
// re-expands whenever the document or anything in its inclusion tree
// changes.
var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Re-expand a document whenever its inclusion tree changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		configPath, err := flags.GetString("config")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		output, _ := flags.GetString("output")
		debounce, _ := flags.GetDuration("debounce")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		root, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve document path: %w", err)
		}
		if output == "" {
			ext := filepath.Ext(root)
			output = strings.TrimSuffix(root, ext) + ".out" + ext
		}

		expander := include.NewExpander(cfg.Settings(), nil, logger)
		watcher, err := watch.New(expander, root, output, debounce, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "Output file (default: sibling <name>.out.<ext>)")
	watchCmd.Flags().StringP("config", "c", "", "Path to a settings file (default ./"+config.FileName+")")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-expanding")
	RootCmd.AddCommand(watchCmd)
}
