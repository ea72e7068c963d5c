// File: cmd/tree.go
package cmd

import (
	"fmt"
	"path/filepath"

	"transclude/pkg/config"
	"transclude/pkg/include"

	"github.com/spf13/cobra"
)

// treeCmd prints the inclusion tree of a document: which files it pulls in,
// recursively, with markers for targets that are missing or circular.
var treeCmd = &cobra.Command{
	Use:   "tree <document>",
	Short: "Print the inclusion tree of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		root, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve document path: %w", err)
		}

		expander := include.NewExpander(cfg.Settings(), nil, logger)
		tree, err := expander.Tree(root)
		if err != nil {
			return err
		}

		fmt.Print(include.RenderTree(tree))
		return nil
	},
}

func init() {
	treeCmd.Flags().StringP("config", "c", "", "Path to a settings file (default ./"+config.FileName+")")
	RootCmd.AddCommand(treeCmd)
}
