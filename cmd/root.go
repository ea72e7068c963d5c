package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "transclude",
	Short: "transclude is a CLI tool for expanding file-inclusion directives",
	Long: `transclude resolves inline include directives in text documents,
splicing in the referenced files recursively: includes can nest, address
line and word ranges, and be wrapped as block quotations with a source
citation. Circular references are detected and reported in place.`,
}

// logger is the process logger shared by all subcommands.
var logger *zap.Logger

// Execute wires the process logger into the command tree and runs it.
func Execute(l *zap.Logger) error {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	return RootCmd.Execute()
}
