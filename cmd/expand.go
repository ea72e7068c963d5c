// File: cmd/expand.go
package cmd

import (
	"fmt"

	"transclude/pkg/batch"
	"transclude/pkg/config"
	"transclude/pkg/include"

	"github.com/spf13/cobra"
)

// expandCmd expands inclusion directives in one or more documents. Single
// files print to stdout unless --output is given; directories are traversed
// and each document is written next to itself or into --output-dir.
var expandCmd = &cobra.Command{
	Use:   "expand [paths...]",
	Short: "Expand inclusion directives in documents",
	Long: `Expand resolves every include directive in the given documents.
Files named directly are always processed; directories are traversed with
.transcludeignore rules, the document extension filter, and the size cap
applied. Each root document is expanded independently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, opts, err := expandConfiguration(cmd)
		if err != nil {
			return err
		}
		opts.Paths = args
		return batch.Run(opts, settings, logger)
	},
}

// expandConfiguration merges the settings file with the command-line
// overrides.
func expandConfiguration(cmd *cobra.Command) (include.Settings, batch.Options, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return include.Settings{}, batch.Options{}, fmt.Errorf("error reading flags: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return include.Settings{}, batch.Options{}, err
	}
	settings := cfg.Settings()

	if flags.Changed("quote") {
		quote, _ := flags.GetBool("quote")
		settings.QuoteFormatting = quote
	}
	if flags.Changed("cite") {
		cite, _ := flags.GetBool("cite")
		settings.QuoteIncludeSource = cite
	}

	output, _ := flags.GetString("output")
	outputDir, _ := flags.GetString("output-dir")
	suffix, _ := flags.GetString("suffix")
	extensions, _ := flags.GetStringSlice("ext")
	maxSizeKB, _ := flags.GetInt("max-size")
	workers, _ := flags.GetInt("workers")
	ignorePatterns, _ := flags.GetStringArray("ignore")
	globalIgnore, _ := flags.GetString("global-ignore")
	verbose, _ := flags.GetBool("verbose")

	opts := batch.Options{
		Output:           output,
		OutputDir:        outputDir,
		Suffix:           suffix,
		Extensions:       extensions,
		MaxFileSizeKB:    maxSizeKB,
		MaxWorkers:       workers,
		IgnorePatterns:   ignorePatterns,
		GlobalIgnoreFile: globalIgnore,
		Verbose:          verbose,
	}
	return settings, opts, nil
}

func init() {
	expandCmd.Flags().StringP("output", "o", "", "Output file for a single document (default stdout)")
	expandCmd.Flags().String("output-dir", "", "Directory receiving one output file per document")
	expandCmd.Flags().String("suffix", ".out", "Suffix inserted before the extension for sibling outputs")
	expandCmd.Flags().StringP("config", "c", "", "Path to a settings file (default ./"+config.FileName+")")
	expandCmd.Flags().Bool("quote", false, "Wrap included content as block quotations by default")
	expandCmd.Flags().Bool("cite", true, "Append a source citation to quoted content")
	expandCmd.Flags().StringSlice("ext", nil, "Document extensions considered during traversal")
	expandCmd.Flags().Int("max-size", 0, "Skip documents larger than this many KB during traversal")
	expandCmd.Flags().IntP("workers", "w", 0, "Worker pool size (default: number of CPUs)")
	expandCmd.Flags().StringArrayP("ignore", "i", nil, "Additional ignore pattern (repeatable)")
	expandCmd.Flags().String("global-ignore", "", "Path to a global ignore file")
	expandCmd.Flags().BoolP("verbose", "v", false, "Log skipped files during traversal")

	RootCmd.AddCommand(expandCmd)
}
