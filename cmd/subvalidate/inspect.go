package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/subvalidate/internal/config"
	"github.com/gyeh/subvalidate/internal/exitcode"
	"github.com/gyeh/subvalidate/internal/logging"
	"github.com/gyeh/subvalidate/internal/tableread"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path> [<options_path>]",
	Short: "Load one table and report its headers, dtypes and blanks (no comparison)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	path := args[0]
	optsPath := ""
	if len(args) == 2 {
		optsPath = args[1]
	}
	if code := inspect(context.Background(), &cfg, path, optsPath, cmd.OutOrStdout(), log); code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}

func inspect(ctx context.Context, c *config.Config, path, optsPath string, out io.Writer, log zerolog.Logger) int {
	opts := tableread.DefaultOptions()
	if optsPath != "" {
		o, err := config.LoadOptionsFile(optsPath)
		if err != nil {
			log.Error().Err(err).Msg("load options failed")
			return exitcode.UsageError
		}
		opts = o
	}

	loader, closeLoader, code := openLoader(ctx, c, log, path)
	if code != exitcode.Success {
		return code
	}
	defer closeLoader()

	t, err := loader.Load(ctx, path, opts)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("failed to load table")
		return exitcode.LoadError
	}

	fmt.Fprintln(out, "=== subvalidate inspect ===")
	fmt.Fprintf(out, "Source:     %s\n", path)
	fmt.Fprintf(out, "Index col:  %s\n", opts.IndexCol)
	fmt.Fprintf(out, "Rows:       %d\n", t.NumRows())
	fmt.Fprintf(out, "Columns:    %d\n", len(t.Columns))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Headers and dtypes:")
	fmt.Fprintf(out, "  %-24s %-9s %s\n", displayName(t.Index.Name), t.Index.DType, "(index)")
	for _, col := range t.Columns {
		nulls := 0
		for _, v := range col.Values {
			if v.Null {
				nulls++
			}
		}
		fmt.Fprintf(out, "  %-24s %-9s %d blank\n", displayName(col.Name), col.DType, nulls)
	}
	fmt.Fprintf(out, "\nRows with blanks: %d\n", len(t.NullRowIDs()))
	return exitcode.Success
}

func displayName(name string) string {
	if name == "" {
		return `""`
	}
	return name
}
