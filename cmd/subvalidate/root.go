package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/subvalidate/internal/config"
	"github.com/gyeh/subvalidate/internal/db"
	"github.com/gyeh/subvalidate/internal/exitcode"
	"github.com/gyeh/subvalidate/internal/logging"
	"github.com/gyeh/subvalidate/internal/tableread"
	"github.com/gyeh/subvalidate/internal/validate"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "subvalidate <format_path> <submission_path> [<options_path>]",
	Short: "Check a competition submission against its submission format",
	Long: "Compares a submission table with the submission format table: headers, row count, " +
		"row ids, column data types and unexpected blanks. The optional options file is a JSON " +
		"or YAML object of load options (index_col, skipinitialspace, sep, na_values, ...).",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("SUBVALIDATE_DB_URL"), "Postgres connection string for pg: sources (or set SUBVALIDATE_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log each validation step")

	rootCmd.Flags().BoolVar(&cfg.SkipDatasetValidation, "skip-dataset-validation", false, "Only check that both tables load")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := cfg.FromArgs(args); err != nil {
		return cmd.Usage()
	}
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	if code := check(context.Background(), &cfg, cmd.OutOrStdout(), log); code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}

// check validates the configured submission and writes the verdict to out.
// It returns the process exit code.
func check(ctx context.Context, c *config.Config, out io.Writer, log zerolog.Logger) int {
	if err := c.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.UsageError
	}

	opts, err := c.LoadOptions()
	if err != nil {
		log.Error().Err(err).Msg("load options failed")
		return exitcode.UsageError
	}

	loader, closeLoader, code := openLoader(ctx, c, log, c.FormatPath, c.SubmissionPath)
	if code != exitcode.Success {
		return code
	}
	defer closeLoader()

	fmt.Fprintln(out, "Checking all of your ducks to see if they are in a row...")
	fmt.Fprintln(out)

	v := validate.New(loader, opts, log)
	table, err := v.Validate(ctx, c.FormatPath, c.SubmissionPath, c.SkipDatasetValidation)
	if err != nil {
		if validate.IsAnticipated(err) {
			fmt.Fprintln(out, "Caught anticipated error. Fix the below and retry.")
			fmt.Fprintln(out, strings.Repeat("-", 50))
			fmt.Fprintln(out, err.Error())
			return exitcode.ValidationError
		}
		fmt.Fprintln(out, "Unanticipated error. What have you done??")
		fmt.Fprintln(out, strings.Repeat("-", 41))
		log.Error().Err(err).
			Str("format", c.FormatPath).
			Str("submission", c.SubmissionPath).
			Msg("validation failed")
		if errors.Is(err, tableread.ErrInvalidOptions) {
			return exitcode.UsageError
		}
		return exitcode.LoadError
	}

	log.Debug().Int("rows", table.NumRows()).Msg("submission valid")
	fmt.Fprintln(out, "Nice work, your submission is valid. Submit it!")
	return exitcode.Success
}

// openLoader returns a loader able to read every source, connecting to the
// database only when one of them is a pg: table.
func openLoader(ctx context.Context, c *config.Config, log zerolog.Logger, sources ...string) (tableread.Loader, func(), int) {
	needsDB := false
	for _, s := range sources {
		if strings.HasPrefix(s, tableread.PostgresPrefix) {
			needsDB = true
		}
	}
	if !needsDB {
		return tableread.NewRouter(nil), func() {}, exitcode.Success
	}

	pool, err := db.NewPool(ctx, c.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return nil, nil, exitcode.DBConnError
	}
	return tableread.NewRouter(pool), pool.Close, exitcode.Success
}
