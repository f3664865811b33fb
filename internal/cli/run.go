package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/shinji-kodama/typefilter/internal/classify"
	"github.com/shinji-kodama/typefilter/internal/config"
	"github.com/shinji-kodama/typefilter/internal/model"
	"github.com/shinji-kodama/typefilter/internal/output"
	"github.com/shinji-kodama/typefilter/internal/stats"
)

// runner executes one typefilter run. Its fields are the collaborators
// that tests replace.
type runner struct {
	// workDir is the default base directory. Empty means os.Getwd().
	workDir string

	// newLogger builds the diagnostics logger once the verbosity is known.
	newLogger func(verbose bool) (*zap.Logger, error)
}

// run is the main logic of the root command:
// parse arguments → read and classify input files → write output files →
// print statistics.
//
// Configuration errors abort before any file is touched. Unreadable input
// files are logged and skipped. Output files that fail are logged, the
// remaining ones are still written and statistics are still printed, and
// the run then fails with ExitWriteFailed.
func (r *runner) run(stdout io.Writer, args []string) error {
	// Step 1: Parse the command line.
	parsed, err := config.ParseArgs(args)
	if err != nil {
		return configError(err)
	}

	workDir := r.workDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to determine working directory", err)
		}
	}

	// Step 2: Layer the config file and options into typed settings.
	settings, err := config.Resolve(parsed, workDir)
	if err != nil {
		return configError(err)
	}

	logger, err := r.newLogger(settings.Verbose)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to initialize logger", err)
	}
	// Sync fails harmlessly on terminals (ENOTTY/EINVAL on stderr).
	defer func() { _ = logger.Sync() }()

	logger.Debug("Resolved configuration",
		zap.String("baseDir", settings.BaseDir),
		zap.String("prefix", settings.Prefix),
		zap.Bool("append", settings.Append),
		zap.String("stats", settings.Mode.String()),
		zap.String("format", settings.Format.String()),
		zap.Strings("files", settings.Files))
	if len(settings.Unknown) > 0 {
		logger.Debug("Ignoring unknown options", zap.Strings("options", settings.Unknown))
	}
	if len(settings.Files) == 0 {
		logger.Warn("No input files given; output files will be empty")
	}

	// Step 3: Read and classify every input file, in order.
	// Each failure is already logged by the aggregator; unreadable files
	// are skipped and do not change the exit status.
	buckets, readErrs := classify.NewAggregator(settings, logger).ReadAll(settings.Files)
	if len(readErrs) > 0 {
		logger.Warn("Some input files could not be read and were skipped",
			zap.Int("failed", len(readErrs)),
			zap.Int("files", len(settings.Files)))
	}

	// Step 4: Write one output file per category.
	writeErrs := output.NewWriter(settings, settings.Append, logger).WriteAll(buckets)

	// Step 5: Print statistics, if requested.
	summary := stats.Summarize(buckets, settings.TrueMean)
	if err := stats.Render(stdout, summary, settings.Mode, settings.Format); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to print statistics", err)
	}

	if len(writeErrs) > 0 {
		return model.WrapCLIError(model.ExitWriteFailed,
			fmt.Sprintf("failed to write %d of %d output files", len(writeErrs), len(model.Categories)),
			errors.Join(writeErrs...))
	}
	return nil
}

// configError converts a configuration failure into a usage CLIError.
func configError(err error) error {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return model.WrapCLIError(model.ExitUsageError, "invalid command line", cfgErr)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
}
