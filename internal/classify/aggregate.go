package classify

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// maxLineSize bounds the length of a single input line. Longer lines make
// the file fail with bufio.ErrTooLong.
const maxLineSize = 64 * 1024 * 1024

// PathResolver maps an input file name from the command line to the path
// that is opened. config.Settings satisfies it.
type PathResolver interface {
	InputPath(name string) string
}

// FileReadError reports an input file that could not be opened or read.
// It never aborts a run: the file is skipped and the remaining files are
// still processed.
type FileReadError struct {
	// Name is the file name as given on the command line.
	Name string

	// Path is the resolved path that was opened.
	Path string

	// Err is the underlying I/O error.
	Err error
}

// Error satisfies the error interface.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read input file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Aggregator reads input files and accumulates their classified lines.
type Aggregator struct {
	paths  PathResolver
	logger *zap.Logger
}

// NewAggregator creates an Aggregator that resolves input names through
// paths and reports diagnostics to logger. A nil logger discards them.
func NewAggregator(paths PathResolver, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{paths: paths, logger: logger}
}

// ReadAll processes every named file in order into a fresh Buckets value.
// Files that fail are logged and returned as *FileReadError values; they do
// not stop the remaining files from being read.
func (a *Aggregator) ReadAll(names []string) (*model.Buckets, []error) {
	buckets := &model.Buckets{}
	var errs []error

	for _, name := range names {
		if err := a.ReadFile(name, buckets); err != nil {
			errs = append(errs, err)
		}
	}

	fields := []zap.Field{
		zap.Int("files", len(names)),
		zap.Int("failed", len(errs)),
		zap.Int("values", buckets.Total()),
	}
	for _, c := range model.Categories {
		fields = append(fields, zap.Int(c.String(), buckets.Len(c)))
	}
	a.logger.Debug("Input files processed", fields...)

	return buckets, errs
}

// ReadFile classifies every line of one file into b, in file order.
//
// Lines are split on "\n" with a trailing "\r" removed. If reading fails
// part-way through, the lines read before the failure stay in b and a
// *FileReadError is returned (and logged).
func (a *Aggregator) ReadFile(name string, b *model.Buckets) error {
	path := a.paths.InputPath(name)
	log := a.logger.With(zap.String("file", path))

	f, err := os.Open(path)
	if err != nil {
		return a.fail(log, name, path, err)
	}
	// The file is only read, so a Close error carries no information.
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := 0
	for scanner.Scan() {
		line := scanner.Text()
		v := Classify(line)
		if v.Category() != model.CategoryInteger {
			log.Debug("Line fell through numeric parsing",
				zap.Int("line", lines+1),
				zap.String("category", v.Category().String()))
		}
		b.Add(v)
		lines++
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("line %d exceeds %d bytes: %w", lines+1, maxLineSize, err)
		}
		return a.fail(log, name, path, err)
	}

	log.Debug("Input file processed", zap.Int("lines", lines))
	return nil
}

// fail logs a read failure and wraps it as a *FileReadError.
func (a *Aggregator) fail(log *zap.Logger, name, path string, err error) error {
	log.Error("Failed to process input file, skipping", zap.Error(err))
	return &FileReadError{Name: name, Path: path, Err: err}
}
