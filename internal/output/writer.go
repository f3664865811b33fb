package output

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// TargetResolver maps a category to its output file path. The boolean is
// false when the category is not written at all. config.Settings
// satisfies it.
type TargetResolver interface {
	OutputPath(c model.Category) (string, bool)
}

// FileWriteError reports a category whose output file could not be
// written. The other categories are still written.
type FileWriteError struct {
	// Category is the bucket being written.
	Category model.Category

	// Path is the output file path.
	Path string

	// Err is the underlying I/O error.
	Err error
}

// Error satisfies the error interface.
func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s to %s: %v", e.Category, e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// Writer serializes buckets to their output files.
type Writer struct {
	targets    TargetResolver
	appendMode bool
	logger     *zap.Logger
}

// NewWriter creates a Writer. When appendMode is true, existing output
// files are appended to; otherwise they are truncated. A nil logger
// discards diagnostics.
func NewWriter(targets TargetResolver, appendMode bool, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{targets: targets, appendMode: appendMode, logger: logger}
}

// WriteAll writes every category of b in model.Categories order. A failed
// category is logged and returned as a *FileWriteError, and writing
// continues with the next category.
func (w *Writer) WriteAll(b *model.Buckets) []error {
	var errs []error
	for _, c := range model.Categories {
		if err := w.Write(c, b.Lines(c)); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Write writes lines to the output file of category c, one per line. The
// file is created if missing; the directory is not. Nothing is written
// when the category has no target.
func (w *Writer) Write(c model.Category, lines []string) error {
	path, ok := w.targets.OutputPath(c)
	if !ok {
		w.logger.Debug("Output disabled for category", zap.String("category", c.String()))
		return nil
	}

	if err := w.writeFile(path, lines); err != nil {
		w.logger.Error("Failed to write output file",
			zap.String("category", c.String()),
			zap.String("file", path),
			zap.Error(err))
		return &FileWriteError{Category: c, Path: path, Err: err}
	}

	w.logger.Info("Output file written",
		zap.String("category", c.String()),
		zap.String("file", path),
		zap.Int("values", len(lines)),
		zap.Bool("append", w.appendMode))
	return nil
}

// writeFile opens path in the configured mode and writes lines through a
// buffered writer. The first error wins; the file is always closed.
func (w *Writer) writeFile(path string, lines []string) (err error) {
	flags := os.O_WRONLY | os.O_CREATE
	if w.appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if _, err := bw.WriteString(LineEnding); err != nil {
			return err
		}
	}
	return bw.Flush()
}
