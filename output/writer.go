package output

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// StdoutWriter prints each rendered line to standard output in order.
type StdoutWriter struct{}

// Write prints the lines.
func (w *StdoutWriter) Write(lines []string) error {
	for _, line := range lines {
		fmt.Println(line)
	}

	return nil
}

// FileWriter writes rendered lines to a file, truncating any existing
// content. There is no temp-file-plus-rename step: a failure mid-write can
// leave partial content behind.
type FileWriter struct {
	Path string
}

// Write creates the target file, writes each line followed by a newline, and
// flushes before reporting success.
func (w *FileWriter) Write(lines []string) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.Path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)

	for _, line := range lines {
		_, err = buf.WriteString(line)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, w.Path, err)
		}

		err = buf.WriteByte('\n')
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, w.Path, err)
		}
	}

	err = buf.Flush()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.Path, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, w.Path, err)
	}

	slog.Info("wrote comments to file", "path", w.Path)

	return nil
}
