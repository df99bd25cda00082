package utils

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// OutputTarget buffers job output for either a console stream or a file.
// File targets go to a uniquely named pending file next to path and only
// replace path in Commit, so a failed or concurrent run never clobbers an
// earlier complete file.
type OutputTarget struct {
	w       *bufio.Writer
	pending *renameio.PendingFile
	path    string
}

// OpenOutputTarget opens path for writing, or wraps console when path is empty.
func OpenOutputTarget(path string, console io.Writer) (*OutputTarget, error) {
	if path == "" {
		return &OutputTarget{w: bufio.NewWriter(console)}, nil
	}

	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &OutputTarget{
		w:       bufio.NewWriter(pending),
		pending: pending,
		path:    path,
	}, nil
}

func (o *OutputTarget) Writer() io.Writer {
	return o.w
}

func (o *OutputTarget) IsConsole() bool {
	return o.path == ""
}

// Commit terminates console output with a newline, or syncs the pending file
// and renames it over path.
func (o *OutputTarget) Commit() error {
	if o.IsConsole() {
		if _, err := o.w.WriteString("\n"); err != nil {
			return err
		}
		return o.w.Flush()
	}

	if err := o.w.Flush(); err != nil {
		return err
	}
	return o.pending.CloseAtomicallyReplace()
}

// Discard releases the target after a failed run. Buffered console output is
// still flushed; the pending file is removed.
func (o *OutputTarget) Discard() {
	if o.IsConsole() {
		if err := o.w.Flush(); err != nil {
			slog.Error("Error flushing output", slog.String("error", err.Error()))
		}
		return
	}

	if err := o.pending.Cleanup(); err != nil {
		slog.Error("Error removing pending output file", slog.String("path", o.path), slog.String("error", err.Error()))
	}
}
