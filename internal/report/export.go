package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to copy")

// Sink receives exported text.
type Sink interface {
	WriteText(text string) error
}

// ClipboardSink writes to the system clipboard (xclip, xsel or wl-copy on Linux).
type ClipboardSink struct{}

func (ClipboardSink) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteText(text string) error {
	_, err := fmt.Fprintln(s.W, text)
	return err
}

// Copy exports the table as TSV. An empty table is ErrNoData.
func Copy(t Table, sink Sink) error {
	if t.Empty() {
		return ErrNoData
	}
	if err := sink.WriteText(t.TSV()); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}

var (
	okStatus   = color.New(color.FgGreen)
	warnStatus = color.New(color.FgYellow)
	failStatus = color.New(color.FgRed, color.Bold)
)

type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelFail
)

// WriteStatus prints a status line, coloured when w is a terminal.
func WriteStatus(w io.Writer, level Level, status string) {
	c := okStatus
	switch level {
	case LevelWarn:
		c = warnStatus
	case LevelFail:
		c = failStatus
	}
	_, _ = c.Fprintln(w, status)
}
