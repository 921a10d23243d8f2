// Package app drives one terminal session: scan, print, export, switch language.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
	"cert-checker/internal/prompt"
	"cert-checker/internal/report"
	"cert-checker/internal/usecase"
)

// Scanner is satisfied by *usecase.CertScanService.
type Scanner interface {
	Scan(ctx context.Context, cfg entity.ScanConfig) (*entity.ScanResult, error)
}

const (
	choiceSearch = "s"
	choiceCopy   = "c"
	choiceLang   = "l"
	choiceQuit   = "q"
)

type Session struct {
	Scanner Scanner
	Out     io.Writer
	Logger  usecase.Logger

	state  i18n.State
	result *entity.ScanResult
}

func NewSession(scanner Scanner, lang i18n.Lang, out io.Writer, logger usecase.Logger) *Session {
	return &Session{
		Scanner: scanner,
		Out:     out,
		Logger:  logger,
		state:   i18n.NewState(lang),
	}
}

func (s *Session) State() i18n.State {
	return s.state
}

func (s *Session) View() i18n.View {
	return i18n.Render(s.state)
}

// Table is the last scan in the current language.
func (s *Session) Table() report.Table {
	return report.Build(s.result, s.View())
}

// Scan runs one scan and prints the table and status line.
func (s *Session) Scan(ctx context.Context, cfg entity.ScanConfig) error {
	s.state = s.state.Scanning(cfg.FolderPath, cfg.DayThreshold)
	report.WriteStatus(s.Out, report.LevelOK, s.View().Status)

	result, err := s.Scanner.Scan(ctx, cfg)
	if err != nil {
		s.state = s.state.Failed(err)
		s.result = nil
		report.WriteStatus(s.Out, report.LevelFail, s.View().Status)
		return err
	}

	s.result = result
	s.state = s.state.Done(len(result.Certificates()))
	s.print()
	return nil
}

// ToggleLanguage switches ru/en and reprints the current result.
func (s *Session) ToggleLanguage() {
	s.state = s.state.Toggle()
	s.Logger.Debugf("Language switched to %s", s.state.Lang)
	if s.result != nil {
		s.print()
	}
}

// Export sends the last table as TSV to sink and prints the outcome.
func (s *Session) Export(sink report.Sink) error {
	view := s.View()
	err := report.Copy(s.Table(), sink)
	switch {
	case errors.Is(err, report.ErrNoData):
		report.WriteStatus(s.Out, report.LevelWarn, view.NoData)
	case err != nil:
		report.WriteStatus(s.Out, report.LevelFail, err.Error())
	default:
		report.WriteStatus(s.Out, report.LevelOK, view.CopySuccess)
	}
	return err
}

func (s *Session) print() {
	table := s.Table()
	if !table.Empty() {
		table.Render(s.Out)
	}

	level := report.LevelOK
	if s.result != nil && len(s.result.Entries) > 0 {
		level = report.LevelWarn
	}
	report.WriteStatus(s.Out, level, s.View().Status)
}

// Interact asks for the folder and threshold, scans, then loops over the
// action menu until quit or end of input. Scan failures are shown and the
// menu stays available; a folder that cannot be obtained ends the session.
func (s *Session) Interact(ctx context.Context, p *prompt.Prompter, cfg entity.ScanConfig, sink report.Sink) error {
	fmt.Fprintln(s.Out, s.View().Title)

	for {
		next, err := s.ask(p, cfg)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		}
		cfg = next

		if err := s.Scan(ctx, cfg); err != nil {
			s.Logger.Errorf("Scan failed: %v", err)
		}

		rescan, err := s.menu(p, sink)
		if err != nil || !rescan {
			return err
		}
	}
}

func (s *Session) ask(p *prompt.Prompter, cfg entity.ScanConfig) (entity.ScanConfig, error) {
	view := s.View()

	folder, err := p.Folder(view.FolderFrame, view.ErrNoFolder, cfg.FolderPath)
	if err != nil {
		return cfg, err
	}
	threshold, err := p.Threshold(view.ThresholdLabel, cfg.DayThreshold)
	if err != nil {
		return cfg, err
	}

	cfg.FolderPath = folder
	cfg.DayThreshold = threshold
	return cfg, nil
}

// menu returns true when a new search was requested.
func (s *Session) menu(p *prompt.Prompter, sink report.Sink) (bool, error) {
	for {
		view := s.View()
		choice, err := p.Menu(
			prompt.Choice{Key: choiceSearch, Label: view.SearchButton},
			prompt.Choice{Key: choiceCopy, Label: view.CopyButton},
			prompt.Choice{Key: choiceLang, Label: view.ToggleButton},
			prompt.Choice{Key: choiceQuit, Label: view.QuitButton},
		)
		if errors.Is(err, prompt.ErrAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch choice {
		case choiceSearch:
			return true, nil
		case choiceCopy:
			if err := s.Export(sink); err != nil && !errors.Is(err, report.ErrNoData) {
				s.Logger.Errorf("Export failed: %v", err)
			}
		case choiceLang:
			s.ToggleLanguage()
		case choiceQuit:
			return false, nil
		}
	}
}
