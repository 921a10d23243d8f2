package i18n

import "fmt"

type Phase int

const (
	PhaseReady Phase = iota
	PhaseScanning
	PhaseDone
	PhaseFailed
)

// State is everything the rendered text depends on. It is a value: Toggle and
// the With* helpers return a modified copy.
type State struct {
	Lang      Lang
	Phase     Phase
	Folder    string
	Threshold int
	Found     int
	Err       error
}

func NewState(lang Lang) State {
	return State{Lang: lang, Phase: PhaseReady}
}

// Toggle switches between Russian and English.
func (s State) Toggle() State {
	s.Lang = s.Lang.Other()
	return s
}

func (s State) Scanning(folder string, threshold int) State {
	s.Phase = PhaseScanning
	s.Folder = folder
	s.Threshold = threshold
	s.Err = nil
	return s
}

func (s State) Done(found int) State {
	s.Phase = PhaseDone
	s.Found = found
	return s
}

func (s State) Failed(err error) State {
	s.Phase = PhaseFailed
	s.Err = err
	return s
}

// View is the full set of strings for one State.
type View struct {
	Title              string
	FolderFrame        string
	SettingsFrame      string
	ThresholdLabel     string
	SearchButton       string
	SelectFolderButton string
	CopyButton         string
	ToggleButton       string
	QuitButton         string
	Columns            []string
	Status             string
	ErrNoFolder        string
	CopySuccess        string
	NoData             string
}

// Render has no side effects; call it again after every State change.
func Render(s State) View {
	l := s.Lang
	return View{
		Title:              text(l, keyTitle),
		FolderFrame:        text(l, keyFolderFrame),
		SettingsFrame:      text(l, keySettingsFrame),
		ThresholdLabel:     text(l, keyRevokeInterval),
		SearchButton:       text(l, keySearchButton),
		SelectFolderButton: text(l, keySelectFolder),
		CopyButton:         text(l, keyCopyButton),
		ToggleButton:       text(l, keyToggleButton),
		QuitButton:         text(l, keyQuitButton),
		Columns: []string{
			text(l, keyFileColumn),
			text(l, keyExpiryColumn),
			text(l, keyDaysLeftColumn),
			text(l, keyIssuerColumn),
			text(l, keySubjectColumn),
			text(l, keySerialColumn),
		},
		Status:      status(s),
		ErrNoFolder: text(l, keyErrorNoFolder),
		CopySuccess: text(l, keyCopySuccess),
		NoData:      text(l, keyNoData),
	}
}

func status(s State) string {
	switch s.Phase {
	case PhaseScanning:
		return fmt.Sprintf(text(s.Lang, keyScanning), s.Folder)
	case PhaseDone:
		return fmt.Sprintf(text(s.Lang, keyDone), s.Found, s.Threshold)
	case PhaseFailed:
		if s.Err != nil {
			return fmt.Sprintf("%s: %v", text(s.Lang, keyError), s.Err)
		}
		return text(s.Lang, keyError)
	default:
		return text(s.Lang, keyStatusReady)
	}
}
