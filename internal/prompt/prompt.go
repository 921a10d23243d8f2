// Package prompt asks for the scan folder and threshold on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"cert-checker/internal/entity"
)

// MaxAttempts bounds how many invalid answers are accepted before giving up.
const MaxAttempts = 3

// ErrAborted is returned when input ends before a valid answer was given.
var ErrAborted = errors.New("input closed")

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrAborted
		}
		return "", err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Folder asks until the answer is an existing directory. invalidMsg is shown after each bad answer.
func (p *Prompter) Folder(label, invalidMsg, def string) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		answer, err := p.ask(label, def)
		if err != nil {
			return "", err
		}
		if info, statErr := os.Stat(answer); answer != "" && statErr == nil && info.IsDir() {
			return answer, nil
		}
		fmt.Fprintln(p.out, invalidMsg)
	}
	return "", entity.ConfigError(invalidMsg)
}

// Threshold asks for a day count in [entity.MinThreshold, entity.MaxThreshold]. An empty answer keeps def.
func (p *Prompter) Threshold(label string, def int) (int, error) {
	for i := 0; i < MaxAttempts; i++ {
		answer, err := p.ask(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= entity.MinThreshold && n <= entity.MaxThreshold {
			return n, nil
		}
		fmt.Fprintf(p.out, "%d-%d\n", entity.MinThreshold, entity.MaxThreshold)
	}
	return 0, entity.ConfigError(fmt.Sprintf("day threshold must be between %d and %d", entity.MinThreshold, entity.MaxThreshold))
}

// Choice is one action of the post-scan menu.
type Choice struct {
	Key   string
	Label string
}

// Menu prints the choices on one line and returns the key picked. Unknown
// answers are asked again; end of input returns ErrAborted.
func (p *Prompter) Menu(choices ...Choice) (string, error) {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprintf("[%s] %s", c.Key, c.Label)
	}
	label := strings.Join(parts, "  ")

	for {
		answer, err := p.ask(label, "")
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if strings.EqualFold(answer, c.Key) {
				return c.Key, nil
			}
		}
	}
}
