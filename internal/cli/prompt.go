package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks init's interactive questions. At end of input an empty
// answer takes the default; a required answer with no default is an error.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	return prompter{in: bufio.NewReader(in), out: out}
}

// answer reads one line. eof is set when input ended on this line.
func (p prompter) answer() (line string, eof bool, err error) {
	line, err = p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), false, nil
}

// ask returns a free-text answer, or def when the answer is blank.
func (p prompter) ask(label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		line, eof, err := p.answer()
		switch {
		case err != nil:
			return "", err
		case line != "":
			return line, nil
		case def != "":
			return def, nil
		case eof:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// confirm asks a yes/no question, re-asking on anything else while input remains.
func (p prompter) confirm(label string, defaultYes bool) (bool, error) {
	choices := "y/N"
	if defaultYes {
		choices = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, choices)
		line, eof, err := p.answer()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid response %q", line)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
