package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user to confirm or override values on the terminal.
// Import flows use it so every parsed field can be corrected before
// commit.
type Prompter struct {
	reader *Reader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if out == nil {
		panic("writer cannot be nil")
	}
	return &Prompter{reader: NewReader(in), writer: out}
}

// Ask prompts for a value, offering def as the default. An empty answer
// keeps the default.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", err
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question and returns true for yes.
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	answer, err := p.Ask(ctx, label+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
