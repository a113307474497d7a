package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Question is one value to ask the user for. The answer is written to Value.
type Question struct {
	Title     string
	Value     *string
	Required  bool
	Secret    bool
	Multiline bool
}

// Prompter asks the user for values missing from the command line.
type Prompter interface {
	Ask(ctx context.Context, questions ...Question) error
}

// huhPrompter asks questions with a single huh form drawn on out.
type huhPrompter struct {
	out io.Writer
}

func (p *huhPrompter) Ask(ctx context.Context, questions ...Question) error {
	if len(questions) == 0 {
		return nil
	}

	fields := make([]huh.Field, 0, len(questions))
	for _, q := range questions {
		if q.Multiline {
			text := huh.NewText().
				Title(q.Title).
				Value(q.Value)
			if q.Required {
				text = text.Validate(validateRequired(q.Title))
			}
			fields = append(fields, text)
			continue
		}

		input := huh.NewInput().
			Title(q.Title).
			Value(q.Value)
		if q.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		if q.Required {
			input = input.Validate(validateRequired(q.Title))
		}
		fields = append(fields, input)
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if p.out != nil {
		form = form.WithOutput(p.out)
	}
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("prompting: %w", err)
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
