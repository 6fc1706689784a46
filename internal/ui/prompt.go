package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrCancelledInput is returned when the user interrupts a prompt or closes
// the input stream before answering.
var ErrCancelledInput = errors.New("input cancelled")

// SecretReader reads one line without echoing it.
type SecretReader interface {
	ReadSecret() (string, error)
}

// Prompter asks questions on a line-oriented input. After ErrCancelledInput
// the Prompter must not be reused: the abandoned read may still be pending.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	secret SecretReader
	logger *zap.Logger
}

// PrompterOption customizes a Prompter.
type PrompterOption func(*Prompter)

// WithSecretReader sets the reader used for masked prompts. Without one,
// masked prompts fall back to a plain line read.
func WithSecretReader(secret SecretReader) PrompterOption {
	return func(p *Prompter) {
		p.secret = secret
	}
}

// WithPromptLogger attaches a logger for diagnostics.
func WithPromptLogger(logger *zap.Logger) PrompterOption {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPrompter creates a Prompter reading from in and writing questions to out.
func NewPrompter(in io.Reader, out io.Writer, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt shows message, with the default in brackets when there is one, and
// reads a single line. A blank answer yields def; any other answer is
// returned exactly as typed.
func (p *Prompter) Prompt(ctx context.Context, message, def string, masked bool) (string, error) {
	suffix := ""
	if def != "" {
		suffix = fmt.Sprintf("[%s] ", def)
	}
	if _, err := fmt.Fprintf(p.out, "%s: %s", message, suffix); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	read := p.readLine
	if masked && p.secret != nil {
		read = p.readSecret
	}
	answer, err := p.await(ctx, read)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// PromptYesNo asks a yes/no question. y and yes in any case mean true, a
// blank answer means def, and everything else means false. It never asks
// twice.
func (p *Prompter) PromptYesNo(ctx context.Context, message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	answer, err := p.Prompt(ctx, fmt.Sprintf("%s %s", message, hint), "", false)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := read()
		done <- result{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		p.logger.Debug("prompt cancelled", zap.Error(ctx.Err()))
		return "", ErrCancelledInput
	case r := <-done:
		return r.line, r.err
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			return "", ErrCancelledInput
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *Prompter) readSecret() (string, error) {
	secret, err := p.secret.ReadSecret()
	// the terminal swallowed the user's newline
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelledInput
		}
		return "", fmt.Errorf("failed to read masked answer: %w", err)
	}
	return secret, nil
}
