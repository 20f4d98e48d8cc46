// Package console is the operator's line-oriented prompt/answer interface.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const (
	ConfirmPrompt = "Is this correct? [yes/no] "
	NotRecognized = "Input not recognized, use: `Yes`/`No`."
)

// ErrClosed is returned when the operator input reaches EOF.
var ErrClosed = errors.New("console input closed")

type Console struct {
	in    *bufio.Reader
	out   io.Writer
	warn  *color.Color
	once  sync.Once
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		warn:  color.New(color.FgYellow, color.Bold),
		lines: make(chan readResult),
	}
}

// readLines feeds c.lines until the input fails, then closes it. It reads at
// most one line ahead of the prompts, and a line read while nobody waits is
// kept for the next Ask.
func (c *Console) readLines() {
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if err == nil || strings.TrimSpace(line) != "" {
			c.lines <- readResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.lines <- readResult{err: fmt.Errorf("read operator input: %w", err)}
			}
			return
		}
	}
}

// Ask prints prompt and returns the answer line without its line ending.
// Leading and trailing spaces are trimmed. Ask returns ctx.Err() as soon as
// ctx is done, even while waiting for input.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.once.Do(func() { go c.readLines() })

	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-c.lines:
		if !ok {
			return "", ErrClosed
		}
		if r.err != nil {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

// Confirm asks prompt until the answer starts with y or n (any case).
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	if prompt == "" {
		prompt = ConfirmPrompt
	}
	for {
		answer, err := c.Ask(ctx, prompt)
		if err != nil {
			return false, err
		}
		if yes, ok := ParseYesNo(answer); ok {
			return yes, nil
		}
		fmt.Fprintln(c.out, NotRecognized)
	}
}

// ParseYesNo matches the y/n prefix of answer.
func ParseYesNo(answer string) (yes bool, ok bool) {
	switch {
	case strings.HasPrefix(strings.ToLower(answer), "y"):
		return true, true
	case strings.HasPrefix(strings.ToLower(answer), "n"):
		return false, true
	}
	return false, false
}

func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.out, "WARNING: "+format+"\n", args...)
}

func (c *Console) Show(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Table renders rows under header.
func (c *Console) Table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}
