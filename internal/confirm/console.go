package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// ConsoleToken must be typed to approve.
const ConsoleToken = "YES"

// Console prompts on a terminal. Only one prompt reads input at a time so
// concurrent requests never interleave on stdin.
type Console struct {
	in  io.Reader
	out io.Writer

	mu        sync.Mutex
	once      sync.Once
	lines     chan string
	abandoned bool
	styling   bool
}

// NewConsole creates a console provider. Nil streams default to stdin/stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		in:      in,
		out:     out,
		styling: isTerminal(out),
	}
}

// Name identifies the provider
func (c *Console) Name() string { return "console" }

// Confirm prints the request and approves iff the next line is YES in any case.
// EOF, a cancelled context or any other answer rejects.
func (c *Console) Confirm(ctx context.Context, req Request) (Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.once.Do(c.startReader)
	c.drain()

	c.print(color.Bold, "\n=== %s ===\n", req.Title)
	fmt.Fprintf(c.out, "%s\n", req.Message)
	c.print(color.FgYellow, "Type %s to confirm: ", ConsoleToken)

	select {
	case <-ctx.Done():
		c.abandoned = true
		fmt.Fprintln(c.out)
		return Rejected, ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return Rejected, nil
		}
		return Evaluate(line), nil
	}
}

// Evaluate maps a typed answer to a decision.
func Evaluate(answer string) Decision {
	if strings.EqualFold(strings.TrimSpace(answer), ConsoleToken) {
		return Approved
	}
	return Rejected
}

// startReader pumps input lines into a channel so a pending read can be
// abandoned when the context ends.
func (c *Console) startReader() {
	c.lines = make(chan string, 1)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
	}()
}

// drain discards a line already buffered when an earlier prompt gave up.
// A line that arrives after the next prompt is printed is read as its answer.
func (c *Console) drain() {
	if !c.abandoned {
		return
	}
	c.abandoned = false
	select {
	case <-c.lines:
	default:
	}
}

func (c *Console) print(style color.Color, format string, a ...any) {
	if c.styling {
		fmt.Fprint(c.out, style.Sprintf(format, a...))
		return
	}
	fmt.Fprintf(c.out, format, a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
