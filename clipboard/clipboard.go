// Package clipboard copies review links to the system clipboard, using
// OSC 52 escape sequences when running over SSH or without a clipboard tool.
package clipboard

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method records how text reached the clipboard.
type Method int

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	if m == MethodOSC52 {
		return "terminal (OSC 52)"
	}
	return "system clipboard"
}

// Clipboard copies text out of the viewer.
type Clipboard struct {
	last   string
	isSSH  bool
	mux    string // "tmux", "screen" or ""
	output io.Writer

	writeSystem func(string) error
}

// New creates a Clipboard that writes OSC 52 sequences to output
// (os.Stdout when nil).
func New(output io.Writer) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	return &Clipboard{
		isSSH:       isSSHSession(),
		mux:         detectMultiplexer(),
		output:      output,
		writeSystem: clipboard.WriteAll,
	}
}

func isSSHSession() bool {
	for _, key := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func detectMultiplexer() string {
	switch {
	case os.Getenv("TMUX") != "":
		return "tmux"
	case os.Getenv("STY") != "":
		return "screen"
	default:
		return ""
	}
}

// Copy puts text on the clipboard. Over SSH it always uses OSC 52; locally
// it tries the system clipboard first.
func (c *Clipboard) Copy(text string) (Method, error) {
	c.last = text

	if !c.isSSH && c.writeSystem != nil && !clipboard.Unsupported {
		if err := c.writeSystem(text); err == nil {
			return MethodSystem, nil
		}
	}
	return MethodOSC52, c.copyOSC52(text)
}

func (c *Clipboard) copyOSC52(text string) error {
	seq := osc52.New(text)
	switch c.mux {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.output)
	return err
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() string {
	return c.last
}

// IsSSH reports whether an SSH session was detected.
func (c *Clipboard) IsSSH() bool {
	return c.isSSH
}
