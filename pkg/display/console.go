// Display implementation for terminal and file output.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Dest selects where log lines go.
type Dest int

const (
	// ToConsole writes styled lines to the terminal only.
	ToConsole Dest = iota
	// ToFile writes timestamped plain lines to the log file only.
	ToFile
	// ToBoth writes to console and file.
	ToBoth
)

// Theme defines the console colors per severity.
type Theme struct {
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
	Dim     lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Mutable
type consoleDisplay struct {
	out     io.Writer
	in      io.Reader
	file    io.WriteCloser
	dest    Dest
	theme   *Theme
	verbose bool
	now     func() time.Time
}

// NewConsole creates a Display writing to standard error, reading prompt
// answers from standard input.
func NewConsole() Display {
	return &consoleDisplay{
		out:   os.Stderr,
		in:    os.Stdin,
		dest:  ToConsole,
		theme: DefaultTheme(),
		now:   time.Now,
	}
}

// New creates a Display for the given destination. logPath is opened for
// appending when dest includes the file sink.
func New(dest Dest, logPath string) (Display, error) {
	d := &consoleDisplay{
		out:   os.Stderr,
		in:    os.Stdin,
		dest:  dest,
		theme: DefaultTheme(),
		now:   time.Now,
	}
	if dest == ToFile || dest == ToBoth {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		d.file = f
	}
	return d, nil
}

// NewWriterDisplay creates a Display that writes to the provided io.Writer and
// answers prompts from r. Intended for tests.
func NewWriterDisplay(w io.Writer, r io.Reader) Display {
	return &consoleDisplay{
		out:   w,
		in:    r,
		dest:  ToConsole,
		theme: DefaultTheme(),
		now:   time.Now,
	}
}

// Discard returns a Display that swallows everything. Prompts answer "".
func Discard() Display {
	return &consoleDisplay{
		out:   io.Discard,
		in:    strings.NewReader(""),
		dest:  ToConsole,
		theme: DefaultTheme(),
		now:   time.Now,
	}
}

func (d *consoleDisplay) SetVerbose(v bool) { d.verbose = v }

func (d *consoleDisplay) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *consoleDisplay) Infof(format string, a ...any)    { d.emit(Info, fmt.Sprintf(format, a...)) }
func (d *consoleDisplay) Warningf(format string, a ...any) { d.emit(Warning, fmt.Sprintf(format, a...)) }
func (d *consoleDisplay) Errorf(format string, a ...any)   { d.emit(Error, fmt.Sprintf(format, a...)) }

func (d *consoleDisplay) emit(sev Severity, msg string) {
	if d.dest != ToFile {
		style := d.styleFor(sev)
		fmt.Fprintf(d.out, "%s %s\n", style.Render("["+sev.String()+"]"), msg)
	}
	if d.file != nil {
		fmt.Fprintf(d.file, "%s [%s] %s\n", d.now().Format("2006-01-02 15:04:05"), sev, msg)
	}
}

func (d *consoleDisplay) styleFor(sev Severity) lipgloss.Style {
	switch sev {
	case Warning:
		return d.theme.Warning
	case Error:
		return d.theme.Error
	case Prompt:
		return d.theme.Prompt
	default:
		return d.theme.Info
	}
}

// Prompt blocks for one line of input and returns it trimmed. Nothing is
// written to the file sink; a prompt is an interaction, not a log record.
func (d *consoleDisplay) Prompt(question string) (string, error) {
	fmt.Fprintf(d.out, "%s %s ", d.theme.Prompt.Render("[?]"), question)
	line, err := bufio.NewReader(d.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read prompt answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (d *consoleDisplay) StartTask(name string) Task {
	return &consoleTask{disp: d, name: name}
}

// consoleTask renders progress as plain log lines. Percent changes below 10
// points apart are dropped unless verbose, so a large download does not flood
// the console.
// Mutable
type consoleTask struct {
	disp    *consoleDisplay
	name    string
	lastPct int
}

func (t *consoleTask) Progress(percent int, message string) {
	if !t.disp.verbose && percent < t.lastPct+10 && percent != 100 {
		return
	}
	t.lastPct = percent
	t.disp.emit(Info, fmt.Sprintf("%s: %d%% %s", t.name, percent, message))
}

func (t *consoleTask) Done() {
	t.disp.emit(Info, t.name+": done")
}
