// Package display is the single log sink for mrig. Every component reports
// through a Display: leveled messages, download progress, and the one blocking
// interaction the tool has (Prompt).
package display

// Severity classifies a log line.
type Severity int

const (
	// Info is routine progress output.
	Info Severity = iota
	// Warning marks an expected but noteworthy condition (artifact missing,
	// remediation about to run).
	Warning
	// Error marks an operational failure that the enclosing operation reports up.
	Error
	// Prompt is not written as a log line; it blocks for interactive input.
	Prompt
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARN"
	case Error:
		return "ERROR"
	case Prompt:
		return "PROMPT"
	default:
		return "?"
	}
}

// Task represents a unit of work that can be monitored, typically a download.
type Task interface {
	// Progress updates the completion percentage (0-100) and status message.
	Progress(percent int, message string)
	// Done marks the task as completed. The caller that started the task owns
	// this call.
	Done()
}

// Display handles leveled output and task tracking.
type Display interface {
	// Infof logs a routine message.
	Infof(format string, a ...any)
	// Warningf logs an expected but noteworthy condition.
	Warningf(format string, a ...any)
	// Errorf logs an operational failure.
	Errorf(format string, a ...any)
	// Prompt writes question, blocks for a line of input, and returns it
	// trimmed. It is the only Display method whose result feeds control flow.
	Prompt(question string) (string, error)
	// StartTask creates and returns a new tracked Task.
	StartTask(name string) Task
	// SetVerbose enables or disables verbose progress output.
	SetVerbose(v bool)
	// Close flushes and releases any file sink.
	Close() error
}
