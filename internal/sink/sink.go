// Package sink delivers the result of a session: the chosen text is either
// printed to stdout or appended to a command that replaces the process.
package sink

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"sprinter/internal/domain"
)

// Sink writes or executes a session result
type Sink struct {
	stdout   io.Writer
	stderr   io.Writer
	command  []string
	lookPath func(string) (string, error)
	exec     func(argv0 string, argv []string, envv []string) error
}

// Option configures a Sink
type Option func(*Sink)

// WithCommand executes the parsed command template instead of printing
func WithCommand(args []string) Option {
	return func(s *Sink) {
		s.command = args
	}
}

// WithOutput overrides stdout and stderr
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Sink) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithExec replaces path lookup and process replacement, for tests
func WithExec(lookPath func(string) (string, error), execFn func(string, []string, []string) error) Option {
	return func(s *Sink) {
		s.lookPath = lookPath
		s.exec = execFn
	}
}

// New creates a sink writing to os.Stdout
func New(opts ...Option) *Sink {
	s := &Sink{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		lookPath: exec.LookPath,
		exec:     unix.Exec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver hands a finished session to the output channel and returns the
// process exit status. Exec only returns on failure.
func (s *Sink) Deliver(result domain.Result) int {
	if result.Outcome != domain.OutcomeSubmitted {
		return result.Outcome.ExitCode()
	}
	if len(s.command) == 0 {
		if err := Print(s.stdout, result.Text); err != nil {
			log.Printf("sink: write failed: %v", err)
			return 1
		}
		return 0
	}
	return s.Exec(result.Lines())
}

// Exec replaces the process with the command followed by lines as arguments.
// On failure it reports the error on stderr and returns the OS error number.
func (s *Sink) Exec(lines []string) int {
	if len(s.command) == 0 {
		s.report(ErrEmptyCommand)
		return 1
	}
	path, err := s.lookPath(s.command[0])
	if err != nil {
		s.report(err)
		return exitStatus(err)
	}

	argv := make([]string, 0, len(s.command)+len(lines))
	argv = append(argv, s.command...)
	argv = append(argv, lines...)
	log.Printf("sink: exec %s with %d argument(s)", path, len(argv)-1)

	err = s.exec(path, argv, os.Environ())
	s.report(err)
	return exitStatus(err)
}

func (s *Sink) report(err error) {
	log.Printf("sink: %v", err)
	color.New(color.FgRed).Fprintf(s.stderr, "sprinter: %v\n", err)
}

// Print writes text verbatim, without adding a newline
func Print(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// exitStatus maps an exec failure to the errno it carries
func exitStatus(err error) int {
	var errno syscall.Errno
	switch {
	case errors.As(err, &errno) && errno != 0:
		return int(errno)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return int(unix.ENOENT)
	case errors.Is(err, fs.ErrPermission):
		return int(unix.EACCES)
	default:
		return 1
	}
}
