package sink

import (
	"bytes"
	"errors"
	"os/exec"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprinter/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"echo", []string{"echo"}},
		{"  echo   a  b ", []string{"echo", "a", "b"}},
		{`printf '%s\n'`, []string{"printf", `%s\n`}},
		{`printf "%s\n"`, []string{"printf", "%s\n"}},
		{`printf %s\\n`, []string{"printf", `%s\n`}},
		{`echo "a b" 'c d'`, []string{"echo", "a b", "c d"}},
		{`echo a\ b`, []string{"echo", "a b"}},
		{`echo x\ty`, []string{"echo", "x\ty"}},
		{`echo ""`, []string{"echo", ""}},
		{`echo "it's"`, []string{"echo", "it's"}},
		{`echo 'say "hi"'`, []string{"echo", `say "hi"`}},
		{`echo ab"cd"ef`, []string{"echo", "abcdef"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCommand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	_, err := ParseCommand("")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = ParseCommand(`'' x`)
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = ParseCommand(`echo "abc`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = ParseCommand(`echo 'abc`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestDeliverPrintsVerbatim(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := New(WithOutput(&stdout, &stderr))

	code := s.Deliver(domain.Result{Outcome: domain.OutcomeSubmitted, Text: "alpha\nbeta"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "alpha\nbeta", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestDeliverCancelled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := New(WithOutput(&stdout, &stderr))

	assert.Equal(t, 1, s.Deliver(domain.Result{Outcome: domain.OutcomeCancelled}))
	assert.Empty(t, stdout.String())
}

func TestDeliverExecAppendsLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var gotPath string
	var gotArgv []string
	s := New(
		WithOutput(&stdout, &stderr),
		WithCommand([]string{"echo", "-n"}),
		WithExec(
			func(name string) (string, error) { return "/bin/" + name, nil },
			func(path string, argv []string, _ []string) error {
				gotPath = path
				gotArgv = argv
				return syscall.E2BIG
			},
		),
	)

	code := s.Deliver(domain.Result{Outcome: domain.OutcomeSubmitted, Text: "a\nb"})
	assert.Equal(t, "/bin/echo", gotPath)
	assert.Equal(t, []string{"echo", "-n", "a", "b"}, gotArgv)
	assert.Equal(t, int(syscall.E2BIG), code)
	assert.Contains(t, stderr.String(), "sprinter:")
	assert.Empty(t, stdout.String())
}

func TestExecNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	called := false
	s := New(
		WithOutput(&stdout, &stderr),
		WithCommand([]string{"no-such-program"}),
		WithExec(
			func(name string) (string, error) {
				return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
			},
			func(string, []string, []string) error {
				called = true
				return nil
			},
		),
	)

	code := s.Exec([]string{"x"})
	assert.False(t, called)
	assert.Equal(t, int(syscall.ENOENT), code)
	assert.Contains(t, stderr.String(), "no-such-program")
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, int(syscall.EACCES), exitStatus(syscall.EACCES))
	assert.Equal(t, 1, exitStatus(errors.New("boom")))
}
