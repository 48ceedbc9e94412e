package ingest

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// BatchSize is the default maximum number of lines consumed per Poll
const BatchSize = 250

const readChunk = 64 * 1024

// Batch is the outcome of one Poll call
type Batch struct {
	Lines []string // decoded lines in arrival order
	More  bool     // batch limit reached, poll again without waiting
	Done  bool     // stream ended or failed; no further lines will arrive
	Err   error    // read error, reported only in the batch where it happened
}

// Ingestor turns a Source into lines without ever blocking the caller
type Ingestor struct {
	src       Source
	batchSize int
	chunk     []byte
	pending   []byte
	eof       bool
	done      bool
	count     int
	err       error
}

// Option configures an Ingestor
type Option func(*Ingestor)

// WithBatchSize limits how many lines a single Poll consumes
func WithBatchSize(n int) Option {
	return func(in *Ingestor) {
		if n > 0 {
			in.batchSize = n
		}
	}
}

// New creates an ingestor reading from src
func New(src Source, opts ...Option) *Ingestor {
	in := &Ingestor{
		src:       src,
		batchSize: BatchSize,
		chunk:     make([]byte, readChunk),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Poll consumes at most one batch of lines that are available right now.
// It returns an empty batch when the source has nothing to offer.
func (in *Ingestor) Poll() Batch {
	if in.done {
		return Batch{Done: true}
	}

	var b Batch
	consumed := 0
loop:
	for consumed < in.batchSize {
		if line, ok := in.nextLine(); ok {
			consumed++
			b.Lines = append(b.Lines, line)
			continue
		}
		if in.eof {
			if tail, ok := in.flush(); ok {
				b.Lines = append(b.Lines, tail)
			}
			in.done = true
			break
		}

		ready, err := in.src.Ready()
		if err != nil {
			b.Err = in.fail(err)
			break
		}
		if !ready {
			break
		}

		n, err := in.src.Read(in.chunk)
		if n > 0 {
			in.pending = append(in.pending, in.chunk[:n]...)
		}
		switch {
		case err == nil, errors.Is(err, ErrNotReady):
			if n == 0 {
				break loop
			}
		case errors.Is(err, io.EOF):
			in.eof = true
		default:
			b.Err = in.fail(err)
			break loop
		}
	}

	in.count += len(b.Lines)
	b.Done = in.done
	b.More = !in.done && consumed >= in.batchSize
	return b
}

// Stop halts ingestion permanently; later polls report Done
func (in *Ingestor) Stop() {
	in.done = true
	in.pending = nil
}

// Done reports whether the stream has ended, failed or was stopped
func (in *Ingestor) Done() bool {
	return in.done
}

// Err returns the read error that ended ingestion, if any
func (in *Ingestor) Err() error {
	return in.err
}

// Count returns the number of lines produced so far
func (in *Ingestor) Count() int {
	return in.count
}

func (in *Ingestor) nextLine() (string, bool) {
	i := bytes.IndexByte(in.pending, '\n')
	if i < 0 {
		return "", false
	}
	line := string(in.pending[:i])
	in.pending = in.pending[i+1:]
	return strings.TrimSuffix(line, "\r"), true
}

// flush returns an unterminated last line, if any bytes are left
func (in *Ingestor) flush() (string, bool) {
	if len(in.pending) == 0 {
		return "", false
	}
	line := strings.TrimSuffix(string(in.pending), "\r")
	in.pending = nil
	return line, true
}

func (in *Ingestor) fail(err error) error {
	in.done = true
	in.err = err
	in.pending = nil
	return err
}
