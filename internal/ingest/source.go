package ingest

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNotReady is returned by Source.Read when no data is available yet
var ErrNotReady = errors.New("source not ready")

// Source is a line stream that can be checked for readiness without blocking
type Source interface {
	// Ready reports whether a Read would return without blocking
	Ready() (bool, error)
	// Read reads available bytes; io.EOF marks the end of the stream
	Read(p []byte) (int, error)
}

// fileSource polls a file descriptor with poll(2) and a zero timeout
type fileSource struct {
	f  *os.File
	fd int
}

// NewFileSource returns a Source reading from f, typically os.Stdin
func NewFileSource(f *os.File) Source {
	return &fileSource{f: f, fd: int(f.Fd())}
}

func (s *fileSource) Ready() (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		// hang-up and error conditions are reported by the following read
		return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0, nil
	}
}

func (s *fileSource) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, p)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, ErrNotReady
		case err != nil:
			return 0, &os.PathError{Op: "read", Path: s.f.Name(), Err: err}
		case n == 0:
			return 0, io.EOF
		}
		return n, nil
	}
}
