package lsp

import (
	"errors"
	"io"
	"os"
)

type stdio struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

// Stdio joins standard input and output into one connection. Closing it
// closes both.
func Stdio() io.ReadWriteCloser {
	return NewReadWriteCloser(os.Stdin, os.Stdout)
}

// NewReadWriteCloser joins r and w. Close closes whichever of them
// implements io.Closer.
func NewReadWriteCloser(r io.Reader, w io.Writer) io.ReadWriteCloser {
	s := &stdio{Reader: r, Writer: w}
	if c, ok := r.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	if c, ok := w.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	return s
}

func (s *stdio) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
