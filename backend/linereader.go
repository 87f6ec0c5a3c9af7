package backend

import (
	"bufio"
	"io"
)

// lineReader only ever returns whole newline-terminated lines. A data file
// that is still being written can be parsed as CSV without seeing a half
// written record: the partial tail is held back and reported as io.EOF
// until its newline arrives.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	// ready holds the unread rest of the last complete line.
	ready []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		data, err := l.r.ReadBytes(byte('\n'))
		l.partial = append(l.partial, data...)
		if err != nil {
			return 0, err
		}
		l.ready, l.partial = l.partial, l.ready[:0]
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}

// Pending reports how many bytes of an unterminated line are held back.
func (l *lineReader) Pending() int {
	return len(l.partial)
}
