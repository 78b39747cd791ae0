// Package mbox imports email archives in mbox format, the layout used
// by Google Takeout exports.
package mbox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// maxLineSize caps a single line; HTML-heavy marketing mail can carry
// very long lines.
const maxLineSize = 4 * 1024 * 1024

// Reader splits an mbox stream into raw RFC 5322 messages.
type Reader struct {
	scanner *bufio.Scanner
	current bytes.Buffer
	started bool
	done    bool
}

// NewReader creates a Reader over an mbox stream.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next raw message, or io.EOF when the stream is
// exhausted. Messages are delimited by "From " separator lines, which
// are not part of the returned bytes. Quoted ">From " lines inside a
// body are unescaped.
func (r *Reader) Next() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if strings.HasPrefix(line, "From ") {
			if !r.started {
				r.started = true
				continue
			}
			message := r.flush()
			return message, nil
		}

		if !r.started {
			// Content before the first separator is not a message.
			continue
		}

		// mbox quotes body lines that would look like separators.
		if strings.HasPrefix(line, ">From ") {
			line = line[1:]
		}

		r.current.WriteString(line)
		r.current.WriteString("\r\n")
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mbox stream: %w", err)
	}

	r.done = true
	if r.started && r.current.Len() > 0 {
		return r.flush(), nil
	}
	return nil, io.EOF
}

func (r *Reader) flush() []byte {
	message := make([]byte, r.current.Len())
	copy(message, r.current.Bytes())
	r.current.Reset()
	return message
}
