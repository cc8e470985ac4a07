// Package input reads player commands and maps them to intents.
package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"
)

// LineReader reads one command line at a time
type LineReader struct {
	r      *bufio.Reader
	device Device
}

// NewLineReader creates a reader over r, tagging input with device
func NewLineReader(r io.Reader, device Device) *LineReader {
	return &LineReader{r: bufio.NewReader(r), device: device}
}

// Read returns the next line with the line ending stripped. A final line
// without a newline is returned before io.EOF.
func (l *LineReader) Read() (RawInput, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return RawInput{}, err
		}
	}

	return RawInput{
		Device:    l.device,
		Code:      strings.TrimRight(line, "\r\n"),
		Timestamp: time.Now(),
	}, nil
}
