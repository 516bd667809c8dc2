package pose

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Source reads a replay stream of frames as JSONL: one frame object per
// line, or the literal "null" for a frame where no pose was detected.
// This mirrors what the pose-inference collaborator delivers per tick.
type Source struct {
	scanner *bufio.Scanner
	line    int
}

// NewSource wraps r in a frame source. The reader is consumed line by line.
func NewSource(r io.Reader) *Source {
	sc := bufio.NewScanner(r)
	// Frames with all 17 joints run ~1.5KB; leave generous headroom.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Source{scanner: sc}
}

// Next returns the next frame in the stream. A nil frame with a nil error
// means "no pose this tick". io.EOF signals end of stream.
func (s *Source) Next() (*Frame, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" {
			continue
		}
		if text == "null" {
			return nil, nil
		}

		var f Frame
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return nil, fmt.Errorf("decode frame at line %d: %w", s.line, err)
		}
		return &f, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frame stream: %w", err)
	}
	return nil, io.EOF
}
