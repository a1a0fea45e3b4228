// Package diff renders line-oriented differences between two documents, used
// to show unsaved page changes.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// Empty reports whether nothing changed.
func (s Stats) Empty() bool { return s.Added == 0 && s.Removed == 0 }

func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Removed)
}

// Line is one diff line. Op is ' ', '+' or '-'.
type Line struct {
	Op   byte
	Text string
}

// Lines computes a line-level diff of before and after.
func Lines(before, after []byte) []Line {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []Line
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, line := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: line})
		}
	}
	return out
}

// Count returns line statistics for before and after.
func Count(before, after []byte) Stats {
	var s Stats
	for _, l := range Lines(before, after) {
		switch l.Op {
		case '+':
			s.Added++
		case '-':
			s.Removed++
		}
	}
	return s
}

// GenerateUnifiedDiff renders a unified diff with the given labels, keeping
// context lines around each change. Identical input yields "". Output beyond
// 10,000 lines is truncated with a marker.
func GenerateUnifiedDiff(before, after []byte, beforeLabel, afterLabel string, context int) string {
	if bytes.Equal(before, after) {
		return ""
	}
	if context < 0 {
		context = 0
	}

	lines := Lines(before, after)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)

	for _, h := range hunks(lines, context) {
		fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldLen, h.newStart, h.newLen)
		for _, l := range lines[h.from:h.to] {
			buf.WriteByte(l.Op)
			buf.WriteString(l.Text)
			buf.WriteByte('\n')
		}
	}

	result := buf.String()
	out := strings.Split(result, "\n")
	if len(out) > maxDiffLines {
		return strings.Join(out[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}

type hunk struct {
	from, to                           int
	oldStart, oldLen, newStart, newLen int
}

// hunks groups changed lines with up to context unchanged lines around them.
func hunks(lines []Line, context int) []hunk {
	var out []hunk
	oldNo, newNo := make([]int, len(lines)), make([]int, len(lines))
	o, n := 1, 1
	for i, l := range lines {
		oldNo[i], newNo[i] = o, n
		if l.Op != '+' {
			o++
		}
		if l.Op != '-' {
			n++
		}
	}

	i := 0
	for i < len(lines) {
		if lines[i].Op == ' ' {
			i++
			continue
		}
		from := max(i-context, 0)
		if len(out) > 0 && from < out[len(out)-1].to {
			from = out[len(out)-1].to
		}
		end := i
		for end < len(lines) {
			if lines[end].Op != ' ' {
				end++
				continue
			}
			run := end
			for run < len(lines) && lines[run].Op == ' ' {
				run++
			}
			if run < len(lines) && run-end <= 2*context {
				end = run
				continue
			}
			break
		}
		to := min(end+context, len(lines))

		h := hunk{from: from, to: to, oldStart: oldNo[from], newStart: newNo[from]}
		for _, l := range lines[from:to] {
			if l.Op != '+' {
				h.oldLen++
			}
			if l.Op != '-' {
				h.newLen++
			}
		}
		if len(out) > 0 && out[len(out)-1].to == from {
			prev := &out[len(out)-1]
			prev.to = to
			prev.oldLen += h.oldLen
			prev.newLen += h.newLen
		} else {
			out = append(out, h)
		}
		i = to
	}
	return out
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
