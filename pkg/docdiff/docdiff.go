// Package docdiff renders line-based unified diffs between two versions of
// an emitted document.
package docdiff

import (
	"fmt"
	"io"
	"strings"
)

// Op is the kind of a diff line.
type Op byte

const (
	OpEqual  Op = ' '
	OpInsert Op = '+'
	OpDelete Op = '-'
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// maxTableCells bounds the LCS table. Larger changed regions are reported
// as one replacement.
const maxTableCells = 4 << 20

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is the difference between two versions of the file at Path.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute diffs before against after line by line. It returns nil when the
// contents are equal.
func Compute(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	ops := lineOps(splitLines(before), splitLines(after))
	diff := &Diff{Path: path, Hunks: hunks(ops)}
	for _, op := range ops {
		switch op.Op {
		case OpInsert:
			diff.Additions++
		case OpDelete:
			diff.Deletions++
		}
	}
	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	_ = d.Write(&b)
	return b.String()
}

// Write renders the diff in unified format to w.
func (d *Diff) Write(w io.Writer) error {
	if d == nil {
		return nil
	}

	path := strings.TrimPrefix(d.Path, "/")
	if _, err := fmt.Fprintf(w, "--- a/%s\n+++ b/%s\n", path, path); err != nil {
		return err
	}
	for _, h := range d.Hunks {
		if _, err := fmt.Fprintf(w, "@@ -%s +%s @@\n", span(h.OldStart, h.OldLines), span(h.NewStart, h.NewLines)); err != nil {
			return err
		}
		for _, line := range h.Lines {
			if _, err := fmt.Fprintf(w, "%c%s\n", line.Op, line.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// span formats a hunk range. An empty range names the line before it.
func span(start, lines int) string {
	if lines == 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, lines)
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// lineOps returns the edit script turning a into b. The common prefix and
// suffix are matched directly; the rest goes through an LCS table.
func lineOps(a, b []string) []Line {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]Line, 0, len(a)+len(b))
	for _, text := range a[:prefix] {
		ops = append(ops, Line{Op: OpEqual, Text: text})
	}
	ops = append(ops, middleOps(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])...)
	for _, text := range a[len(a)-suffix:] {
		ops = append(ops, Line{Op: OpEqual, Text: text})
	}
	return ops
}

func middleOps(a, b []string) []Line {
	ops := make([]Line, 0, len(a)+len(b))
	if len(a) == 0 || len(b) == 0 || len(a)*len(b) > maxTableCells {
		for _, text := range a {
			ops = append(ops, Line{Op: OpDelete, Text: text})
		}
		for _, text := range b {
			ops = append(ops, Line{Op: OpInsert, Text: text})
		}
		return ops
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, Line{Op: OpEqual, Text: a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, Line{Op: OpDelete, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Op: OpInsert, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, Line{Op: OpDelete, Text: a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, Line{Op: OpInsert, Text: b[j]})
	}
	return ops
}

// hunks groups ops into hunks, merging changes separated by at most
// 2*contextLines unchanged lines.
func hunks(ops []Line) []Hunk {
	var result []Hunk
	var cur *Hunk
	lastChange := -1
	oldLine, newLine := 1, 1

	finish := func() {
		end := min(len(ops), lastChange+1+contextLines)
		for _, ctx := range ops[lastChange+1 : end] {
			cur.add(ctx)
		}
		result = append(result, *cur)
	}

	for idx, op := range ops {
		if op.Op != OpEqual {
			switch {
			case cur == nil || idx-lastChange-1 > 2*contextLines:
				if cur != nil {
					finish()
				}
				start := max(0, idx-contextLines)
				cur = &Hunk{
					OldStart: oldLine - (idx - start),
					NewStart: newLine - (idx - start),
				}
				for _, ctx := range ops[start:idx] {
					cur.add(ctx)
				}
			default:
				for _, ctx := range ops[lastChange+1 : idx] {
					cur.add(ctx)
				}
			}
			cur.add(op)
			lastChange = idx
		}

		if op.Op != OpInsert {
			oldLine++
		}
		if op.Op != OpDelete {
			newLine++
		}
	}

	if cur != nil {
		finish()
	}
	return result
}

func (h *Hunk) add(line Line) {
	h.Lines = append(h.Lines, line)
	if line.Op != OpInsert {
		h.OldLines++
	}
	if line.Op != OpDelete {
		h.NewLines++
	}
}
