package option

import (
	"context"
	"unicode/utf8"
)

// Selection modes as reported by visualmode().
const (
	ModeChar  = "v"
	ModeLine  = "V"
	ModeBlock = "^V"
	// ModeBlockRaw is the literal CTRL-V that visualmode() returns.
	ModeBlockRaw = "\x16"
)

// ReadSelection fetches lines start.Line..end.Line in one call and trims them
// to the selection. Unknown modes select nothing.
func ReadSelection(ctx context.Context, src LineSource, start, end Position, mode string) ([]string, error) {
	lines, err := src.Lines(ctx, start.Line, end.Line)
	if err != nil {
		return nil, err
	}

	var out []string
	switch mode {
	case ModeChar:
		for i, l := range lines {
			switch {
			case start.Line == end.Line:
				l = substring(l, start.Col, end.Col)
			case i == 0:
				l = substring(l, start.Col, len(l))
			case start.Line+i == end.Line:
				l = substring(l, 0, end.Col)
			}
			out = append(out, l)
		}
	case ModeLine:
		out = append(out, lines...)
	case ModeBlock, ModeBlockRaw:
		for _, l := range lines {
			out = append(out, substring(l, start.Col, end.Col))
		}
	}
	return out, nil
}

// substring clamps both offsets into s and swaps them when reversed. Offsets
// inside a multibyte character move back to its first byte, so block columns
// taken from one line never split a character on another.
func substring(s string, from, to int) string {
	from = runeStart(s, clamp(from, 0, len(s)))
	to = runeStart(s, clamp(to, 0, len(s)))
	if from > to {
		from, to = to, from
	}
	return s[from:to]
}

func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
