package option

import "strings"

// Tokenize splits arg on spaces. A double quote toggles a mode in which
// spaces are kept; the quote itself is dropped, and a space directly after
// it is folded into the current token. Quotes cannot be escaped and an
// unbalanced quote keeps spaces to the end of input.
func Tokenize(arg string) []string {
	var (
		parts    []string
		word     strings.Builder
		preserve bool
	)

	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if c == '"' {
			preserve = !preserve
			if i+1 < len(arg) && arg[i+1] == ' ' {
				word.WriteByte(' ')
				i++
			}
			continue
		}
		if !preserve && c == ' ' {
			parts = append(parts, word.String())
			word.Reset()
			continue
		}
		word.WriteByte(c)
	}

	if word.Len() > 0 {
		parts = append(parts, word.String())
	}
	return parts
}
