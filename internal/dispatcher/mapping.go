package dispatcher

import "fmt"

// KeyBinder installs a key mapping in the editor.
type KeyBinder interface {
	Map(mode, lhs, rhs string, silent bool) error
}

// Mapping is a key mapping installed when the plugin loads.
type Mapping struct {
	LHS    string
	RHS    string
	Modes  []string
	Silent bool
}

var Mappings = []Mapping{
	{
		LHS:    "<Plug>(Translate)",
		RHS:    ":Translate<CR>",
		Modes:  []string{"n", "v"},
		Silent: true,
	},
}

// RegisterMappings installs Mappings through kb.
func RegisterMappings(kb KeyBinder) error {
	for _, m := range Mappings {
		for _, mode := range m.Modes {
			if err := kb.Map(mode, m.LHS, m.RHS, m.Silent); err != nil {
				return fmt.Errorf("failed to map %s in mode %s: %w", m.LHS, mode, err)
			}
		}
	}
	return nil
}
