package dispatcher

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/kamecha/denops-translate.vim/internal/option"
)

// ErrMalformedInvocation is returned when the editor passes arguments of the
// wrong shape.
var ErrMalformedInvocation = errors.New("translate: malformed invocation")

// Args is a decoded :Translate invocation.
type Args struct {
	Reverse bool
	Start   option.Position
	End     option.Position
	Mode    string
	Arg     string
}

// DecodeArgs decodes [bang, start, end, mode, arg?] as sent by the editor.
// bang "!" requests the reverse direction; positions are dicts with line and
// col (lnum is accepted for line); a missing or nil arg is empty.
func DecodeArgs(raw []interface{}) (Args, error) {
	var args Args

	if len(raw) < 4 || len(raw) > 5 {
		return args, fmt.Errorf("%w: expected 4 or 5 arguments, got %d", ErrMalformedInvocation, len(raw))
	}

	bang, ok := raw[0].(string)
	if !ok {
		return args, fmt.Errorf("%w: bang must be a string, got %T", ErrMalformedInvocation, raw[0])
	}
	args.Reverse = bang == "!"

	var err error
	if args.Start, err = decodePosition(raw[1]); err != nil {
		return args, fmt.Errorf("%w: start position: %v", ErrMalformedInvocation, err)
	}
	if args.End, err = decodePosition(raw[2]); err != nil {
		return args, fmt.Errorf("%w: end position: %v", ErrMalformedInvocation, err)
	}

	if args.Mode, ok = raw[3].(string); !ok {
		return args, fmt.Errorf("%w: selection mode must be a string, got %T", ErrMalformedInvocation, raw[3])
	}

	if len(raw) == 5 && raw[4] != nil {
		if args.Arg, ok = raw[4].(string); !ok {
			return args, fmt.Errorf("%w: argument must be a string, got %T", ErrMalformedInvocation, raw[4])
		}
	}

	return args, nil
}

func decodePosition(v interface{}) (option.Position, error) {
	var pos option.Position

	m, err := stringKeys(v)
	if err != nil {
		return pos, err
	}
	if lnum, ok := m["lnum"]; ok {
		if _, dup := m["line"]; dup {
			return pos, fmt.Errorf("both line and lnum given")
		}
		m["line"] = lnum
		delete(m, "lnum")
	}
	if _, ok := m["line"]; !ok {
		return pos, fmt.Errorf("missing line")
	}
	if _, ok := m["col"]; !ok {
		return pos, fmt.Errorf("missing col")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &pos,
	})
	if err != nil {
		return pos, err
	}
	if err := dec.Decode(m); err != nil {
		return pos, err
	}
	return pos, nil
}

// stringKeys copies a msgpack map into a map with string keys.
func stringKeys(v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			out[key] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a dict, got %T", v)
	}
}
