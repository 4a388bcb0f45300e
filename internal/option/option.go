// Package option turns a :Translate invocation and the editor selection into
// a translation request.
package option

import (
	"context"
	"fmt"
	"strings"
)

// DeepLHost marks an endpoint as the DeepL API.
const DeepLHost = "deepl.com"

const (
	DefaultSource   = "en"
	DefaultTarget   = "ja"
	DefaultEndpoint = ""
)

// Editor variables read on every request. Unset variables fall back to Defaults.
const (
	VarSourceName   = "translate_source"
	VarTargetName   = "translate_target"
	VarEndpointName = "translate_endpoint"
)

// Request describes one translation job.
type Request struct {
	Endpoint string `json:"endpoint"`
	IsDeepL  bool   `json:"is_deepl"`
	AuthKey  string `json:"-"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Text     string `json:"text"`
}

// Position is one boundary of a selection. Line is one-based, Col is a
// zero-based byte offset.
type Position struct {
	Line int `mapstructure:"line"`
	Col  int `mapstructure:"col"`
}

// LineSource fetches the inclusive, one-based line range [start, end] from
// the editor.
type LineSource interface {
	Lines(ctx context.Context, start, end int) ([]string, error)
}

// VarSource reads a global editor variable. ok is false when it is unset.
type VarSource interface {
	Var(ctx context.Context, name string) (value string, ok bool, err error)
}

// KeyResolver supplies the DeepL auth key.
type KeyResolver interface {
	Get() (string, error)
}

// Defaults are used when the editor does not set a variable.
type Defaults struct {
	Source   string
	Target   string
	Endpoint string
}

// Builder assembles Requests. Vars and Keys may be nil.
type Builder struct {
	Lines    LineSource
	Vars     VarSource
	Keys     KeyResolver
	Defaults Defaults
}

// NewBuilder returns a Builder with the package defaults.
func NewBuilder(lines LineSource, vars VarSource, keys KeyResolver) *Builder {
	return &Builder{
		Lines: lines,
		Vars:  vars,
		Keys:  keys,
		Defaults: Defaults{
			Source:   DefaultSource,
			Target:   DefaultTarget,
			Endpoint: DefaultEndpoint,
		},
	}
}

// Build tokenizes arg and combines it with the selection and configured
// defaults.
//
// One token is translated as-is. Zero or two tokens translate the selection,
// and two tokens also name the source and target languages. With three or
// more tokens only the third is translated.
func (b *Builder) Build(ctx context.Context, reverse bool, start, end Position, mode, arg string) (*Request, error) {
	parts := Tokenize(arg)

	var message []string
	switch len(parts) {
	case 1:
		message = append(message, parts[0])
	case 0, 2:
		lines, err := ReadSelection(ctx, b.Lines, start, end, mode)
		if err != nil {
			return nil, err
		}
		message = lines
	default:
		message = append(message, parts[2])
	}

	source, err := b.lookup(ctx, VarSourceName, b.Defaults.Source)
	if err != nil {
		return nil, err
	}
	target, err := b.lookup(ctx, VarTargetName, b.Defaults.Target)
	if err != nil {
		return nil, err
	}
	endpoint, err := b.lookup(ctx, VarEndpointName, b.Defaults.Endpoint)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Endpoint: endpoint,
		IsDeepL:  strings.Contains(endpoint, DeepLHost),
		Source:   source,
		Target:   target,
		Text:     strings.Join(message, "\n"),
	}

	if len(parts) == 2 {
		req.Source = parts[0]
		req.Target = parts[1]
	}

	if reverse {
		req.Source, req.Target = req.Target, req.Source
	}

	if req.IsDeepL {
		if b.Keys == nil {
			return nil, fmt.Errorf("endpoint %s requires a DeepL auth key", endpoint)
		}
		key, err := b.Keys.Get()
		if err != nil {
			return nil, err
		}
		req.AuthKey = key
	}

	return req, nil
}

func (b *Builder) lookup(ctx context.Context, name, fallback string) (string, error) {
	if b.Vars == nil {
		return fallback, nil
	}
	v, ok, err := b.Vars.Var(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to read g:%s: %w", name, err)
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}
