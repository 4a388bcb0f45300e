// Package host connects the dispatcher to Neovim over msgpack-rpc on stdio.
package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/neovim/go-client/nvim"

	"github.com/kamecha/denops-translate.vim/internal/dispatcher"
)

// Method is the rpc method the :Translate command requests.
const Method = "translate"

// Editor exposes the parts of Neovim the plugin uses.
type Editor struct {
	v *nvim.Nvim
}

func NewEditor(v *nvim.Nvim) *Editor {
	return &Editor{v: v}
}

// Lines returns lines start..end (one-based, inclusive) of the current buffer.
// Out of range lines are dropped, like getline().
func (e *Editor) Lines(ctx context.Context, start, end int) ([]string, error) {
	raw, err := e.v.BufferLines(0, start-1, end, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get lines %d-%d: %w", start, end, err)
	}
	return toStrings(raw), nil
}

// Var reads g:name.
func (e *Editor) Var(ctx context.Context, name string) (string, bool, error) {
	var result interface{}
	if err := e.v.Eval(fmt.Sprintf("get(g:, '%s', v:null)", name), &result); err != nil {
		return "", false, err
	}
	return varValue(name, result)
}

func (e *Editor) Map(mode, lhs, rhs string, silent bool) error {
	return e.v.SetKeyMap(mode, lhs, rhs, map[string]bool{"silent": silent})
}

// Serve registers the translate handler and key mappings, then serves
// requests until Neovim closes the channel.
func Serve(ctx context.Context, r io.Reader, w io.WriteCloser, build func(*Editor) (*dispatcher.Dispatcher, error), logger *slog.Logger) error {
	v, err := nvim.New(r, w, w, func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	})
	if err != nil {
		return fmt.Errorf("failed to create nvim client: %w", err)
	}
	defer v.Close()

	editor := NewEditor(v)
	d, err := build(editor)
	if err != nil {
		return err
	}

	if err := register(ctx, v, d, logger); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- v.Serve()
	}()

	// Mappings need the serve loop running to receive the reply.
	if err := dispatcher.RegisterMappings(editor); err != nil {
		logger.Warn("failed to register mappings", "error", err)
	}
	logger.Info("serving", "method", Method)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		v.Close()
		<-errc
		return ctx.Err()
	}
}

// register installs the rpc handler. The editor sends its arguments as a
// single array: [bang, start, end, mode, arg].
func register(ctx context.Context, v *nvim.Nvim, d *dispatcher.Dispatcher, logger *slog.Logger) error {
	err := v.RegisterHandler(Method, func(args []interface{}) ([]string, error) {
		lines, err := d.Handle(ctx, args)
		if err != nil {
			logger.Error("translate failed", "error", err)
			return nil, err
		}
		return lines, nil
	})
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", Method, err)
	}
	return nil
}

func toStrings(raw [][]byte) []string {
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

func varValue(name string, v interface{}) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, true, nil
	default:
		return "", false, fmt.Errorf("g:%s must be a string, got %T", name, v)
	}
}
