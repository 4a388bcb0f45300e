// Package dispatcher serves the editor's translate call: it decodes the
// invocation, builds a request and routes it to the DeepL or the generic
// backend.
package dispatcher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamecha/denops-translate.vim/internal"
	"github.com/kamecha/denops-translate.vim/internal/option"
	"github.com/kamecha/denops-translate.vim/internal/translator"
)

// DeepL translates a request that targets the DeepL API.
type DeepL interface {
	Name() string
	Translate(ctx context.Context, req *option.Request) ([]string, error)
}

// History records finished invocations.
type History interface {
	SaveRequest(ctx context.Context, req internal.TranslationRequest) error
	SaveResult(ctx context.Context, requestID, serviceName, translatedText string, latencyMs int, errMsg string) error
}

type Dispatcher struct {
	builder *option.Builder
	deepl   DeepL
	generic translator.Translator
	history History
	logger  *slog.Logger
}

type Option func(*Dispatcher)

// WithHistory records every request that reaches a backend.
func WithHistory(h History) Option {
	return func(d *Dispatcher) {
		d.history = h
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

func New(builder *option.Builder, deepl DeepL, generic translator.Translator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		builder: builder,
		deepl:   deepl,
		generic: generic,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle decodes raw editor arguments and translates.
func (d *Dispatcher) Handle(ctx context.Context, raw []interface{}) ([]string, error) {
	args, err := DecodeArgs(raw)
	if err != nil {
		return nil, err
	}
	return d.Translate(ctx, args)
}

// Translate returns the translation as one string per line.
func (d *Dispatcher) Translate(ctx context.Context, args Args) ([]string, error) {
	req, err := d.builder.Build(ctx, args.Reverse, args.Start, args.End, args.Mode, args.Arg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		lines   []string
		service string
	)
	if req.IsDeepL {
		service = d.deepl.Name()
		lines, err = d.deepl.Translate(ctx, req)
	} else {
		service = d.generic.Name()
		var trans string
		trans, err = d.generic.Translate(ctx, req.Text, req.Source, req.Target)
		if err == nil {
			lines = translator.SplitLines(trans)
		}
	}
	latency := time.Since(start)

	d.logger.Debug("translate",
		"service", service,
		"source", req.Source,
		"target", req.Target,
		"chars", len(req.Text),
		"latency", latency,
		"error", err)

	d.record(ctx, req, service, lines, latency, err)

	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (d *Dispatcher) record(ctx context.Context, req *option.Request, service string, lines []string, latency time.Duration, translateErr error) {
	if d.history == nil {
		return
	}

	id := uuid.New().String()
	err := d.history.SaveRequest(ctx, internal.TranslationRequest{
		ID:         id,
		SourceText: req.Text,
		SourceLang: req.Source,
		TargetLang: req.Target,
		Endpoint:   req.Endpoint,
		Timestamp:  time.Now(),
	})
	if err != nil {
		d.logger.Warn("failed to save history", "error", err)
		return
	}

	var errMsg, text string
	if translateErr != nil {
		errMsg = translateErr.Error()
	} else {
		text = strings.Join(lines, "\n")
	}
	if err := d.history.SaveResult(ctx, id, service, text, int(latency.Milliseconds()), errMsg); err != nil {
		d.logger.Warn("failed to save history", "error", err)
	}
}
