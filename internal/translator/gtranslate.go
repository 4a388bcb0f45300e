package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/bregydoc/gtranslate"
)

// WebService uses the free Google Translate web endpoint.
type WebService struct {
	tries     int
	timeout   time.Duration
	translate func(text string, params gtranslate.TranslationParams) (string, error)
}

// NewWebService bounds each call by cfg.Timeout. gtranslate has no client or
// context hook, so a call that times out is abandoned rather than canceled.
func NewWebService(cfg ServiceConfig) *WebService {
	return &WebService{
		tries:     1,
		timeout:   timeoutOrDefault(cfg.Timeout),
		translate: gtranslate.TranslateWithParams,
	}
}

type webResult struct {
	text string
	err  error
}

func (s *WebService) Name() string {
	return "google-web"
}

func (s *WebService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s translate: %w", s.Name(), err)
	}

	from := sourceLang
	if isAuto(from) {
		from = "auto"
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan webResult, 1)
	go func() {
		translated, err := s.translate(text, gtranslate.TranslationParams{
			From:  from,
			To:    targetLang,
			Tries: s.tries,
		})
		done <- webResult{text: translated, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("%s translate: %w", s.Name(), res.err)
		}
		return res.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%s translate: %w", s.Name(), ctx.Err())
	}
}
