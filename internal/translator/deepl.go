package translator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bounoable/deepl"

	"github.com/kamecha/denops-translate.vim/internal/option"
)

// DeepLClient is the subset of *deepl.Client the service uses.
type DeepLClient interface {
	Translate(
		ctx context.Context,
		text string,
		targetLang deepl.Language,
		opts ...deepl.TranslateOption,
	) (string, deepl.Language, error)
}

// DeepLService translates Requests whose endpoint points at the DeepL API.
// A client is built per request because the endpoint and key travel with it.
type DeepLService struct {
	client    *http.Client
	newClient func(authKey, baseURL string) DeepLClient
}

// NewDeepLService uses cfg.Timeout for every request.
func NewDeepLService(cfg ServiceConfig) *DeepLService {
	s := &DeepLService{client: &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)}}
	s.newClient = func(authKey, baseURL string) DeepLClient {
		return deepl.New(authKey, deepl.BaseURL(baseURL), deepl.HTTPClient(s.client))
	}
	return s
}

func (s *DeepLService) Name() string {
	return "deepl"
}

// Translate returns the translation of req.Text split into lines.
func (s *DeepLService) Translate(ctx context.Context, req *option.Request) ([]string, error) {
	if req.AuthKey == "" {
		return nil, fmt.Errorf("deepl translate: auth key required")
	}

	client := s.newClient(req.AuthKey, BaseURL(req.Endpoint))

	opts := []deepl.TranslateOption{
		deepl.PreserveFormatting(true),
		deepl.SplitSentences(deepl.SplitNoNewlines),
	}
	if !isAuto(req.Source) {
		opts = append(opts, deepl.SourceLang(deepl.Language(strings.ToUpper(req.Source))))
	}

	translated, _, err := client.Translate(ctx, req.Text, deepl.Language(strings.ToUpper(req.Target)), opts...)
	if err != nil {
		return nil, fmt.Errorf("deepl translate: %w", err)
	}

	return SplitLines(translated), nil
}

// BaseURL turns a configured endpoint such as
// https://api-free.deepl.com/v2/translate into the client's base URL.
func BaseURL(endpoint string) string {
	u := strings.TrimRight(endpoint, "/")
	return strings.TrimSuffix(u, "/translate")
}
