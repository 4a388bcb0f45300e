package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService uses the Cloud Translation API with a service account.
type GoogleService struct {
	credentials string
	projectID   string
	timeout     time.Duration
	clientOpts  []option.ClientOption
}

func NewGoogleService(cfg ServiceConfig) *GoogleService {
	s := &GoogleService{
		credentials: cfg.Credentials,
		projectID:   cfg.ProjectID,
		timeout:     timeoutOrDefault(cfg.Timeout),
	}
	if cfg.Credentials != "" {
		s.clientOpts = append(s.clientOpts, option.WithCredentialsFile(cfg.Credentials))
	}
	if cfg.ProjectID != "" {
		s.clientOpts = append(s.clientOpts, option.WithQuotaProject(cfg.ProjectID))
	}
	return s
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	targetTag, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("%s translate: invalid target language %q: %w", s.Name(), targetLang, err)
	}

	var opts *translate.Options
	if !isAuto(sourceLang) {
		sourceTag, err := language.Parse(sourceLang)
		if err != nil {
			return "", fmt.Errorf("%s translate: invalid source language %q: %w", s.Name(), sourceLang, err)
		}
		opts = &translate.Options{Source: sourceTag, Format: translate.Text}
	} else {
		opts = &translate.Options{Format: translate.Text}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := translate.NewClient(ctx, s.clientOpts...)
	if err != nil {
		return "", fmt.Errorf("%s translate: failed to create client: %w", s.Name(), err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{text}, targetTag, opts)
	if err != nil {
		return "", fmt.Errorf("%s translate: %w", s.Name(), err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("%s translate: no translation returned", s.Name())
	}

	return translations[0].Text, nil
}
