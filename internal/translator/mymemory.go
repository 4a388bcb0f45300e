package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const myMemoryURL = "https://api.mymemory.translated.net/get"

// MyMemoryService uses the MyMemory free API (5000 chars/day, more with an email).
type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
}

func NewMyMemoryService(cfg ServiceConfig) *MyMemoryService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = myMemoryURL
	}
	return &MyMemoryService{
		email:   cfg.Email,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if isAuto(sourceLang) {
		sourceLang = "en"
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, targetLang))
	if s.email != "" {
		q.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%s translate: failed to create request: %w", s.Name(), err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s translate: request failed: %w", s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s translate: API returned status %d", s.Name(), resp.StatusCode)
	}

	var mymemResp struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  int    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&mymemResp); err != nil {
		return "", fmt.Errorf("%s translate: failed to decode response: %w", s.Name(), err)
	}

	if mymemResp.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("%s translate: API error: %s (%d)", s.Name(), mymemResp.ResponseDetails, mymemResp.ResponseStatus)
	}

	return mymemResp.ResponseData.TranslatedText, nil
}
