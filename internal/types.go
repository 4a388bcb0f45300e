package internal

import "time"

// TranslationRequest is a translation as recorded in the history store.
type TranslationRequest struct {
	ID         string    `json:"id"`
	SourceText string    `json:"source_text"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Endpoint   string    `json:"endpoint"`
	Timestamp  time.Time `json:"timestamp"`
}
