package translator

import (
	"context"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ServiceConfig carries the settings a generic backend may need.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Email       string        `mapstructure:"email" json:"email"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Translator is a generic translation backend.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// SplitLines splits a translation into the lines handed back to the editor.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// timeoutOrDefault returns d, or defaultTimeout when d is not positive.
func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}

func isAuto(lang string) bool {
	return lang == "" || lang == "auto"
}
