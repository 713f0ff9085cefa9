package amtsblatt

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a fetch run. All values
// originate from Viper so the client can be configured via files, env vars,
// or CLI flags.
type Config struct {
	BaseURL      string
	Cantons      []string
	Rubrics      []string
	PageSize     int
	LookbackDays int
	UserAgent    string
	Timeout      time.Duration
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:      strings.TrimRight(v.GetString("amtsblatt.base_url"), "/"),
		Cantons:      normalizeCodes(v.GetStringSlice("amtsblatt.cantons")),
		Rubrics:      normalizeCodes(v.GetStringSlice("amtsblatt.rubrics")),
		PageSize:     v.GetInt("amtsblatt.page_size"),
		LookbackDays: v.GetInt("amtsblatt.lookback_days"),
		UserAgent:    v.GetString("amtsblatt.user_agent"),
		Timeout:      v.GetDuration("amtsblatt.request_timeout"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("amtsblatt.base_url must be set")
	}
	if len(c.Cantons) == 0 {
		return fmt.Errorf("amtsblatt.cantons must include at least one canton code")
	}
	if len(c.Rubrics) == 0 {
		return fmt.Errorf("amtsblatt.rubrics must include at least one rubric code")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("amtsblatt.page_size must be > 0")
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("amtsblatt.lookback_days must be >= 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("amtsblatt.user_agent must be set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("amtsblatt.request_timeout must be > 0")
	}
	return nil
}

func normalizeCodes(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{})
	for _, code := range in {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
