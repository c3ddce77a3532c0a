// Package sysutil holds process-level helpers shared by cmd and the HTTP
// layer.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// SetLogLevel sets the global zerolog level from a config string and returns
// the level applied. "warning" is accepted for "warn"; empty or unknown
// values fall back to info.
func SetLogLevel(lvl string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// FirstNonEmpty returns the first value that is not blank, unchanged.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ShopDomain picks the first non-blank candidate and normalizes it the way
// shops are keyed in storage: trimmed and lower-cased.
func ShopDomain(candidates ...string) string {
	return strings.ToLower(strings.TrimSpace(FirstNonEmpty(candidates...)))
}
