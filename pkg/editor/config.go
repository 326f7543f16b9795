package editor

import (
	"os"
	"strconv"

	"github.com/hamzaessahbaoui/editkit/pkg/fingerprint"
)

// Config carries the engine knobs that observed callers disagree on, chiefly
// the full-rewrite threshold, so deployments can pin their own values instead
// of inheriting a hard-coded one.
type Config struct {
	// FullRewriteThreshold is the percentage_to_change at or above which a
	// payload is taken as the literal full file content.
	FullRewriteThreshold int

	// MaxFileSize bounds the size of files the engine will read or edit.
	MaxFileSize int64

	// DiffContext is the number of context lines in unified-diff summaries.
	DiffContext int

	// Fingerprint computes content digests for the whitelist. Defaults to
	// SHA-256 hex.
	Fingerprint fingerprint.Func
}

// DefaultConfig returns the defaults observed in production callers:
// threshold 50, 50 MB size cap, 3 lines of diff context, SHA-256 digests.
func DefaultConfig() Config {
	return Config{
		FullRewriteThreshold: 50,
		MaxFileSize:          50_000_000,
		DiffContext:          3,
		Fingerprint:          fingerprint.Of,
	}
}

// ConfigFromEnv starts from DefaultConfig and overrides fields from
// EDITKIT_FULL_REWRITE_THRESHOLD, EDITKIT_MAX_FILE_SIZE and
// EDITKIT_DIFF_CONTEXT when set. Callers that want .env support load it
// first (the examples use joho/godotenv).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, ok := envInt("EDITKIT_FULL_REWRITE_THRESHOLD"); ok {
		cfg.FullRewriteThreshold = v
	}
	if v, ok := envInt("EDITKIT_MAX_FILE_SIZE"); ok {
		cfg.MaxFileSize = int64(v)
	}
	if v, ok := envInt("EDITKIT_DIFF_CONTEXT"); ok {
		cfg.DiffContext = v
	}
	return cfg
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalized fills zero-valued fields with defaults so a partially built
// Config works.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.FullRewriteThreshold <= 0 {
		c.FullRewriteThreshold = def.FullRewriteThreshold
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = def.MaxFileSize
	}
	if c.DiffContext <= 0 {
		c.DiffContext = def.DiffContext
	}
	if c.Fingerprint == nil {
		c.Fingerprint = def.Fingerprint
	}
	return c
}
