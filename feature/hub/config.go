package hub

import "time"

// Config holds configuration for the hub client.
type Config struct {
	// Pages is the default number of listing pages to scrape.
	Pages int `mapstructure:"pages" default:"3"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries" default:"4"`
	// InitialBackoffMs is the first retry delay.
	InitialBackoffMs int `mapstructure:"initial_backoff_ms" default:"500"`
	// MaxBackoffMs caps the retry delay.
	MaxBackoffMs int `mapstructure:"max_backoff_ms" default:"10000"`
	// CacheTTLSeconds is how long fetched pages are reused. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"600"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"mod-manager"`
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) cacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
