package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all fetch configuration. Created once at construction and
// mutated only through Apply.
type Config struct {
	// MaxDelay is the retry delay ceiling in seconds (delay mode only).
	MaxDelay int // default: 15

	// Timeout is the per-request timeout in seconds.
	Timeout int // default: 5

	// UseProxy routes requests through the rotating proxy pool.
	UseProxy bool // default: false

	// ProxyFile is a line-delimited file of proxy endpoints.
	// Preferred over ProxyList when both are set.
	ProxyFile string

	// ProxyList is an in-memory ordered list of proxy endpoints.
	ProxyList []string

	// ProxyProtocol, when set, is prefixed onto pool entries that carry
	// no scheme (e.g. "http" turns "1.2.3.4:8080" into "http://1.2.3.4:8080").
	ProxyProtocol string

	// ProxyOneTime removes a failed proxy from the pool instead of
	// rotating it to the tail.
	ProxyOneTime bool // default: false

	// MaxRetries bounds the retry loop. 0 means retry forever.
	MaxRetries int // default: 0

	// Debug raises log verbosity to debug level.
	Debug bool // default: false
}

// Options carries a partial configuration update. Zero-valued fields leave
// the current value untouched; booleans use pointers so an explicit false
// can be distinguished from "not supplied".
type Options struct {
	MaxDelay      int
	Timeout       int
	UseProxy      *bool
	ProxyFile     string
	ProxyList     []string
	ProxyProtocol string
	ProxyOneTime  *bool
	MaxRetries    int
	Debug         *bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		MaxDelay:      envIntOr("HLTV_MAX_DELAY", 15),
		Timeout:       envIntOr("HLTV_TIMEOUT", 5),
		UseProxy:      envBoolOr("HLTV_USE_PROXY", false),
		ProxyFile:     os.Getenv("HLTV_PROXY_FILE"),
		ProxyList:     envSliceOr("HLTV_PROXY_LIST", nil),
		ProxyProtocol: os.Getenv("HLTV_PROXY_PROTOCOL"),
		ProxyOneTime:  envBoolOr("HLTV_PROXY_ONE_TIME", false),
		MaxRetries:    envIntOr("HLTV_MAX_RETRIES", 0),
		Debug:         envBoolOr("HLTV_DEBUG", false),
	}
}

// Apply overwrites only the fields opts explicitly supplies; every other
// field keeps its prior value.
func (c *Config) Apply(opts Options) {
	if opts.MaxDelay != 0 {
		c.MaxDelay = opts.MaxDelay
	}
	if opts.Timeout != 0 {
		c.Timeout = opts.Timeout
	}
	if opts.UseProxy != nil {
		c.UseProxy = *opts.UseProxy
	}
	if opts.ProxyFile != "" {
		c.ProxyFile = opts.ProxyFile
	}
	if opts.ProxyList != nil {
		c.ProxyList = opts.ProxyList
	}
	if opts.ProxyProtocol != "" {
		c.ProxyProtocol = opts.ProxyProtocol
	}
	if opts.ProxyOneTime != nil {
		c.ProxyOneTime = *opts.ProxyOneTime
	}
	if opts.MaxRetries != 0 {
		c.MaxRetries = opts.MaxRetries
	}
	if opts.Debug != nil {
		c.Debug = *opts.Debug
	}
}

// --- helper functions ---

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
