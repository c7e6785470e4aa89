package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	// Server addresses
	TCPAddr  = "0.0.0.0:9999"
	HTTPAddr = "0.0.0.0:8080"

	// Redis defaults
	RedisPassword = ""
	RedisDB       = 0

	// Paste settings
	PasteTTL       = 72 * time.Hour
	MaxPayloadSize = 5_000_000 // 5MB

	// ID and token lengths
	IDLength    = 7
	TokenLength = 32

	// Base URL for paste links
	BaseURL = "http://localhost:8080/"

	// Version reported by /api/v2/info
	Version = "pasty-go-serv/0.3.0"
)

// Server is the reference server configuration.
type Server struct {
	HTTPAddr      string        `yaml:"httpAddr"`
	TCPAddr       string        `yaml:"tcpAddr"`
	BaseURL       string        `yaml:"baseURL"`
	RedisURI      string        `yaml:"redisURI"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	PasteTTL      time.Duration `yaml:"pasteTTL"`
	// TrustProxy makes X-Forwarded-For and X-Real-IP authoritative for the
	// client IP. Only enable it behind a reverse proxy, the headers can be spoofed.
	TrustProxy bool `yaml:"trustProxy"`
	// RateLimit enables per-IP rate limiting. Requires RedisURI.
	RateLimit bool `yaml:"rateLimit"`
}

// Default returns the built-in configuration.
func Default() Server {
	return Server{
		HTTPAddr:      HTTPAddr,
		TCPAddr:       TCPAddr,
		BaseURL:       BaseURL,
		RedisPassword: RedisPassword,
		RedisDB:       RedisDB,
		PasteTTL:      PasteTTL,
	}
}

// Load reads a YAML file over the defaults, then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Server, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Server) applyEnv(getenv func(string) string) error {
	if v := getenv("PASTY_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := getenv("PASTY_TCP_ADDR"); v != "" {
		c.TCPAddr = v
	}
	if v := getenv("PASTY_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("REDIS_URI"); v != "" {
		c.RedisURI = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := getenv("PASTY_PASTE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PASTY_PASTE_TTL: %w", err)
		}
		c.PasteTTL = d
	}
	if v := getenv("TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY: %w", err)
		}
		c.TrustProxy = b
	}
	if v := getenv("PASTY_RATE_LIMIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PASTY_RATE_LIMIT: %w", err)
		}
		c.RateLimit = b
	}
	return nil
}

// BlacklistedPhrases contains spam/attack patterns to reject.
var BlacklistedPhrases = []string{
	"Cookie: mstshash=Administ",
	"-esystem('cmd /c echo .close",
	"md /c echo Set xHttp=createobjec",
}
