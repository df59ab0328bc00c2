package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the qrguard service. Both
// reputation API keys are optional; the corresponding provider degrades to a
// no-op when its key is absent.
type Config struct {
	Port         int
	AllowOrigins []string

	ResolveTimeout time.Duration
	MaxRedirects   int
	UserAgent      string

	ReputationTimeout  time.Duration
	VirusTotalAPIKey   string
	SafeBrowsingAPIKey string

	TablesPath string
}

// Load reads configuration from the environment (QRGUARD_ prefix) with an
// optional qrguard.yaml config file; environment wins. Missing values fall
// back to defaults, so Load never fails on absent configuration.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("qrguard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/qrguard")

	v.SetEnvPrefix("QRGUARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("port", 8080)
	v.SetDefault("allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("resolve_timeout", "10s")
	v.SetDefault("max_redirects", 10)
	v.SetDefault("user_agent", "QRGuard-Scanner/1.0")
	v.SetDefault("reputation_timeout", "5s")
	v.SetDefault("virustotal_api_key", "")
	v.SetDefault("safebrowsing_api_key", "")
	v.SetDefault("tables_path", "")

	// The config file is optional; env plus defaults are a full config.
	_ = v.ReadInConfig()

	return &Config{
		Port:               v.GetInt("port"),
		AllowOrigins:       v.GetStringSlice("allow_origins"),
		ResolveTimeout:     v.GetDuration("resolve_timeout"),
		MaxRedirects:       v.GetInt("max_redirects"),
		UserAgent:          v.GetString("user_agent"),
		ReputationTimeout:  v.GetDuration("reputation_timeout"),
		VirusTotalAPIKey:   v.GetString("virustotal_api_key"),
		SafeBrowsingAPIKey: v.GetString("safebrowsing_api_key"),
		TablesPath:         v.GetString("tables_path"),
	}
}
