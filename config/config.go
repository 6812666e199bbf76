package config

import (
	"time"

	"github.com/spf13/viper"
)

const DefaultRealm = "CompanyAI: Submit and Claim Items"

type Config struct {
	HttpPort string `yaml:"port"`
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	// Basic auth
	AuthUser  string `yaml:"auth_user"`
	AuthPass  string `yaml:"auth_pass"`
	AuthRealm string `yaml:"auth_realm"`

	// upstream workflow
	WebhookURL      string        `yaml:"webhook_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"` // 0 means no timeout

	// http
	AllowOrigins string `yaml:"allow_origins"`
	BodyLimit    int    `yaml:"body_limit"`

	// static client
	ServeStatic bool   `yaml:"serve_static"`
	StaticDir   string `yaml:"static_dir"` // empty serves the embedded client
}

// envBindings maps config keys to the environment variables they are read from.
var envBindings = map[string]string{
	"port":             "PORT",
	"app_env":          "APP_ENV",
	"log_level":        "LOG_LEVEL",
	"auth_user":        "AUTH_USER",
	"auth_pass":        "AUTH_PASS",
	"auth_realm":       "AUTH_REALM",
	"webhook_url":      "WEBHOOK_URL",
	"upstream_timeout": "UPSTREAM_TIMEOUT",
	"allow_origins":    "ALLOWORIGINS",
	"body_limit":       "BODY_LIMIT",
	"serve_static":     "SERVE_STATIC",
	"static_dir":       "STATIC_DIR",
}

// Bind registers defaults and environment bindings on v.
func Bind(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("auth_realm", DefaultRealm)
	v.SetDefault("upstream_timeout", time.Duration(0))
	v.SetDefault("body_limit", 50*1024*1024)
	v.SetDefault("serve_static", true)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

func LoadConfig(v *viper.Viper) *Config {
	return &Config{
		HttpPort:        v.GetString("port"),
		AppEnv:          v.GetString("app_env"),
		LogLevel:        v.GetString("log_level"),
		AuthUser:        v.GetString("auth_user"),
		AuthPass:        v.GetString("auth_pass"),
		AuthRealm:       v.GetString("auth_realm"),
		WebhookURL:      v.GetString("webhook_url"),
		UpstreamTimeout: v.GetDuration("upstream_timeout"),
		AllowOrigins:    v.GetString("allow_origins"),
		BodyLimit:       v.GetInt("body_limit"),
		ServeStatic:     v.GetBool("serve_static"),
		StaticDir:       v.GetString("static_dir"),
	}
}

// HasCredentials reports whether both Basic auth secrets are configured.
func (c *Config) HasCredentials() bool {
	return c.AuthUser != "" && c.AuthPass != ""
}

// Redacted returns a copy safe for printing.
func (c *Config) Redacted() Config {
	out := *c
	if out.AuthPass != "" {
		out.AuthPass = "********"
	}
	return out
}
