package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`

	// ViewsPath is a directory whose .tmpl files replace the built-in views.
	ViewsPath string `mapstructure:"views_path"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Password          string `mapstructure:"password"`
	DB                int    `mapstructure:"db"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) SessionTTL() time.Duration {
	if r.SessionTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(r.SessionTTLMinutes) * time.Minute
}

// UpstreamConfig points at the marketplace JSON API the console renders.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	ServiceToken   string `mapstructure:"service_token"`
}

// Timeout returns zero when unset so the HTTP client keeps its defaults.
func (u *UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Session  string `mapstructure:"session"`
	Path     string `mapstructure:"path"`
	Domain   string `mapstructure:"domain"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type AuthConfig struct {
	JWT    JWTConfig    `mapstructure:"jwt"`
	Cookie CookieConfig `mapstructure:"cookie"`
}

type ConsoleConfig struct {
	PageSize        int    `mapstructure:"page_size"`
	ReviewClinicCap int    `mapstructure:"review_clinic_cap"`
	RecentLimit     int    `mapstructure:"recent_limit"`
	SupportEmail    string `mapstructure:"support_email"`
	MutationsPerMin int    `mapstructure:"mutations_per_minute"`
}
