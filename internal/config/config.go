package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Discord  DiscordConfig  `yaml:"discord"`
	Sink     SinkConfig     `yaml:"sink"`
	Audit    AuditConfig    `yaml:"audit"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// DiscordConfig holds platform REST API settings used by the invite
// verifier and the message text resolver.
type DiscordConfig struct {
	APIBaseURL     string        `yaml:"api_base_url"    env:"DISCORD_API_BASE_URL"    env-default:"https://discord.com/api/v10"`
	BotToken       string        `yaml:"bot_token"       env:"DISCORD_BOT_TOKEN"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"DISCORD_REQUEST_TIMEOUT" env-default:"15s"`
}

// SinkConfig holds settings for the flag report sink.
type SinkConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"SINK_WEBHOOK_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"SINK_TIMEOUT" env-default:"10s"`
}

// Duplicate/quota scoping modes. Owner scoping protects each roster
// independently; global scoping catches the same invite reused across
// different owners in one run.
const (
	ScopeOwner  = "owner"
	ScopeGlobal = "global"
)

// AuditConfig holds the partnership audit engine settings.
//
// The audited target day defaults to the calendar day immediately preceding
// the run, in Timezone.
type AuditConfig struct {
	GuildID           string        `yaml:"guild_id"            env:"AUDIT_GUILD_ID"            env-required:"true"`
	QuotaThreshold    int           `yaml:"quota_threshold"     env:"AUDIT_QUOTA_THRESHOLD"     env-default:"5"`
	Cooldown          time.Duration `yaml:"cooldown"            env:"AUDIT_COOLDOWN"            env-default:"12h"`
	Timezone          string        `yaml:"timezone"            env:"AUDIT_TIMEZONE"            env-default:"UTC"`
	Scope             string        `yaml:"scope"               env:"AUDIT_SCOPE"               env-default:"owner"`
	RunTimeout        time.Duration `yaml:"run_timeout"         env:"AUDIT_RUN_TIMEOUT"         env-default:"5m"`
	MaxParallelOwners int           `yaml:"max_parallel_owners" env:"AUDIT_MAX_PARALLEL_OWNERS" env-default:"4"`
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (a AuditConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
