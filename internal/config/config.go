package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. KINTAI_PAYROLL_HOURLY_WAGE.
const EnvPrefix = "KINTAI"

// Config represents application configuration
type Config struct {
	Payroll PayrollConfig `mapstructure:"payroll"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

// PayrollConfig represents pay and shift rules
type PayrollConfig struct {
	HourlyWage     int64  `mapstructure:"hourly_wage"`
	BreakMinutes   int    `mapstructure:"break_minutes"`
	StandardStart  string `mapstructure:"standard_start"` // HH:MM
	StandardEnd    string `mapstructure:"standard_end"`   // HH:MM
	FullDayMinutes int    `mapstructure:"full_day_minutes"`
	OvertimeRate   string `mapstructure:"overtime_rate"` // decimal, e.g. "1.25"
}

// StorageConfig represents where records are kept
type StorageConfig struct {
	RecordsFile string `mapstructure:"records_file"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // empty: console only
	Level string `mapstructure:"level"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("payroll.hourly_wage", 1500)
	v.SetDefault("payroll.break_minutes", 60)
	v.SetDefault("payroll.standard_start", "09:30")
	v.SetDefault("payroll.standard_end", "18:30")
	v.SetDefault("payroll.full_day_minutes", 480)
	v.SetDefault("payroll.overtime_rate", "1.25")
	v.SetDefault("storage.records_file", "data/attendance.json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
}

// Load loads configuration from file, .env and the environment.
// Without an explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.kintai")
		v.AddConfigPath("/etc/kintai")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Payroll.Policy(); err != nil {
		return err
	}
	if c.Storage.RecordsFile == "" {
		return fmt.Errorf("storage.records_file is required")
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

// Policy converts the payroll section into a validated pay policy.
func (c *PayrollConfig) Policy() (attendance.Policy, error) {
	if c.HourlyWage <= 0 {
		return attendance.Policy{}, fmt.Errorf("payroll.hourly_wage must be positive")
	}
	if c.FullDayMinutes <= 0 {
		return attendance.Policy{}, fmt.Errorf("payroll.full_day_minutes must be positive")
	}
	if c.BreakMinutes < 0 {
		return attendance.Policy{}, fmt.Errorf("payroll.break_minutes must not be negative")
	}

	start, err := attendance.ParseClock(c.StandardStart)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("payroll.standard_start: %w", err)
	}
	end, err := attendance.ParseClock(c.StandardEnd)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("payroll.standard_end: %w", err)
	}
	rate, err := decimal.NewFromString(c.OvertimeRate)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("payroll.overtime_rate %q is not a number: %w", c.OvertimeRate, err)
	}

	policy := attendance.Policy{
		HourlyWage:     decimal.NewFromInt(c.HourlyWage),
		BreakMinutes:   c.BreakMinutes,
		StandardStart:  start,
		StandardEnd:    end,
		FullDayMinutes: c.FullDayMinutes,
		OvertimeRate:   rate,
	}
	if err := policy.Validate(); err != nil {
		return attendance.Policy{}, fmt.Errorf("payroll: %w", err)
	}
	return policy, nil
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || duration <= 0 {
		return 10 * time.Second
	}
	return duration
}

// GetLevel returns the log level, "info" when unset
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}
