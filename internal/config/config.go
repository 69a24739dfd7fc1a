package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	RoundDuration     time.Duration `env:"ROUND_DURATION" envDefault:"30s"`
	RoomCodeLength    int           `env:"ROOM_CODE_LENGTH" envDefault:"6"`
	IdleRoomTTL       time.Duration `env:"IDLE_ROOM_TTL" envDefault:"10m"`
	IdleSweepInterval time.Duration `env:"IDLE_SWEEP_INTERVAL" envDefault:"1m"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	WS WebSocket

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"flipboard.results"`
}

type WebSocket struct {
	PingInterval time.Duration `env:"WS_PING_INTERVAL" envDefault:"54s"`
	ReadTimeout  time.Duration `env:"WS_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`
	SendBuffer   int           `env:"WS_SEND_BUFFER" envDefault:"256"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RoundDuration <= 0 {
		return Config{}, fmt.Errorf("ROUND_DURATION must be positive, got %s", cfg.RoundDuration)
	}
	if cfg.RoomCodeLength < 4 {
		return Config{}, fmt.Errorf("ROOM_CODE_LENGTH must be at least 4, got %d", cfg.RoomCodeLength)
	}
	if cfg.WS.PingInterval <= 0 || cfg.WS.ReadTimeout <= 0 || cfg.WS.WriteTimeout <= 0 {
		return Config{}, errors.New("WS_* intervals must be positive")
	}
	if cfg.WS.SendBuffer <= 0 {
		cfg.WS.SendBuffer = 256
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
