package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	pkgconfig "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/config"
	"github.com/viru0909-dev/nyay-setu-working-sub001/pkg/pubsub"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	CORS      CORSConfig
	Events    EventsConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type EventsConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	PubSub  pubsub.Config `mapstructure:"pubsub"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173")
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.pubsub.driver", "redis")
	v.SetDefault("events.pubsub.redis.address", "localhost:6379")
	v.SetDefault("events.pubsub.redis.password", "")
	v.SetDefault("events.pubsub.redis.db", 0)
	v.SetDefault("events.pubsub.redis.pool_size", 10)
	v.SetDefault("events.pubsub.kafka.brokers", "localhost:9092")
	v.SetDefault("events.pubsub.kafka.partitions", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")
	v.BindEnv("events.enabled", "EVENTS_ENABLED")
	v.BindEnv("events.pubsub.driver", "PUBSUB_DRIVER")
	v.BindEnv("events.pubsub.redis.address", "REDIS_ADDRESS")
	v.BindEnv("events.pubsub.redis.password", "REDIS_PASSWORD")
	v.BindEnv("events.pubsub.kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Allowed origins arrive either as a yaml list or a comma-separated
	// env value (viper's decode hook splits on ","); trim stray whitespace.
	cfg.CORS.AllowedOrigins = trimAll(cfg.CORS.AllowedOrigins)

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	return &cfg, nil
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return defaultVal
	}
	return d
}
