package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string
	AppPort         string
	MetricsPort     string
	ShutdownTimeout time.Duration

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	GroupCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	WSWriteWait      time.Duration
	WSPongWait       time.Duration
	WSPingPeriod     time.Duration
	WSMaxMessageSize int64
	WSSendBuffer     int
}

// Load reads config/config.yaml and lets environment variables override
// individual keys.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("app_port", "8080")
	v.SetDefault("metrics_port", "9090")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "chat")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("group_cache_ttl", "30m")
	v.SetDefault("ws_write_wait", "10s")
	v.SetDefault("ws_pong_wait", "60s")
	v.SetDefault("ws_max_message_size", 65536)
	v.SetDefault("ws_send_buffer", 256)

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults plus env cover local runs.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		AppEnv:          v.GetString("app_env"),
		AppPort:         v.GetString("app_port"),
		MetricsPort:     v.GetString("metrics_port"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),

		MongoURI: v.GetString("mongo_uri"),
		MongoDB:  v.GetString("mongo_db"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		GroupCacheTTL: v.GetDuration("group_cache_ttl"),

		KafkaBrokers: v.GetStringSlice("kafka_brokers"),
		KafkaTopic:   v.GetString("kafka_topic"),

		WSWriteWait:      v.GetDuration("ws_write_wait"),
		WSPongWait:       v.GetDuration("ws_pong_wait"),
		WSMaxMessageSize: v.GetInt64("ws_max_message_size"),
		WSSendBuffer:     v.GetInt("ws_send_buffer"),
	}
	// Pings must come more often than the pong deadline expires.
	cfg.WSPingPeriod = cfg.WSPongWait * 9 / 10
	return cfg, nil
}
