package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Registrar RegistrarConfig
	Monitor   MonitorConfig
	Bots      BotsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type RegistrarConfig struct {
	URL           string
	APIUser       string
	APIKey        string
	Username      string
	ClientIP      string
	Demo          bool
	MinIntervalMs int
	TimeoutSec    int
	BatchSize     int
}

type MonitorConfig struct {
	MaxMemoryMB         float64
	MaxResponseTimeMs   float64
	MaxErrorRate        float64
	HealthCheckInterval time.Duration
	RolloverInterval    time.Duration
}

type BotsConfig struct {
	Strategies       []string
	ScheduleInterval time.Duration
	TLDs             []string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdleConns   int
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("SCOUT")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("registrar.url", "https://api.namecheap.com/xml.response")
	viper.SetDefault("registrar.minintervalms", 1000)
	viper.SetDefault("registrar.timeoutsec", 10)
	viper.SetDefault("registrar.batchsize", 20)
	viper.SetDefault("monitor.maxmemorymb", 512)
	viper.SetDefault("monitor.maxresponsetimems", 5000)
	viper.SetDefault("monitor.maxerrorrate", 0.1)
	viper.SetDefault("monitor.healthcheckinterval", "60s")
	viper.SetDefault("monitor.rolloverinterval", "1h")
	viper.SetDefault("bots.strategies", []string{"hidden", "nested", "unexplored", "unseen", "unfound"})
	viper.SetDefault("bots.scheduleinterval", "5m")
	viper.SetDefault("bots.tlds", []string{"com", "io", "net", "ai", "xyz"})
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.maxidleconns", 5)
	viper.SetDefault("redis.cachettl", "10m")

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if user := os.Getenv("REGISTRAR_API_USER"); user != "" {
		cfg.Registrar.APIUser = user
	}
	if key := os.Getenv("REGISTRAR_API_KEY"); key != "" {
		cfg.Registrar.APIKey = key
	}
	if name := os.Getenv("REGISTRAR_USERNAME"); name != "" {
		cfg.Registrar.Username = name
	}
	if ip := os.Getenv("REGISTRAR_CLIENT_IP"); ip != "" {
		cfg.Registrar.ClientIP = ip
	}

	// Without credentials the registrar client can only run in demo mode
	if cfg.Registrar.APIUser == "" || cfg.Registrar.APIKey == "" {
		cfg.Registrar.Demo = true
	}

	return &cfg, nil
}
