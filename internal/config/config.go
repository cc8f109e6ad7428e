package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	EvaluationCacheTTL time.Duration
	DockerHost         string
	DemoTimeout        time.Duration
	DemoMemoryMB       int
	DemoCPUShares      int
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAITemperature  float32
	OpenAIMaxTokens    int
	JudgeTimeout       time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LLDLAB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "LLD Lab API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("evaluation.cache_ttl", "5m")
	v.SetDefault("demo.timeout_ms", 5000)
	v.SetDefault("demo.memory_mb", 256)
	v.SetDefault("demo.cpu_shares", 512)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.2)
	v.SetDefault("openai.max_tokens", 1024)
	v.SetDefault("judge.timeout_ms", 30000)

	ttlString := v.GetString("evaluation.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid evaluation cache ttl: %w", err)
	}

	demoTimeoutMs := v.GetInt("demo.timeout_ms")
	if demoTimeoutMs <= 0 {
		demoTimeoutMs = 5000
	}

	judgeTimeoutMs := v.GetInt("judge.timeout_ms")
	if judgeTimeoutMs <= 0 {
		judgeTimeoutMs = 30000
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		EvaluationCacheTTL: ttl,
		DockerHost:         v.GetString("docker_host"),
		DemoTimeout:        time.Duration(demoTimeoutMs) * time.Millisecond,
		DemoMemoryMB:       v.GetInt("demo.memory_mb"),
		DemoCPUShares:      v.GetInt("demo.cpu_shares"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIModel:        v.GetString("openai.model"),
		OpenAITemperature:  float32(v.GetFloat64("openai.temperature")),
		OpenAIMaxTokens:    v.GetInt("openai.max_tokens"),
		JudgeTimeout:       time.Duration(judgeTimeoutMs) * time.Millisecond,
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("openai api key must be provided")
	}

	if cfg.DemoMemoryMB <= 0 {
		cfg.DemoMemoryMB = 256
	}

	if cfg.DemoCPUShares <= 0 {
		cfg.DemoCPUShares = 512
	}

	return cfg, nil
}
