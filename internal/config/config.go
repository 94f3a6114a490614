package config

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWSSUMMARY_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	redisAddrEnv      = "REDIS_ADDR"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	geminiAPIKeysEnv  = "GEMINI_API_KEYS"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"

	// Slider bounds of the original interface; values outside revert to the
	// defaults.
	minChunkSize  = 3
	maxChunkSize  = 120
	minClusterCnt = 1
	maxClusterCnt = 50
	defChunkSize  = 30
	defClusterCnt = 20
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Archive       ArchiveConfig      `yaml:"archive"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Embedding     EmbeddingConfig    `yaml:"embedding"`
	Summarizer    SummarizerConfig   `yaml:"summarizer"`
	Cache         CacheConfig        `yaml:"cache"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Channels      map[string]string  `yaml:"channels"`
}

// LoggingConfig selects handler format and level.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ArchiveConfig describes the TV news archive endpoint.
type ArchiveConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// PipelineConfig carries the tunable run parameters.
type PipelineConfig struct {
	ChunkSize      int   `yaml:"chunkSize"`
	ClusterCount   int   `yaml:"clusterCount"`
	Seed           int64 `yaml:"seed"`
	FetchWorkers   int   `yaml:"fetchWorkers"`
	SummaryWorkers int   `yaml:"summaryWorkers"`
	Retries        int   `yaml:"retries"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "ollama"
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	BatchSize int    `yaml:"batchSize"`
}

// SummarizerConfig wires the available summarization models.
type SummarizerConfig struct {
	Default string            `yaml:"default"`
	OpenAI  OpenAIModelConfig `yaml:"openai"`
	Vicuna  VicunaModelConfig `yaml:"vicuna"`
	Gemini  GeminiModelConfig `yaml:"gemini"`
}

// OpenAIModelConfig defines how to contact the OpenAI API.
type OpenAIModelConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// VicunaModelConfig points at an OpenAI-compatible server; no real key needed.
type VicunaModelConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// GeminiModelConfig carries the Gemini model and its rotating API keys.
type GeminiModelConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"apiKeys"`
}

// CacheConfig selects the result-cache backend.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // "file", "postgres" or "redis"
	Dir       string `yaml:"dir"`
	DSN       string `yaml:"dsn"`
	RedisAddr string `yaml:"redisAddr"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines the daemon-mode run interval.
type SchedulerConfig struct {
	Enabled       bool `yaml:"enabled"`
	IntervalHours int  `yaml:"intervalHours"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.validate()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Cache.DSN = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Cache.RedisAddr = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.Summarizer.OpenAI.APIKey = v
		if c.Embedding.APIKey == "" {
			c.Embedding.APIKey = v
		}
	}

	if v := os.Getenv(geminiAPIKeysEnv); v != "" {
		var keys []string
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			c.Summarizer.Gemini.APIKeys = keys
		}
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) validate() {
	if c.Pipeline.ChunkSize < minChunkSize || c.Pipeline.ChunkSize > maxChunkSize {
		log.Printf("config: chunkSize %d out of range [%d, %d], reverting to %d",
			c.Pipeline.ChunkSize, minChunkSize, maxChunkSize, defChunkSize)
		c.Pipeline.ChunkSize = defChunkSize
	}
	if c.Pipeline.ClusterCount < minClusterCnt || c.Pipeline.ClusterCount > maxClusterCnt {
		log.Printf("config: clusterCount %d out of range [%d, %d], reverting to %d",
			c.Pipeline.ClusterCount, minClusterCnt, maxClusterCnt, defClusterCnt)
		c.Pipeline.ClusterCount = defClusterCnt
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Archive.BaseURL != "" {
		base.Archive.BaseURL = override.Archive.BaseURL
	}
	if override.Archive.TimeoutSeconds > 0 {
		base.Archive.TimeoutSeconds = override.Archive.TimeoutSeconds
	}

	if override.Pipeline.ChunkSize != 0 {
		base.Pipeline.ChunkSize = override.Pipeline.ChunkSize
	}
	if override.Pipeline.ClusterCount != 0 {
		base.Pipeline.ClusterCount = override.Pipeline.ClusterCount
	}
	if override.Pipeline.Seed != 0 {
		base.Pipeline.Seed = override.Pipeline.Seed
	}
	if override.Pipeline.FetchWorkers > 0 {
		base.Pipeline.FetchWorkers = override.Pipeline.FetchWorkers
	}
	if override.Pipeline.SummaryWorkers > 0 {
		base.Pipeline.SummaryWorkers = override.Pipeline.SummaryWorkers
	}
	if override.Pipeline.Retries > 0 {
		base.Pipeline.Retries = override.Pipeline.Retries
	}

	if override.Embedding.Provider != "" {
		base.Embedding.Provider = override.Embedding.Provider
	}
	if override.Embedding.Endpoint != "" {
		base.Embedding.Endpoint = override.Embedding.Endpoint
	}
	if override.Embedding.Model != "" {
		base.Embedding.Model = override.Embedding.Model
	}
	if override.Embedding.APIKey != "" {
		base.Embedding.APIKey = override.Embedding.APIKey
	}
	if override.Embedding.BatchSize > 0 {
		base.Embedding.BatchSize = override.Embedding.BatchSize
	}

	if override.Summarizer.Default != "" {
		base.Summarizer.Default = override.Summarizer.Default
	}
	if override.Summarizer.OpenAI.Endpoint != "" {
		base.Summarizer.OpenAI.Endpoint = override.Summarizer.OpenAI.Endpoint
	}
	if override.Summarizer.OpenAI.Model != "" {
		base.Summarizer.OpenAI.Model = override.Summarizer.OpenAI.Model
	}
	if override.Summarizer.OpenAI.APIKey != "" {
		base.Summarizer.OpenAI.APIKey = override.Summarizer.OpenAI.APIKey
	}
	if override.Summarizer.Vicuna.Endpoint != "" {
		base.Summarizer.Vicuna.Endpoint = override.Summarizer.Vicuna.Endpoint
	}
	if override.Summarizer.Vicuna.Model != "" {
		base.Summarizer.Vicuna.Model = override.Summarizer.Vicuna.Model
	}
	if override.Summarizer.Gemini.Model != "" {
		base.Summarizer.Gemini.Model = override.Summarizer.Gemini.Model
	}
	if len(override.Summarizer.Gemini.APIKeys) > 0 {
		base.Summarizer.Gemini.APIKeys = override.Summarizer.Gemini.APIKeys
	}

	if override.Cache.Backend != "" {
		base.Cache.Backend = override.Cache.Backend
	}
	if override.Cache.Dir != "" {
		base.Cache.Dir = override.Cache.Dir
	}
	if override.Cache.DSN != "" {
		base.Cache.DSN = override.Cache.DSN
	}
	if override.Cache.RedisAddr != "" {
		base.Cache.RedisAddr = override.Cache.RedisAddr
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	if len(override.Channels) > 0 {
		base.Channels = override.Channels
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Archive: ArchiveConfig{
			BaseURL:        "https://archive.org/tvnews",
			TimeoutSeconds: 30,
		},
		Pipeline: PipelineConfig{
			ChunkSize:      defChunkSize,
			ClusterCount:   defClusterCnt,
			Seed:           1,
			FetchWorkers:   4,
			SummaryWorkers: 4,
			Retries:        3,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Endpoint:  "https://api.openai.com/v1/embeddings",
			Model:     "text-embedding-ada-002",
			BatchSize: 64,
		},
		Summarizer: SummarizerConfig{
			Default: "OpenAI",
			OpenAI: OpenAIModelConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4o-mini",
			},
			Vicuna: VicunaModelConfig{
				Model: "vicuna-13b-v1.5",
			},
			Gemini: GeminiModelConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     "cache",
		},
		Scheduler: SchedulerConfig{IntervalHours: 24},
		Channels: map[string]string{
			"Espreso":    "ESPRESO",
			"Russia 1":   "RUSSIA1",
			"Russia 24":  "RUSSIA24",
			"1TV":        "1TV",
			"NTV":        "NTV",
			"Belarus TV": "BELARUSTV",
			"IRINN":      "IRINN",
		},
	}
}
