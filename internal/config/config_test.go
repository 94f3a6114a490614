package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(geminiAPIKeysEnv, "")

	cfg := Load()

	if cfg.Pipeline.ChunkSize != 30 {
		t.Fatalf("unexpected default chunk size: %d", cfg.Pipeline.ChunkSize)
	}
	if cfg.Pipeline.ClusterCount != 20 {
		t.Fatalf("unexpected default cluster count: %d", cfg.Pipeline.ClusterCount)
	}
	if cfg.Cache.Backend != "file" {
		t.Fatalf("unexpected default cache backend: %s", cfg.Cache.Backend)
	}
	if cfg.Channels["Russia 1"] != "RUSSIA1" {
		t.Fatalf("channel registry missing RUSSIA1: %v", cfg.Channels)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: json
pipeline:
  chunkSize: 60
  clusterCount: 10
summarizer:
  default: Vicuna
  vicuna:
    endpoint: http://localhost:8000/v1/chat/completions
cache:
  backend: redis
  redisAddr: localhost:6379
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	cfg := Load()

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging not merged: %+v", cfg.Logging)
	}
	if cfg.Pipeline.ChunkSize != 60 || cfg.Pipeline.ClusterCount != 10 {
		t.Fatalf("pipeline not merged: %+v", cfg.Pipeline)
	}
	if cfg.Summarizer.Default != "Vicuna" {
		t.Fatalf("summarizer default not merged: %s", cfg.Summarizer.Default)
	}
	if cfg.Summarizer.Vicuna.Endpoint != "http://localhost:8000/v1/chat/completions" {
		t.Fatalf("vicuna endpoint not merged: %s", cfg.Summarizer.Vicuna.Endpoint)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Fatalf("cache not merged: %+v", cfg.Cache)
	}

	// Defaults survive where the file is silent.
	if cfg.Archive.BaseURL == "" {
		t.Fatal("archive default lost")
	}
	if cfg.Summarizer.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("openai default lost: %s", cfg.Summarizer.OpenAI.Model)
	}
}

func TestLoadClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pipeline:
  chunkSize: 500
  clusterCount: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	cfg := Load()

	if cfg.Pipeline.ChunkSize != defChunkSize {
		t.Fatalf("chunk size not reverted: %d", cfg.Pipeline.ChunkSize)
	}
	if cfg.Pipeline.ClusterCount != defClusterCnt {
		t.Fatalf("cluster count not reverted: %d", cfg.Pipeline.ClusterCount)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIAPIKeyEnv, "sk-env")
	t.Setenv(geminiAPIKeysEnv, "key-a, key-b ,key-c")
	t.Setenv(databaseDSNEnv, "postgres://env")
	t.Setenv(telegramTokenEnv, "bot-token")
	t.Setenv(telegramChatIDEnv, "chat-42")

	cfg := Load()

	if cfg.Summarizer.OpenAI.APIKey != "sk-env" {
		t.Fatalf("openai key not applied: %s", cfg.Summarizer.OpenAI.APIKey)
	}
	if cfg.Embedding.APIKey != "sk-env" {
		t.Fatalf("embedding key not inherited: %s", cfg.Embedding.APIKey)
	}
	if len(cfg.Summarizer.Gemini.APIKeys) != 3 || cfg.Summarizer.Gemini.APIKeys[1] != "key-b" {
		t.Fatalf("gemini keys not split: %v", cfg.Summarizer.Gemini.APIKeys)
	}
	if cfg.Cache.DSN != "postgres://env" {
		t.Fatalf("dsn not applied: %s", cfg.Cache.DSN)
	}
	if cfg.Notifications.Telegram.BotToken != "bot-token" || cfg.Notifications.Telegram.ChatID != "chat-42" {
		t.Fatalf("telegram not applied: %+v", cfg.Notifications.Telegram)
	}
}
