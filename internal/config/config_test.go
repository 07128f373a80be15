package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"LLM_PROVIDER", "GOOGLE_API_KEY", "GEMINI_API_KEY",
	"GEMINI_CHAT_MODEL", "GEMINI_EMBEDDING_MODEL", "GEMINI_TTS_MODEL", "GEMINI_TTS_VOICE",
	"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "SPEECH_MODEL", "SPEECH_VOICE",
	"VECTOR_STORE", "QDRANT_URL", "QDRANT_COLLECTION", "VECTOR_SIZE",
	"DB_PATH", "SOURCE_DIR", "AUDIO_DIR",
	"CHUNK_SIZE", "CHUNK_OVERLAP", "RETRIEVAL_K", "MEMORY_WINDOW",
	"CHAT_TEMPERATURE", "CHAT_MAX_TOKENS",
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT", "NOTEBOOK_CONFIG",
}

// isolateEnv clears every variable Load reads and restores them when the test ends.
func isolateEnv(t *testing.T) {
	t.Helper()
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	t.Cleanup(func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

// setDataDirs points every on-disk location at a temp dir.
func setDataDirs(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	setEnv("DB_PATH", filepath.Join(dir, "db", "test.db"))
	setEnv("SOURCE_DIR", filepath.Join(dir, "sources"))
	setEnv("AUDIO_DIR", filepath.Join(dir, "audio"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "gemini defaults",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMProvider == ProviderGemini &&
					cfg.GoogleAPIKey == "key" &&
					cfg.GeminiChatModel == "gemini-2.5-flash" &&
					cfg.GeminiEmbeddingModel == "text-embedding-004" &&
					cfg.ChunkSize == 1500 &&
					cfg.ChunkOverlap == 200 &&
					cfg.RetrievalK == 4 &&
					cfg.MemoryWindow == 5 &&
					cfg.ChatTemperature == 0.2 &&
					cfg.ChatMaxTokens == 2048 &&
					cfg.VectorSize == 768 &&
					cfg.VectorStore == VectorStoreQdrant &&
					cfg.LogLevel == slog.LevelInfo
			},
		},
		{
			name: "GEMINI_API_KEY alias",
			setupEnv: func(t *testing.T) {
				setEnv("GEMINI_API_KEY", "alias-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.GoogleAPIKey == "alias-key"
			},
		},
		{
			name:     "gemini without api key",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "openai provider needs no google key",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_PROVIDER", "openai")
				setEnv("LLM_BASE_URL", "http://llm:8080")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMProvider == ProviderOpenAI && cfg.LLMBaseURL == "http://llm:8080"
			},
		},
		{
			name: "unknown provider",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_PROVIDER", "anthropic")
			},
			wantErr: true,
		},
		{
			name: "invalid VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "overlap not smaller than chunk size",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("CHUNK_SIZE", "200")
				setEnv("CHUNK_OVERLAP", "200")
			},
			wantErr: true,
		},
		{
			name: "k above maximum",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("RETRIEVAL_K", "21")
			},
			wantErr: true,
		},
		{
			name: "unknown vector store",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("VECTOR_STORE", "faiss")
			},
			wantErr: true,
		},
		{
			name: "invalid temperature",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("CHAT_TEMPERATURE", "hot")
			},
			wantErr: true,
		},
		{
			name: "debug json logging",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "json")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug && cfg.LogFormat == "json"
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("GOOGLE_API_KEY", "key")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			setDataDirs(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectories(t *testing.T) {
	isolateEnv(t)
	setDataDirs(t)
	setEnv("GOOGLE_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.SourceDir, cfg.AudioDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Load() should create %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestLoad_FileOverlay(t *testing.T) {
	isolateEnv(t)
	setDataDirs(t)
	setEnv("GOOGLE_API_KEY", "key")

	path := filepath.Join(t.TempDir(), "notebook.yaml")
	content := []byte(`chunker:
  size: 1000
  overlap: 100
retrieval:
  k: 6
  memory_window: 3
generation:
  temperature: 0
  max_tokens: 512
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	setEnv("NOTEBOOK_CONFIG", path)
	// Environment wins over the file.
	setEnv("RETRIEVAL_K", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 100 {
		t.Errorf("chunker = %d/%d, want 1000/100", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.RetrievalK != 8 {
		t.Errorf("RetrievalK = %d, want 8", cfg.RetrievalK)
	}
	if cfg.MemoryWindow != 3 {
		t.Errorf("MemoryWindow = %d, want 3", cfg.MemoryWindow)
	}
	if cfg.ChatTemperature != 0 {
		t.Errorf("ChatTemperature = %v, want 0", cfg.ChatTemperature)
	}
	if cfg.ChatMaxTokens != 512 {
		t.Errorf("ChatMaxTokens = %d, want 512", cfg.ChatMaxTokens)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolateEnv(t)
	setDataDirs(t)
	setEnv("GOOGLE_API_KEY", "key")
	setEnv("NOTEBOOK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() with a missing NOTEBOOK_CONFIG file should return error")
	}
}

func TestGetEnv(t *testing.T) {
	key := "TEST_NOTEBOOK_ENV_VAR"
	defer unsetEnv(key)

	if got := getEnv(key, "default"); got != "default" {
		t.Errorf("getEnv() = %v, want default", got)
	}
	setEnv(key, "value")
	if got := getEnv(key, "default"); got != "value" {
		t.Errorf("getEnv() = %v, want value", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
