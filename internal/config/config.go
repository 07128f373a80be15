package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ProviderGemini uses the Google Gemini API for chat, embeddings and speech.
	ProviderGemini = "gemini"
	// ProviderOpenAI uses an OpenAI-compatible HTTP server (llama.cpp, vLLM, OpenAI).
	ProviderOpenAI = "openai"

	// VectorStoreQdrant stores vectors in a Qdrant collection.
	VectorStoreQdrant = "qdrant"
	// VectorStoreMemory keeps vectors in process memory.
	VectorStoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	LLMProvider string

	GoogleAPIKey         string
	GeminiChatModel      string
	GeminiEmbeddingModel string
	GeminiTTSModel       string
	GeminiTTSVoice       string

	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	SpeechModelName    string
	SpeechVoice        string

	VectorStore      string
	QdrantURL        string
	QdrantCollection string
	VectorSize       int

	DBPath    string
	SourceDir string
	AudioDir  string

	ChunkSize       int
	ChunkOverlap    int
	RetrievalK      int
	MemoryWindow    int
	ChatTemperature float32
	ChatMaxTokens   int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// FileConfig is the optional YAML overlay pointed to by NOTEBOOK_CONFIG.
// Values set here replace the built-in defaults; environment variables still win.
type FileConfig struct {
	Chunker struct {
		Size    int `yaml:"size"`
		Overlap int `yaml:"overlap"`
	} `yaml:"chunker"`
	Retrieval struct {
		K            int `yaml:"k"`
		MemoryWindow int `yaml:"memory_window"`
	} `yaml:"retrieval"`
	Generation struct {
		Temperature *float32 `yaml:"temperature"`
		MaxTokens   int      `yaml:"max_tokens"`
	} `yaml:"generation"`
}

// defaults mirror the parameters the notebook workflow was tuned with.
type defaults struct {
	chunkSize    int
	chunkOverlap int
	k            int
	memoryWindow int
	temperature  float32
	maxTokens    int
}

func builtinDefaults() defaults {
	return defaults{
		chunkSize:    1500,
		chunkOverlap: 200,
		k:            4,
		memoryWindow: 5,
		temperature:  0.2,
		maxTokens:    2048,
	}
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	d := builtinDefaults()
	if path := os.Getenv("NOTEBOOK_CONFIG"); path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		d = fc.apply(d)
	}

	// GEMINI_API_KEY is accepted as an alias of GOOGLE_API_KEY.
	googleKey := os.Getenv("GOOGLE_API_KEY")
	if googleKey == "" {
		googleKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg := &Config{
		LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GoogleAPIKey:         googleKey,
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		GeminiTTSModel:       getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		GeminiTTSVoice:       getEnv("GEMINI_TTS_VOICE", "Kore"),
		LLMBaseURL:           getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:         getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:            getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:     getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName:   getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		SpeechModelName:      getEnv("SPEECH_MODEL", "tts-1"),
		SpeechVoice:          getEnv("SPEECH_VOICE", "alloy"),
		VectorStore:          strings.ToLower(getEnv("VECTOR_STORE", VectorStoreQdrant)),
		QdrantURL:            getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:     getEnv("QDRANT_COLLECTION", "notebooks"),
		DBPath:               getEnv("DB_PATH", "./data/notebook-ai.db"),
		SourceDir:            getEnv("SOURCE_DIR", "./data/source_documents"),
		AudioDir:             getEnv("AUDIO_DIR", "./data/audio"),
		APIPort:              getEnv("API_PORT", "9000"),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.VectorSize, err = getEnvInt("VECTOR_SIZE", 768); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", d.chunkSize); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", d.chunkOverlap); err != nil {
		return nil, err
	}
	if cfg.RetrievalK, err = getEnvInt("RETRIEVAL_K", d.k); err != nil {
		return nil, err
	}
	if cfg.MemoryWindow, err = getEnvInt("MEMORY_WINDOW", d.memoryWindow); err != nil {
		return nil, err
	}
	if cfg.ChatMaxTokens, err = getEnvInt("CHAT_MAX_TOKENS", d.maxTokens); err != nil {
		return nil, err
	}
	if cfg.ChatTemperature, err = getEnvFloat("CHAT_TEMPERATURE", d.temperature); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.SourceDir, cfg.AudioDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY (or GEMINI_API_KEY) is required when LLM_PROVIDER=gemini")
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLMProvider)
	}

	switch c.VectorStore {
	case VectorStoreQdrant, VectorStoreMemory:
	default:
		return fmt.Errorf("VECTOR_STORE must be %q or %q, got %q", VectorStoreQdrant, VectorStoreMemory, c.VectorStore)
	}

	if c.VectorSize <= 0 {
		return fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be between 0 and CHUNK_SIZE-1, got %d", c.ChunkOverlap)
	}
	if c.RetrievalK <= 0 || c.RetrievalK > 20 {
		return fmt.Errorf("RETRIEVAL_K must be between 1 and 20, got %d", c.RetrievalK)
	}
	if c.MemoryWindow < 0 {
		return fmt.Errorf("MEMORY_WINDOW must not be negative")
	}
	if c.ChatTemperature < 0 || c.ChatTemperature > 2 {
		return fmt.Errorf("CHAT_TEMPERATURE must be between 0 and 2")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// LoadFile reads the YAML overlay at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(d defaults) defaults {
	if fc.Chunker.Size > 0 {
		d.chunkSize = fc.Chunker.Size
	}
	if fc.Chunker.Overlap > 0 {
		d.chunkOverlap = fc.Chunker.Overlap
	}
	if fc.Retrieval.K > 0 {
		d.k = fc.Retrieval.K
	}
	if fc.Retrieval.MemoryWindow > 0 {
		d.memoryWindow = fc.Retrieval.MemoryWindow
	}
	if fc.Generation.Temperature != nil {
		d.temperature = *fc.Generation.Temperature
	}
	if fc.Generation.MaxTokens > 0 {
		d.maxTokens = fc.Generation.MaxTokens
	}
	return d
}

// loadDotEnv loads .env from the current directory, then the nearest parent that has one.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return float32(v), nil
}

var errInvalidLogLevel = errors.New("LOG_LEVEL must be one of debug, info, warn, error")

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: got %q", errInvalidLogLevel, s)
	}
}
