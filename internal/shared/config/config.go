package config

import (
	"os"
	"strconv"
	"time"

	ctopics "github.com/radieske/analysis-relay/pkg/contracts/topics"
)

// Config centraliza as variáveis de ambiente do relay
// É carregada uma única vez no main e repassada por valor aos componentes
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string
	LogLevel    string // vazio usa o padrão do Env

	// Portas do serviço
	HTTPPort    string // API pública (webhook, historial, ...)
	MetricsPort string // /metrics e /healthz; vazio desativa

	// Bot do Telegram
	TelegramToken  string
	TelegramChatID string
	TelegramAPIURL string

	// Provedor de odds (opcional)
	OddsAPIKey   string
	OddsAPIURL   string
	OddsRegions  string
	OddsMaxGames int
	OddsCacheTTL time.Duration

	// Histórico em arquivo
	HistoryPath string
	HistoryMax  int

	// Infra opcional; vazio desativa
	RedisAddr           string
	KafkaBrokers        string // "a:9092,b:9092"
	TopicAnalysisPosted string

	// Confiança mínima informada pelo fluxo de análise (apenas exibida)
	MinConfidence float64
}

// TelegramConfigured indica se as credenciais do bot estão presentes
func (c Config) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

// OddsConfigured indica se a chave do provedor de odds está presente
func (c Config) OddsConfigured() bool {
	return c.OddsAPIKey != ""
}

// Load carrega variáveis de ambiente e define defaults
func Load() Config {
	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "analysis-relay"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		HTTPPort:    getEnv("PORT", "5000"),
		MetricsPort: getEnv("METRICS_PORT", ""),

		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		// FOOTBALL_API_KEY é o nome usado pelas primeiras versões do deploy
		OddsAPIKey:   getEnv("ODDS_API_KEY", getEnv("FOOTBALL_API_KEY", "")),
		OddsAPIURL:   getEnv("ODDS_API_URL", "https://api.the-odds-api.com/v4"),
		OddsRegions:  getEnv("ODDS_REGIONS", "us"),
		OddsMaxGames: getEnvInt("ODDS_MAX_GAMES", 5),
		OddsCacheTTL: getEnvDuration("ODDS_CACHE_TTL", 60*time.Second),

		HistoryPath: getEnv("HISTORY_PATH", "/tmp/analysis_history.json"),
		HistoryMax:  getEnvInt("HISTORY_MAX", 100),

		RedisAddr:           getEnv("REDIS_ADDR", ""),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", ""),
		TopicAnalysisPosted: getEnv("KAFKA_TOPIC_ANALYSIS", ctopics.AnalysisReceived),

		MinConfidence: getEnvFloat("MIN_CONFIDENCE", 0.60),
	}
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getEnvDuration aceita "90s", "2m" ou segundos inteiros
func getEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
