package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Market struct {
	APIURL          string
	APIKey          string
	Symbols         []string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
}

type Config struct {
	ServerPort           int
	DatabaseURL          string
	SQLitePath           string
	SecretKey            string
	EnableScheduler      bool
	UploadDir            string
	MaxUploadSize        int64
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	LogLevel             string
	Market               Market
	MinIO                MinIO
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 16 * 1024 * 1024
	}
	return size
}

func parseSymbols(value string) []string {
	var symbols []string
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

func LoadMarket() Market {
	return Market{
		APIURL:          getEnv("MARKET_API_URL", "https://www.alphavantage.co/query"),
		APIKey:          getEnv("MARKET_API_KEY", "demo"),
		Symbols:         parseSymbols(getEnv("MARKET_SYMBOLS", "DJI,SPX,IXIC,AAPL,MSFT")),
		RefreshInterval: parseDuration(getEnv("MARKET_REFRESH_INTERVAL", "5m"), 5*time.Minute),
		FetchTimeout:    parseDuration(getEnv("MARKET_FETCH_TIMEOUT", "10s"), 10*time.Second),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", "app.db"),
		SecretKey:            getEnv("SECRET_KEY", ""),
		EnableScheduler:      getEnvBool("ENABLE_SCHEDULER", false),
		UploadDir:            getEnv("UPLOAD_DIR", "static/uploads"),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "16777216")),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Market:               LoadMarket(),
		MinIO:                LoadMinIO(),
	}
}

// DriverName выбирает бэкенд БД: postgres если задан DATABASE_URL, иначе локальный SQLite
func (c *Config) DriverName() string {
	if c.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite"
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.SQLitePath
}

func (c *Config) UseMinIO() bool {
	return c.MinIO.Endpoint != ""
}
