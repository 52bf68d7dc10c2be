package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTSecret      []byte
	AccessTokenTTL time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	// Resource-service settings. The identity service ignores these.
	AuthServiceURL        string
	ProtectedPaths        []string
	UseRemoteVerification bool
	VerifyTimeout         time.Duration
}

// Load reads configuration from the environment (and a .env file when
// present) into an explicit Config. The result is passed into component
// constructors; nothing reads the environment after startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:               getEnv("API_PORT", "8000"),
		JWTSecret:             []byte(getEnv("SECRET_KEY", "your-secret-key-here-change-in-production")),
		AccessTokenTTL:        time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "user"),
		DBPassword:            getEnv("DB_PASSWORD", "password"),
		DBName:                getEnv("DB_NAME", "auth_db"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		AuthServiceURL:        getEnv("AUTH_SERVICE_URL", "http://auth-service:8001"),
		ProtectedPaths:        splitPaths(getEnv("PROTECTED_PATHS", "/products,/api/auth")),
		UseRemoteVerification: getEnvAsBool("USE_REMOTE_VALIDATION", false),
		VerifyTimeout:         time.Duration(getEnvAsInt("VERIFY_TIMEOUT_SECONDS", 5)) * time.Second,
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitPaths(value string) []string {
	var paths []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
