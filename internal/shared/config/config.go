package config

import (
	"fmt"
	"strconv"
	"time"

	"starmap/internal/shared/utils"

	"github.com/joho/godotenv"
)

const (
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
	StorageBackendRedis    = "redis"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Galaxy     GalaxyConfig
	Generation GenerationConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	Backend     string
	DefaultPath string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL       string
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type GalaxyConfig struct {
	SystemCount          int
	ConnectionsPerSystem int
	Jitter               float64
	Radius               float64
}

type GenerationConfig struct {
	// Seed of zero picks a fresh seed per process
	Seed           uint64
	AttemptTimeout time.Duration
	MaxAttempts    int
	MaxDraws       int
	MinPlanets     int
	MaxPlanets     int
	EagerScan      bool
}

type SimulationConfig struct {
	TickInterval time.Duration
	Drift        bool
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment without validating it
func Load() (*Config, error) {
	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:     loadServerConfig(),
		Storage:    loadStorageConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Galaxy:     loadGalaxyConfig(),
		Generation: generation,
		Simulation: loadSimulationConfig(),
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:     utils.GetEnv("STORAGE_BACKEND", StorageBackendFile),
		DefaultPath: utils.GetEnv("STORAGE_DEFAULT_PATH", "default.rim"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starmap"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:       utils.GetEnv("REDIS_URL", ""),
		Host:      utils.GetEnv("REDIS_HOST", "localhost"),
		Port:      utils.GetEnv("REDIS_PORT", "6379"),
		Password:  utils.GetEnv("REDIS_PASSWORD", ""),
		DB:        utils.GetEnvInt("REDIS_DB", 0),
		KeyPrefix: utils.GetEnv("REDIS_KEY_PREFIX", "starmap:galaxy:"),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		CookieSecure:    utils.GetEnvBool("COOKIE_SECURE", utils.GetEnv("ENVIRONMENT", "development") == "production"),
		CookieSameSite:  utils.GetEnv("COOKIE_SAMESITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	format := utils.GetEnv("LOG_FORMAT", "text")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "info"),
		Format:     format,
		JSONFormat: environment == "production" || format == "json",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 30),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 60),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadGalaxyConfig() GalaxyConfig {
	return GalaxyConfig{
		SystemCount:          utils.GetEnvInt("GALAXY_SYSTEM_COUNT", 200),
		ConnectionsPerSystem: utils.GetEnvInt("GALAXY_CONNECTIONS_PER_SYSTEM", 15),
		Jitter:               utils.GetEnvFloat("GALAXY_JITTER", 250),
		Radius:               utils.GetEnvFloat("GALAXY_RADIUS", 50),
	}
}

func loadGenerationConfig() (GenerationConfig, error) {
	seed, err := strconv.ParseUint(utils.GetEnv("GENERATION_SEED", "0"), 10, 64)
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_SEED must be an unsigned integer: %w", err)
	}

	return GenerationConfig{
		Seed:           seed,
		AttemptTimeout: utils.GetEnvDuration("GENERATION_ATTEMPT_TIMEOUT", 50*time.Millisecond),
		MaxAttempts:    utils.GetEnvInt("GENERATION_MAX_ATTEMPTS", 64),
		MaxDraws:       utils.GetEnvInt("GENERATION_MAX_DRAWS", 10000),
		MinPlanets:     utils.GetEnvInt("GENERATION_MIN_PLANETS", 0),
		MaxPlanets:     utils.GetEnvInt("GENERATION_MAX_PLANETS", 10),
		EagerScan:      utils.GetEnvBool("GENERATION_EAGER_SCAN", true),
	}, nil
}

func loadSimulationConfig() SimulationConfig {
	return SimulationConfig{
		TickInterval: utils.GetEnvDuration("SIMULATION_TICK_INTERVAL", time.Second/60),
		Drift:        utils.GetEnvBool("SIMULATION_DRIFT", true),
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Storage.Backend {
	case StorageBackendFile, StorageBackendPostgres, StorageBackendRedis:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of file, postgres, redis; got %q", c.Storage.Backend)
	}

	if c.Storage.Backend == StorageBackendPostgres && c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Galaxy.SystemCount < 0 {
		return fmt.Errorf("GALAXY_SYSTEM_COUNT must not be negative")
	}

	if c.Galaxy.ConnectionsPerSystem < 0 {
		return fmt.Errorf("GALAXY_CONNECTIONS_PER_SYSTEM must not be negative")
	}

	if c.Galaxy.Radius <= 0 {
		return fmt.Errorf("GALAXY_RADIUS must be positive")
	}

	if c.Galaxy.Jitter < 0 {
		return fmt.Errorf("GALAXY_JITTER must not be negative")
	}

	if c.Generation.MinPlanets < 0 || c.Generation.MaxPlanets < c.Generation.MinPlanets {
		return fmt.Errorf("GENERATION_MIN_PLANETS and GENERATION_MAX_PLANETS must form a valid range")
	}

	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("SIMULATION_TICK_INTERVAL must be positive")
	}

	return nil
}

// AuthConfigured reports whether protected endpoints can verify tokens
func (c *Config) AuthConfigured() bool {
	return c.Auth.JWTSecret != ""
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
