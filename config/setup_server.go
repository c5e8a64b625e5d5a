package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	Server         ServerConfig    `yaml:"server"`
	S3Config       S3Config        `yaml:"s3Config"`
	JWT            JWTConfig       `yaml:"jwt"`
	Password       PasswordConfig  `yaml:"password"`
	Cache          CacheConfig     `yaml:"cache"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Log            LogConfig       `yaml:"log"`
}

// LoadConfig : читает yaml файл, затем накладывает переменные окружения (и .env файлы, если они есть)
func LoadConfig(path string, envFiles ...string) (*AppConfig, error) {
	var cfg AppConfig

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// конфигурация может целиком прийти из окружения
	default:
		return nil, err
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ошибка загрузки %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *AppConfig) applyEnv() error {
	setString(&cfg.JWT.AccessTokenSecret, "ACCESS_TOKEN_SECRET")
	setString(&cfg.JWT.RefreshTokenSecret, "REFRESH_TOKEN_SECRET")
	setString(&cfg.DatabaseConfig.DSN, "DATABASE_DSN")
	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Server.CORSOrigin, "CORS_ORIGIN")
	setString(&cfg.RedisConfig.Addr, "REDIS_ADDR")
	setString(&cfg.RedisConfig.Password, "REDIS_PASSWORD")
	setString(&cfg.S3Config.Bucket, "S3_BUCKET")
	setString(&cfg.S3Config.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3Config.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	if err := setDuration(&cfg.JWT.AccessTokenTTL, "ACCESS_TOKEN_EXPIRY"); err != nil {
		return err
	}
	if err := setDuration(&cfg.JWT.RefreshTokenTTL, "REFRESH_TOKEN_EXPIRY"); err != nil {
		return err
	}
	return nil
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 100 << 20
	}
	if cfg.Password.BcryptCost == 0 {
		cfg.Password.BcryptCost = 10
	}
	if cfg.Cache.StatsTTL == 0 {
		cfg.Cache.StatsTTL = time.Minute
	}
	if cfg.S3Config.PresignTTL == 0 {
		cfg.S3Config.PresignTTL = 15 * time.Minute
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 10
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate : без секретов и времени жизни токенов сервис не стартует
func (cfg *AppConfig) Validate() error {
	var errs []error

	if cfg.JWT.AccessTokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET не задан"))
	}
	if cfg.JWT.RefreshTokenSecret == "" {
		errs = append(errs, errors.New("REFRESH_TOKEN_SECRET не задан"))
	}
	if cfg.JWT.AccessTokenSecret != "" && cfg.JWT.AccessTokenSecret == cfg.JWT.RefreshTokenSecret {
		errs = append(errs, errors.New("секреты access и refresh токенов должны различаться"))
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRY должен быть положительным"))
	}
	if cfg.JWT.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRY должен быть положительным"))
	}
	if cfg.DatabaseConfig.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN не задан"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("невалидная конфигурация: %w", errors.Join(errs...))
	}
	return nil
}

// ParseDuration : time.ParseDuration с поддержкой суток ("10d")
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("неверный формат длительности %q: %w", value, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}

func setDuration(target *time.Duration, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	duration, err := ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = duration
	return nil
}

func SetupServer(cfg *ServerConfig) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, router
}

func SetupDatabase(cfg *DatabaseConfig) (*Database, error) {
	return NewDatabaseConnection("postgres", cfg)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}

// SetupLogger : создает zap логгер и делает его глобальным
func SetupLogger(cfg *LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("неверный уровень логирования %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
