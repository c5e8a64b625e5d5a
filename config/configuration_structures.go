package config

import "time"

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	CORSOrigin      string        `yaml:"cors_origin"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
}

type DatabaseConfig struct {
	DSN            string `yaml:"dsn"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket     string        `yaml:"bucket"`
	Region     string        `yaml:"region"`
	Endpoint   string        `yaml:"endpoint"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key"`
	PublicURL  string        `yaml:"public_url"`
	PresignTTL time.Duration `yaml:"presign_ttl"`
	Local      bool          `yaml:"local"`
}

// JWTConfig : секреты и время жизни access/refresh токенов, секреты обязаны различаться
type JWTConfig struct {
	AccessTokenSecret  string        `yaml:"access_token_secret"`
	AccessTokenTTL     time.Duration `yaml:"access_token_ttl"`
	RefreshTokenSecret string        `yaml:"refresh_token_secret"`
	RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl"`
	Issuer             string        `yaml:"issuer"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
	Workers    int `yaml:"workers"`
}

type CacheConfig struct {
	StatsTTL time.Duration `yaml:"stats_ttl"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}
