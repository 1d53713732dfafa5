package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Debug     bool          `yaml:"debug" env:"DEBUG"`
	AppSecret string        `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"60m"`
	Limiter   Limiter       `yaml:"limiter"`
	Server    Server        `yaml:"server"`
	Storage   Storage       `yaml:"storage"`
	DB        DB            `yaml:"db"`
	Hasher    Hasher        `yaml:"hasher"`
	SMTP      SMTP          `yaml:"smtp"`
	Tasks     Tasks         `yaml:"tasks"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED"`
	Rps     float64 `yaml:"rps" env:"LIMITER_RPS" env-default:"20"`
	Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT" env-default:"3000"`
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env-default:"5s"`
}

type Hasher struct {
	Memory      uint32 `yaml:"memory" env-default:"65536"`
	Iterations  uint32 `yaml:"iterations" env-default:"1"`
	Parallelism uint8  `yaml:"parallelism" env-default:"2"`
}

type SMTP struct {
	Enabled      bool          `yaml:"enabled" env:"SMTP_ENABLED"`
	Host         string        `yaml:"host" env:"SMTP_HOST"`
	Port         int           `yaml:"port" env:"SMTP_PORT" env-default:"25"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env:"SMTP_SENDER" env-default:"Movies Api <no-reply@movies.local>"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	RetriesCount int           `yaml:"retries_count" env-default:"3"`
}

type Tasks struct {
	Workers   int `yaml:"workers" env-default:"3"`
	QueueSize int `yaml:"queue_size" env-default:"100"`
}

// Validate checks cross-field requirements cleanenv tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.DB.Dsn == "" {
			return fmt.Errorf("db.dsn is required for the %q storage driver", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.SMTP.Enabled && c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required when smtp is enabled")
	}
	return nil
}

// Load reads configPath, then lets environment variables (and a .env file, if any) override it.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}
