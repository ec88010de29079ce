// internal/config/config.go
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	AuthScheme string        `mapstructure:"auth_scheme"` // Authorization: <scheme> <token>
	Timeout    time.Duration `mapstructure:"timeout"`     // 0 = タイムアウトなし
	LoginPage  string        `mapstructure:"login_page"`  // 未認証時のリダイレクト先
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type FocusConfig struct {
	FocusMinutes int `mapstructure:"focus_minutes"`
	BreakMinutes int `mapstructure:"break_minutes"`
	MaxSessions  int `mapstructure:"max_sessions"`
}

type StubConfig struct {
	Port      string        `mapstructure:"port"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Focus   FocusConfig   `mapstructure:"focus"`
	Stub    StubConfig    `mapstructure:"stub"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	// .env はあれば読み込む (無くてもエラーにしない)
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %s\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP") // 例: APP_API_BASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("api.base_url", "LEMBRIS_API_URL")
	v.BindEnv("storage.path", "LEMBRIS_STORAGE")
	v.BindEnv("stub.jwt_secret", "STUB_JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	ApplyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("API Base URL: %s", Cfg.API.BaseURL)
	log.Printf("Storage Path: %s", Cfg.Storage.Path)
	return nil
}

// ApplyDefaults は未設定の項目にデフォルト値を入れます
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.AuthScheme == "" {
		cfg.API.AuthScheme = DefaultAuthScheme
	}
	if cfg.API.Timeout < 0 {
		cfg.API.Timeout = 0
	}
	if cfg.API.LoginPage == "" {
		cfg.API.LoginPage = DefaultLoginPage
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Focus.FocusMinutes <= 0 {
		cfg.Focus.FocusMinutes = DefaultFocusMinutes
	}
	if cfg.Focus.BreakMinutes <= 0 {
		cfg.Focus.BreakMinutes = DefaultBreakMinutes
	}
	if cfg.Focus.MaxSessions <= 0 {
		cfg.Focus.MaxSessions = DefaultMaxSessions
	}
	if cfg.Stub.Port == "" {
		cfg.Stub.Port = DefaultStubPort
	}
	if cfg.Stub.JWTSecret == "" {
		log.Println("Warning: stub JWT secret not set, using an insecure development secret")
		cfg.Stub.JWTSecret = "lembris-dev-secret"
	}
	if cfg.Stub.TokenTTL <= 0 {
		cfg.Stub.TokenTTL = 24 * time.Hour
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", DefaultStorageFile)
	}
	return filepath.Join(home, DefaultStorageDir, DefaultStorageFile)
}
