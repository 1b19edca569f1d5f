package config

import (
	"fmt"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	PostsPerPage     int           `yaml:"posts_per_page"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	PostTextMaxLen   int           `yaml:"post_text_max_len"`
	GroupTitleMaxLen int           `yaml:"group_title_max_len"`
	GroupSlugMaxLen  int           `yaml:"group_slug_max_len"`
	UsernameMaxLen   int           `yaml:"username_max_len"`
	PasswordMinLen   int           `yaml:"password_min_len"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	Server           Server        `yaml:"server"`
}

type Server struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Private values may be overridden by YATUBE_* environment variables.
type Private struct {
	JwtKey   string   `yaml:"jwt_key" env:"YATUBE_JWT_KEY"`
	Database Database `yaml:"database"`
}

type Database struct {
	Driver string `yaml:"driver" env:"YATUBE_DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"YATUBE_DB_DSN"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	if err := env.Parse(&private); err != nil {
		panic("can't parse environment: " + err.Error())
	}

	cfg := &Config{Public: public, Private: private}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyDefaults() {
	p := &c.Public
	if p.PostsPerPage == 0 {
		p.PostsPerPage = 10
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.PostTextMaxLen == 0 {
		p.PostTextMaxLen = 10000
	}
	if p.GroupTitleMaxLen == 0 {
		p.GroupTitleMaxLen = 200
	}
	if p.GroupSlugMaxLen == 0 {
		p.GroupSlugMaxLen = 50
	}
	if p.UsernameMaxLen == 0 {
		p.UsernameMaxLen = 150
	}
	if p.PasswordMinLen == 0 {
		p.PasswordMinLen = 8
	}
	if p.Server.Port == 0 {
		p.Server.Port = 8080
	}
	if p.Server.ReadTimeout == 0 {
		p.Server.ReadTimeout = 15 * time.Second
	}
	if p.Server.WriteTimeout == 0 {
		p.Server.WriteTimeout = 15 * time.Second
	}
	if c.Private.Database.Driver == "" {
		c.Private.Database.Driver = "sqlite3"
	}
}

func (c *Config) Validate() error {
	if c.Public.JwtTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}
	if c.Public.PostsPerPage < 1 {
		return fmt.Errorf("posts_per_page must be at least 1")
	}
	if c.Private.JwtKey == "" {
		return fmt.Errorf("jwt_key is required")
	}
	switch c.Private.Database.Driver {
	case "postgres", "sqlite3":
		if c.Private.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %s", c.Private.Database.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Private.Database.Driver)
	}
	return nil
}
