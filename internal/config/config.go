package config

import (
	"os"
	"strconv"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Database struct {
		URL      string `yaml:"url"`
		MaxConns int32  `yaml:"max_conns"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
	} `yaml:"auth"`
	AI struct {
		Provider   string        `yaml:"provider"` // gemini | service
		Model      string        `yaml:"model"`
		APIKey     string        `yaml:"api_key"`
		ServiceURL string        `yaml:"service_url"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"ai"`
	Export struct {
		Page          string        `yaml:"page"`
		MarginMM      float64       `yaml:"margin_mm"`
		Scale         float64       `yaml:"scale"`
		FileName      string        `yaml:"file_name"`
		ChromePath    string        `yaml:"chrome_path"`
		RenderTimeout time.Duration `yaml:"render_timeout"`
		SettleTimeout time.Duration `yaml:"settle_timeout"`
	} `yaml:"export"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var c Config
	c.Server.Port = "3000"
	c.Server.ReadTimeout = 30 * time.Second
	c.Server.WriteTimeout = 2 * time.Minute
	c.Database.MaxConns = 10
	c.Auth.Issuer = "jobforge"
	c.AI.Provider = "gemini"
	c.AI.Model = "gemini-1.5-flash"
	c.AI.Timeout = 60 * time.Second
	c.Export.Page = "a4"
	c.Export.MarginMM = 10
	c.Export.Scale = 2
	c.Export.FileName = "resume.pdf"
	c.Export.RenderTimeout = 60 * time.Second
	c.Export.SettleTimeout = 10 * time.Second
	c.Log.Level = "info"
	return &c
}

// Load reads .env (if present), then the YAML file at path (if path is not
// empty), then environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT", "JOBFORGE_PORT")
	setString(&c.Database.URL, "DATABASE_URL", "JOBFORGE_DATABASE_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET", "JOBFORGE_JWT_SECRET")
	setString(&c.Auth.Issuer, "JOBFORGE_JWT_ISSUER")
	setString(&c.AI.Provider, "JOBFORGE_AI_PROVIDER")
	setString(&c.AI.Model, "JOBFORGE_AI_MODEL")
	setString(&c.AI.APIKey, "GEMINI_API_KEY", "JOBFORGE_AI_API_KEY")
	setString(&c.AI.ServiceURL, "AI_SERVICE_URL", "JOBFORGE_AI_SERVICE_URL")
	setString(&c.Export.Page, "JOBFORGE_PAGE")
	setString(&c.Export.FileName, "JOBFORGE_EXPORT_FILE")
	setString(&c.Export.ChromePath, "CHROME_PATH", "JOBFORGE_CHROME_PATH")
	setString(&c.Log.Level, "LOG_LEVEL", "JOBFORGE_LOG_LEVEL")
	setString(&c.Log.File, "JOBFORGE_LOG_FILE")
	if v := os.Getenv("JOBFORGE_MARGIN_MM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Export.MarginMM = f
		}
	}
	if v := os.Getenv("JOBFORGE_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Export.Scale = f
		}
	}
}

// setString assigns the first non-empty variable among keys; later keys win.
func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
}

func (c *Config) Validate() error {
	if _, ok := domain.PageFormatByName(c.Export.Page); !ok {
		return errors.Errorf("unknown page format %q", c.Export.Page)
	}
	if c.Export.MarginMM < 0 {
		return errors.New("export margin must not be negative")
	}
	if c.Export.Scale <= 0 {
		return errors.New("export scale must be positive")
	}
	switch c.AI.Provider {
	case "gemini", "service":
	default:
		return errors.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	return nil
}

// PageFormat resolves the configured page format with its margin.
func (c *Config) PageFormat() domain.PageFormat {
	f, _ := domain.PageFormatByName(c.Export.Page)
	return f.WithMargin(c.Export.MarginMM)
}
