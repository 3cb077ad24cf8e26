package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port int `yaml:"port"`
	API  struct {
		BaseURL string `yaml:"baseURL"`
	} `yaml:"api"`
	Pricing struct {
		BaseAmount float64 `yaml:"baseAmount"`
		Currency   string  `yaml:"currency"`
	} `yaml:"pricing"`
	Cookie struct {
		Secret string `yaml:"secret"`
		Secure bool   `yaml:"secure"`
	} `yaml:"cookie"`
	TemplateDir string `yaml:"templateDir"`
	StaticDir   string `yaml:"staticDir"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, err
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Set default port if not specified
	if cfg.Port == 0 {
		cfg.Port = 8081
		log.Println("Port not specified, using default 8081")
	}

	// The API base URL honors PAYMENT_API_URL first, then the config file,
	// then the fixed default host.
	if env := os.Getenv("PAYMENT_API_URL"); env != "" {
		cfg.API.BaseURL = env
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://serverapis.vercel.app"
		log.Println("API base URL not specified, using default https://serverapis.vercel.app")
	}

	// Default pricing: the undiscounted list price is fixed per deployment.
	if cfg.Pricing.BaseAmount == 0 {
		cfg.Pricing.BaseAmount = 20.00
		log.Println("Base amount not specified, using default 20.00")
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = "usd"
		log.Println("Currency not specified, using default usd")
	}

	if cfg.Cookie.Secret == "" {
		cfg.Cookie.Secret = os.Getenv("COOKIE_SECRET")
	}
	if cfg.Cookie.Secret == "" {
		cfg.Cookie.Secret = "dev-only-cookie-secret"
		log.Println("Cookie secret not specified, using insecure development default")
	}
	if !v.IsSet("cookie.secure") {
		env := os.Getenv("PORTAL_ENV")
		cfg.Cookie.Secure = env == "prod"
		log.Printf("Cookie security not specified, defaulting to %v based on environment", cfg.Cookie.Secure)
	}

	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "templates/portal"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}

	log.Printf("Configuration loaded: port=%d api=%s base=%.2f %s", cfg.Port, cfg.API.BaseURL, cfg.Pricing.BaseAmount, cfg.Pricing.Currency)
	return &cfg, nil
}
