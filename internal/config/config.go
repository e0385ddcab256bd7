package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env  string
	Port string

	// DatabaseURL selects the GORM-backed portfolio store; empty means the
	// portfolio lives in a JSON file at PortfolioFile instead.
	DatabaseURL   string
	PortfolioFile string
	PortfolioSlot string

	// RedisURL enables the search cache and health stats; empty disables both.
	RedisURL string

	// AlphaVantageAPIKey enables live stock quotes/search; empty means stock
	// lookups go straight to the fallback table.
	AlphaVantageAPIKey string

	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	portfolioFile := viper.GetString("PORTFOLIO_FILE")
	if portfolioFile == "" {
		portfolioFile = "portfolio.json"
	}
	slot := viper.GetString("PORTFOLIO_SLOT")
	if slot == "" {
		slot = "default"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		PortfolioFile:       portfolioFile,
		PortfolioSlot:       slot,
		RedisURL:            viper.GetString("REDIS_URL"),
		AlphaVantageAPIKey:  viper.GetString("ALPHA_VANTAGE_API_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
