package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries every environment knob the site consumes. Parsed once in main.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	Production bool   `env:"PRODUCTION" envDefault:"false"`

	// Coze identity provider (chat widget OAuth)
	CozeClientID     string `env:"COZE_CLIENT_ID"`
	CozeClientSecret string `env:"COZE_CLIENT_SECRET"`
	CozeRedirectURI  string `env:"COZE_REDIRECT_URI"`
	CozeAuthURL      string `env:"COZE_AUTH_URL" envDefault:"https://api.coze.cn/api/permission/oauth2/authorize"`
	CozeTokenURL     string `env:"COZE_TOKEN_URL" envDefault:"https://api.coze.cn/api/permission/oauth2/token"`
	CozeUserInfoURL  string `env:"COZE_USERINFO_URL" envDefault:"https://api.coze.cn/oauth2/userinfo"`
	CozeAPIBase      string `env:"COZE_API_BASE" envDefault:"https://api.coze.cn"`
	CozeBotID        string `env:"COZE_BOT_ID"`
	PublicCozeBotID  string `env:"PUBLIC_COZE_BOT_ID"`

	// Xiaoe content-commerce platform
	XiaoeAppID     string `env:"XIAOE_APP_ID"`
	XiaoeClientID  string `env:"XIAOE_CLIENT_ID"`
	XiaoeSecretKey string `env:"XIAOE_SECRET_KEY"`
	XiaoeAPIBase   string `env:"XIAOE_API_BASE" envDefault:"https://api.xiaoe-tech.com"`

	// Stripe checkout
	StripeAPIKey string `env:"STRIPE_API_KEY"`

	// Site session gate
	SessionSecret string `env:"SESSION_SECRET"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,https://www.lulabs.org"`
}

func Parse() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing environment: %s", err)
	}
	return cfg, nil
}
