package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string   `env:"BOT_TOKEN,required"`
		AdminIDs []string `env:"ADMIN_IDS" envSeparator:","`
	}

	// Amazon product search (RapidAPI-style gateway) and affiliate tagging.
	Amazon struct {
		SearchBaseURL string `env:"AMAZON_SEARCH_BASE_URL" envDefault:"https://real-time-amazon-data.p.rapidapi.com"`
		SearchAPIKey  string `env:"AMAZON_SEARCH_API_KEY"`
		Marketplace   string `env:"AMAZON_MARKETPLACE" envDefault:"US"`
		AssociateTag  string `env:"AMAZON_ASSOCIATE_TAG,required"`
	}

	// Per-platform publishing credentials. A platform with empty credentials
	// is treated as not configured and skipped, never as an error.
	Publishers struct {
		TwitterBaseURL     string `env:"TWITTER_BASE_URL" envDefault:"https://api.twitter.com"`
		TwitterBearerToken string `env:"TWITTER_BEARER_TOKEN"`

		PinterestBaseURL string `env:"PINTEREST_BASE_URL" envDefault:"https://api.pinterest.com"`
		PinterestToken   string `env:"PINTEREST_ACCESS_TOKEN"`
		PinterestBoardID string `env:"PINTEREST_BOARD_ID"`

		FacebookBaseURL string `env:"FACEBOOK_BASE_URL" envDefault:"https://graph.facebook.com/v19.0"`
		FacebookPageID  string `env:"FACEBOOK_PAGE_ID"`
		FacebookToken   string `env:"FACEBOOK_PAGE_TOKEN"`
	}

	// Affiliate earnings providers.
	Earnings struct {
		AssociatesBaseURL string `env:"ASSOCIATES_REPORT_BASE_URL" envDefault:"https://assoc-datafeed.amazon.com"`
		AssociatesAPIKey  string `env:"ASSOCIATES_API_KEY"`

		CJBaseURL   string `env:"CJ_BASE_URL" envDefault:"https://commissions.api.cj.com"`
		CJToken     string `env:"CJ_API_TOKEN"`
		CJCompanyID string `env:"CJ_COMPANY_ID"`
	}

	// Withdrawal payout processors.
	Payouts struct {
		PayPalBaseURL  string `env:"PAYPAL_BASE_URL" envDefault:"https://api-m.paypal.com"`
		PayPalClientID string `env:"PAYPAL_CLIENT_ID"`
		PayPalSecret   string `env:"PAYPAL_SECRET"`

		TonSeed      string `env:"TON_WALLET_SEED"`
		TonConfigURL string `env:"TON_CONFIG_URL" envDefault:"https://ton.org/global.config.json"`
	}

	// Bot cycle timings. Delays exist to respect external rate limits;
	// tests override them to near zero.
	Bot struct {
		CyclePeriod      time.Duration `env:"BOT_CYCLE_PERIOD" envDefault:"60s"`
		ProductDelay     time.Duration `env:"BOT_PRODUCT_DELAY" envDefault:"2s"`
		KeywordDelay     time.Duration `env:"BOT_KEYWORD_DELAY" envDefault:"5s"`
		ProductsPerCycle int           `env:"BOT_PRODUCTS_PER_CYCLE" envDefault:"5"`
		DefaultKeywords  []string      `env:"BOT_DEFAULT_KEYWORDS" envSeparator:"," envDefault:"wireless earbuds,phone accessories,home gadgets"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional; in production the environment is set directly
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
