package util

import (
	"fmt"
	"time"
	
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	HTTPServerAddress   string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	TokenSecretKey      string        `mapstructure:"TOKEN_SECRET_KEY"`
	RedisServerAddress  string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	CloudinaryURL       string        `mapstructure:"CLOUDINARY_URL"`
	SMTPHost            string        `mapstructure:"SMTP_HOST"`
	SMTPPort            int           `mapstructure:"SMTP_PORT"`
	SMTPUsername        string        `mapstructure:"SMTP_USERNAME"`
	SMTPPassword        string        `mapstructure:"SMTP_PASSWORD"`
	SenderName          string        `mapstructure:"SENDER_NAME"`
	SenderEmail         string        `mapstructure:"SENDER_EMAIL"`
	SiteURL             string        `mapstructure:"SITE_URL"`
	SitePassword        string        `mapstructure:"SITE_PASSWORD"`
	AdminPassword       string        `mapstructure:"ADMIN_PASSWORD"`
	SellerWhatsAppPhone string        `mapstructure:"SELLER_WHATSAPP_PHONE"`
	DiscordBotToken     string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID    string        `mapstructure:"DISCORD_CHANNEL_ID"`
	ImageProxyReferer   string        `mapstructure:"IMAGE_PROXY_REFERER"`
	ImageCacheTTL       time.Duration `mapstructure:"IMAGE_CACHE_TTL"`
	CartTTL             time.Duration `mapstructure:"CART_TTL"`
	DigestHour          uint          `mapstructure:"DIGEST_HOUR"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SENDER_NAME", "JStore")
	viper.SetDefault("SITE_URL", "http://localhost:3000")
	viper.SetDefault("IMAGE_PROXY_REFERER", "https://minkang.x.yupoo.com/")
	viper.SetDefault("IMAGE_CACHE_TTL", "24h")
	viper.SetDefault("CART_TTL", "720h")
	viper.SetDefault("DIGEST_HOUR", 20)
	
	// Prefer environment variables over config file
	viper.AutomaticEnv()
	
	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}
	
	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}
	
	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if len(config.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS is required")
	}
	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if config.DigestHour > 23 {
		return fmt.Errorf("DIGEST_HOUR must be between 0 and 23")
	}
	
	return nil
}
