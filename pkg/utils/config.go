package utils

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ticket   TicketConfig
	Payment  PaymentConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	PublicBaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type TicketConfig struct {
	UnitPrice   decimal.Decimal
	MaxQuantity int
	// Blocks marking a pending ticket as used when true. The legacy
	// policy allows it (admin override), so this ships disabled.
	RequireConfirmedBeforeUse bool
}

type PaymentConfig struct {
	PixKey         string
	MerchantName   string
	MerchantCity   string
	WhatsAppNumber string
}

type AdminConfig struct {
	Email            string
	Password         string
	SessionExpiryHrs int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("TICKET_UNIT_PRICE", "30")
	viper.SetDefault("TICKET_MAX_QUANTITY", 6)
	viper.SetDefault("REQUIRE_CONFIRMED_BEFORE_USE", false)
	viper.SetDefault("PIX_MERCHANT_NAME", "EVENT TICKETS")
	viper.SetDefault("PIX_MERCHANT_CITY", "TERESINA")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, environment variables can carry everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	unitPrice, err := decimal.NewFromString(viper.GetString("TICKET_UNIT_PRICE"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Ticket: TicketConfig{
			UnitPrice:                 unitPrice,
			MaxQuantity:               viper.GetInt("TICKET_MAX_QUANTITY"),
			RequireConfirmedBeforeUse: viper.GetBool("REQUIRE_CONFIRMED_BEFORE_USE"),
		},
		Payment: PaymentConfig{
			PixKey:         viper.GetString("PIX_KEY"),
			MerchantName:   viper.GetString("PIX_MERCHANT_NAME"),
			MerchantCity:   viper.GetString("PIX_MERCHANT_CITY"),
			WhatsAppNumber: viper.GetString("WHATSAPP_NUMBER"),
		},
		Admin: AdminConfig{
			Email:            viper.GetString("ADMIN_EMAIL"),
			Password:         viper.GetString("ADMIN_PASSWORD"),
			SessionExpiryHrs: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}
