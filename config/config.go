package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	// MongoDB configuration.
	MongoURI string `mapstructure:"MONGODB_URI"`
	MongoDB  string `mapstructure:"MONGODB_DB"`

	// Admin panel.
	AdminSessionSecret string `mapstructure:"ADMIN_SESSION_SECRET"`
	AdminEmail         string `mapstructure:"ADMIN_EMAIL"`
	AdminEmailsRaw     string `mapstructure:"ADMIN_EMAILS"`
	AdminPassword      string `mapstructure:"ADMIN_PASSWORD"`

	// Outbound email. EmailProvider is one of smtp, brevo, sendgrid, ses.
	EmailProvider string `mapstructure:"EMAIL_PROVIDER"`

	BrevoAPIKey    string `mapstructure:"BREVO_API_KEY"`
	BrevoFromEmail string `mapstructure:"BREVO_FROM_EMAIL"`
	BrevoFromName  string `mapstructure:"BREVO_FROM_NAME"`

	SendGridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `mapstructure:"SENDGRID_FROM_NAME"`

	SESRegion    string `mapstructure:"SES_REGION"`
	SESFromEmail string `mapstructure:"SES_FROM_EMAIL"`
	SESFromName  string `mapstructure:"SES_FROM_NAME"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values. Keys without a default must still be registered so that
	// AutomaticEnv picks them up during Unmarshal.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ORIGINS", "")
	viper.SetDefault("MONGODB_URI", "")
	viper.SetDefault("MONGODB_DB", "yusuf_nailart")
	viper.SetDefault("ADMIN_SESSION_SECRET", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_EMAILS", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("EMAIL_PROVIDER", "smtp")
	viper.SetDefault("BREVO_API_KEY", "")
	viper.SetDefault("BREVO_FROM_EMAIL", "")
	viper.SetDefault("BREVO_FROM_NAME", "Yusuf Nail Art")
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("SENDGRID_FROM_EMAIL", "")
	viper.SetDefault("SENDGRID_FROM_NAME", "Yusuf Nail Art")
	viper.SetDefault("SES_REGION", "eu-central-1")
	viper.SetDefault("SES_FROM_EMAIL", "")
	viper.SetDefault("SES_FROM_NAME", "Yusuf Nail Art")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_FROM", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AdminEmails returns the admin addresses, preferring the ADMIN_EMAILS list over
// the single ADMIN_EMAIL value. Entries are trimmed; empty entries are dropped.
func (c Config) AdminEmails() []string {
	if list := SplitList(c.AdminEmailsRaw); len(list) > 0 {
		return list
	}
	if single := strings.TrimSpace(c.AdminEmail); single != "" {
		return []string{single}
	}
	return nil
}

// AllowedAdminLogins is the union of ADMIN_EMAIL and ADMIN_EMAILS, lower-cased.
func (c Config) AllowedAdminLogins() []string {
	var out []string
	for _, e := range append([]string{c.AdminEmail}, SplitList(c.AdminEmailsRaw)...) {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// SplitList splits a comma separated value into trimmed, non-empty items.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
