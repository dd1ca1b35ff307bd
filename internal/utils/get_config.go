package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppTimezone string `yaml:"APP_TIMEZONE"`
	LogLevel    string `yaml:"LOG_LEVEL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Reminders
	NotifyEmail          string `yaml:"NOTIFY_EMAIL"`
	NotificationsEnabled bool   `yaml:"NOTIFICATIONS_ENABLED"`
	DispatchInterval     string `yaml:"DISPATCH_INTERVAL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// External catalogs
	ProductAPIURL string `yaml:"PRODUCT_API_URL"`
	RecipeAPIURL  string `yaml:"RECIPE_API_URL"`
	RecipeAPIKey  string `yaml:"RECIPE_API_KEY"`
}

const (
	defaultAppPort       = "8080"
	defaultProductAPIURL = "https://world.openfoodfacts.org"
	defaultRecipeAPIURL  = "https://api.spoonacular.com"
	defaultDispatchEvery = time.Minute
)

var config Config

// LoadConfig reads .env (if present) and config.yaml from the working
// directory. Environment variables win over YAML values.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	if err := LoadConfigFrom("config.yaml"); err != nil {
		log.Printf("Error loading config: %s\n", err)
	}
}

// LoadConfigFrom replaces the current configuration with the YAML file at path
// and the environment overrides. A missing file leaves only the overrides.
func LoadConfigFrom(path string) error {
	var loaded Config

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &loaded); err != nil {
			return err
		}
	case os.IsNotExist(err):
	default:
		return err
	}

	applyEnv(&loaded)
	config = loaded
	return nil
}

func applyEnv(c *Config) {
	overrides := map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_TIMEZONE":       &c.AppTimezone,
		"LOG_LEVEL":          &c.LogLevel,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"JWT_SECRET":         &c.JWTSecret,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"NOTIFY_EMAIL":       &c.NotifyEmail,
		"DISPATCH_INTERVAL":  &c.DispatchInterval,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"PRODUCT_API_URL":    &c.ProductAPIURL,
		"RECIPE_API_URL":     &c.RecipeAPIURL,
		"RECIPE_API_KEY":     &c.RecipeAPIKey,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("NOTIFICATIONS_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.NotificationsEnabled = b
		}
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		if config.AppPort == "" {
			return defaultAppPort
		}
		return config.AppPort
	case "APP_TIMEZONE":
		return config.AppTimezone
	case "LOG_LEVEL":
		return config.LogLevel
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "NOTIFY_EMAIL":
		return config.NotifyEmail
	case "NOTIFICATIONS_ENABLED":
		return getBoolString(config.NotificationsEnabled)
	case "DISPATCH_INTERVAL":
		return config.DispatchInterval
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "PRODUCT_API_URL":
		if config.ProductAPIURL == "" {
			return defaultProductAPIURL
		}
		return config.ProductAPIURL
	case "RECIPE_API_URL":
		if config.RecipeAPIURL == "" {
			return defaultRecipeAPIURL
		}
		return config.RecipeAPIURL
	case "RECIPE_API_KEY":
		return config.RecipeAPIKey
	default:
		return ""
	}
}

func NotificationsEnabled() bool {
	return config.NotificationsEnabled
}

// Location resolves APP_TIMEZONE, falling back to the host's zone when it is
// unset or unknown.
func Location() *time.Location {
	if config.AppTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(config.AppTimezone)
	if err != nil {
		log.Printf("Unknown APP_TIMEZONE %q, using local time\n", config.AppTimezone)
		return time.Local
	}
	return loc
}

func DispatchInterval() time.Duration {
	if config.DispatchInterval == "" {
		return defaultDispatchEvery
	}
	d, err := time.ParseDuration(config.DispatchInterval)
	if err != nil || d <= 0 {
		return defaultDispatchEvery
	}
	return d
}
