package config

import (
	"path/filepath"
	"strings"
	"time"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Paths    PathsConfig
	Ultramsg UltramsgConfig
	Host     HostConfig
	Valkey   ValkeyConfig
	AI       AIConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	Statics  string
	QrCode   string
	Media    string
	Storages string
}

// UltramsgConfig carries the gateway credentials and webhook settings.
type UltramsgConfig struct {
	APIURL        string
	InstanceID    string
	Token         string
	Timeout       time.Duration
	MaxMediaSize  int64
	WebhookURL    string
	Webhook       domain.WebhookProperties
	InboundPolicy domain.MissingFieldPolicy
}

// Credentials returns the triple the gateway client is built with.
func (u UltramsgConfig) Credentials() domain.Credentials {
	return domain.Credentials{APIURL: u.APIURL, InstanceID: u.InstanceID, Token: u.Token}
}

// HostConfig lists the host platform endpoints that receive normalized inbound messages.
type HostConfig struct {
	CallbackURLs       []string
	CallbackSecret     string
	InsecureSkipVerify bool
	DedupTTL           time.Duration
}

type ValkeyConfig struct {
	Enabled   bool
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

type AIConfig struct {
	OpenAIKey          string
	TranscriptionModel string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig builds the configuration from viper (flags, .env and process
// environment, in that order of precedence) and stores it in Global.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_STORAGES", "storages")
	statics := getEnv("PATH_STATICS", "statics")

	apiURL := strings.TrimRight(getEnv("ULTRAMSG_API_URL", "https://api.ultramsg.com"), "/")
	instanceID := getEnv("ULTRAMSG_INSTANCE_ID", "")
	// Ultramsg endpoints are scoped by instance; accept both the bare API host
	// and an already scoped base URL.
	if instanceID != "" && !strings.HasSuffix(apiURL, "/"+instanceID) {
		apiURL = apiURL + "/" + instanceID
	}

	policy := domain.MissingFieldPolicy(strings.ToLower(getEnv("ULTRAMSG_INBOUND_POLICY", string(domain.PolicyStrict))))

	cfg := &Config{
		App: AppConfig{
			Version:            "v1.0.0",
			Port:               getEnv("APP_PORT", "3000"),
			Debug:              getEnvBool("APP_DEBUG", false),
			BasicAuth:          getEnvList("APP_BASIC_AUTH"),
			BasePath:           getEnv("APP_BASE_PATH", ""),
			TrustedProxies:     getEnvList("APP_TRUSTED_PROXIES"),
			CorsAllowedOrigins: getEnvListDefault("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ServerID:           getEnv("SERVER_ID", ""),
		},
		Paths: PathsConfig{
			Statics:  statics,
			QrCode:   filepath.Join(statics, "qrcode"),
			Media:    filepath.Join(statics, "media"),
			Storages: storages,
		},
		Ultramsg: UltramsgConfig{
			APIURL:       apiURL,
			InstanceID:   instanceID,
			Token:        getEnv("ULTRAMSG_TOKEN", ""),
			Timeout:      time.Duration(getEnvInt("ULTRAMSG_TIMEOUT", 10)) * time.Second,
			MaxMediaSize: getEnvInt64("ULTRAMSG_MAX_MEDIA_SIZE", 50000000),
			WebhookURL:   getEnv("ULTRAMSG_WEBHOOK_URL", ""),
			Webhook: domain.WebhookProperties{
				MessageReceived:      getEnvBool("ULTRAMSG_WEBHOOK_MESSAGE_RECEIVED", true),
				MessageCreate:        getEnvBool("ULTRAMSG_WEBHOOK_MESSAGE_CREATE", false),
				MessageAck:           getEnvBool("ULTRAMSG_WEBHOOK_MESSAGE_ACK", false),
				MessageDownloadMedia: getEnvBool("ULTRAMSG_WEBHOOK_MESSAGE_DOWNLOAD_MEDIA", true),
				SendDelay:            getEnvInt("ULTRAMSG_SEND_DELAY", 1),
			},
			InboundPolicy: policy,
		},
		Host: HostConfig{
			CallbackURLs:       getEnvList("HOST_CALLBACK_URLS"),
			CallbackSecret:     getEnv("HOST_CALLBACK_SECRET", ""),
			InsecureSkipVerify: getEnvBool("HOST_CALLBACK_INSECURE_SKIP_VERIFY", false),
			DedupTTL:           time.Duration(getEnvInt("DEDUP_TTL", 600)) * time.Second,
		},
		Valkey: ValkeyConfig{
			Enabled:   getEnvBool("VALKEY_ENABLED", false),
			Address:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
			Password:  getEnv("VALKEY_PASSWORD", ""),
			DB:        getEnvInt("VALKEY_DB", 0),
			KeyPrefix: getEnv("VALKEY_KEY_PREFIX", "ultramsg:"),
		},
		AI: AIConfig{
			OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
			TranscriptionModel: getEnv("OPENAI_TRANSCRIPTION_MODEL", "whisper-1"),
		},
	}

	Global = cfg
	return cfg, nil
}
