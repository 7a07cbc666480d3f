package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// GetAllSettings returns the non-secret settings currently loaded in memory.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":                    Global.App.Version,
		"app_debug":                      Global.App.Debug,
		"ultramsg_api_url":               Global.Ultramsg.APIURL,
		"ultramsg_instance_id":           Global.Ultramsg.InstanceID,
		"ultramsg_timeout_seconds":       Global.Ultramsg.Timeout.Seconds(),
		"ultramsg_webhook_url":           Global.Ultramsg.WebhookURL,
		"ultramsg_inbound_policy":        string(Global.Ultramsg.InboundPolicy),
		"webhook_message_received":       Global.Ultramsg.Webhook.MessageReceived,
		"webhook_message_create":         Global.Ultramsg.Webhook.MessageCreate,
		"webhook_message_ack":            Global.Ultramsg.Webhook.MessageAck,
		"webhook_message_download_media": Global.Ultramsg.Webhook.MessageDownloadMedia,
		"send_delay":                     Global.Ultramsg.Webhook.SendDelay,
		"host_callbacks":                 len(Global.Host.CallbackURLs),
		"valkey_enabled":                 Global.Valkey.Enabled,
		"transcription_enabled":          Global.AI.OpenAIKey != "",
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	return getEnvListDefault(key, nil)
}

func getEnvListDefault(key string, fallback []string) []string {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
