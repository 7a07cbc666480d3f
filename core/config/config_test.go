package config

import (
	"testing"
	"time"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)

	t.Setenv("ULTRAMSG_API_URL", "https://api.ultramsg.com/")
	t.Setenv("ULTRAMSG_INSTANCE_ID", "instance42")
	t.Setenv("ULTRAMSG_TOKEN", "secret")
	t.Setenv("ULTRAMSG_TIMEOUT", "5")
	t.Setenv("ULTRAMSG_MAX_MEDIA_SIZE", "1048576")
	t.Setenv("ULTRAMSG_WEBHOOK_MESSAGE_ACK", "True")
	t.Setenv("ULTRAMSG_SEND_DELAY", "3")
	t.Setenv("ULTRAMSG_INBOUND_POLICY", "LENIENT")
	t.Setenv("HOST_CALLBACK_URLS", "https://a.test/hook, https://b.test/hook,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Same(t, cfg, Global)
	assert.Equal(t, "https://api.ultramsg.com/instance42", cfg.Ultramsg.APIURL)
	assert.Equal(t, domain.Credentials{APIURL: "https://api.ultramsg.com/instance42", InstanceID: "instance42", Token: "secret"}, cfg.Ultramsg.Credentials())
	assert.Equal(t, 5*time.Second, cfg.Ultramsg.Timeout)
	assert.Equal(t, int64(1048576), cfg.Ultramsg.MaxMediaSize)
	assert.True(t, cfg.Ultramsg.Webhook.MessageAck)
	assert.True(t, cfg.Ultramsg.Webhook.MessageReceived)
	assert.Equal(t, 3, cfg.Ultramsg.Webhook.SendDelay)
	assert.Equal(t, domain.PolicyLenient, cfg.Ultramsg.InboundPolicy)
	assert.Equal(t, []string{"https://a.test/hook", "https://b.test/hook"}, cfg.Host.CallbackURLs)
}

func TestLoadConfig_ScopedURLIsNotDoubled(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)

	t.Setenv("ULTRAMSG_API_URL", "https://api.ultramsg.com/instance7")
	t.Setenv("ULTRAMSG_INSTANCE_ID", "instance7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.ultramsg.com/instance7", cfg.Ultramsg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Ultramsg.Timeout)
	assert.Equal(t, int64(50000000), cfg.Ultramsg.MaxMediaSize)
	assert.Equal(t, domain.PolicyStrict, cfg.Ultramsg.InboundPolicy)
}

func TestGetAllSettings_OmitsSecrets(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)
	t.Setenv("ULTRAMSG_TOKEN", "secret")

	_, err := LoadConfig()
	require.NoError(t, err)

	for _, v := range GetAllSettings() {
		assert.NotEqual(t, "secret", v)
	}
}
