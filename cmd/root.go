package cmd

import (
	"os"
	"time"

	coreconfig "github.com/TrueSelph/ultramsg-action/core/config"
	"github.com/TrueSelph/ultramsg-action/infrastructure/valkey"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg      *coreconfig.Config
	vkClient *valkey.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ultramsg-action",
	Short: "WhatsApp messaging through the Ultramsg gateway",
	Long: `Connects a conversational agent platform to WhatsApp through the Ultramsg REST gateway.
Run "rest" to receive gateway webhooks and expose the send API, or use the
other commands to manage the instance from the shell.`,
	SilenceUsage: true,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initApp)
}

// persistent flags override the matching environment key through viper
var flagKeys = []struct {
	name, short, key, usage string
}{
	{"port", "p", "APP_PORT", "change port number with --port <number> | example: --port=8080"},
	{"debug", "d", "APP_DEBUG", "hide or displaying log with --debug <true/false> | example: --debug=true"},
	{"basic-auth", "b", "APP_BASIC_AUTH", "basic auth credential | -b=yourUsername:yourPassword,user2:pass2"},
	{"base-path", "", "APP_BASE_PATH", `base path for subpath deployment --base-path <string> | example: --base-path="/ultramsg"`},
	{"api-url", "", "ULTRAMSG_API_URL", `Ultramsg API host or instance base URL | example: --api-url="https://api.ultramsg.com"`},
	{"instance-id", "i", "ULTRAMSG_INSTANCE_ID", `Ultramsg instance id | example: --instance-id="instance1234"`},
	{"token", "t", "ULTRAMSG_TOKEN", "Ultramsg instance token"},
	{"timeout", "", "ULTRAMSG_TIMEOUT", "gateway request timeout in seconds | example: --timeout=10"},
	{"webhook-url", "", "ULTRAMSG_WEBHOOK_URL", `URL the gateway posts events to | example: --webhook-url="https://agent.example.com/api/webhook/ultramsg"`},
	{"inbound-policy", "", "ULTRAMSG_INBOUND_POLICY", "what to do with webhook payloads missing required fields: strict or lenient"},
	{"host-callback", "w", "HOST_CALLBACK_URLS", `forward inbound messages to these URLs (comma separated) | example: --host-callback="https://host/callback"`},
	{"host-callback-secret", "", "HOST_CALLBACK_SECRET", "HMAC secret for the X-Hub-Signature-256 header"},
}

func initFlags() {
	for _, f := range flagKeys {
		rootCmd.PersistentFlags().StringP(f.name, f.short, "", f.usage)
		if err := viper.BindPFlag(f.key, rootCmd.PersistentFlags().Lookup(f.name)); err != nil {
			logrus.Fatalf("[CONFIG] bind flag %s: %v", f.name, err)
		}
	}
}

func initApp() {
	var err error
	cfg, err = coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("[CONFIG] %v", err)
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(cfg.Paths.QrCode, cfg.Paths.Media, cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	if cfg.Valkey.Enabled {
		vkClient, err = valkey.NewClient(valkey.Config{
			Address:   cfg.Valkey.Address,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			KeyPrefix: cfg.Valkey.KeyPrefix,
		})
		if err != nil {
			logrus.WithError(err).Warn("[VALKEY] unavailable, falling back to in-memory dedup")
			vkClient = nil
		} else {
			logrus.Infof("[VALKEY] connected to %s", cfg.Valkey.Address)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp releases the shared connections opened by initApp.
func StopApp() {
	logrus.Info("[APP] Stopping application...")
	if vkClient != nil {
		vkClient.Close()
	}
	logrus.Info("[APP] Application stopped cleanly.")
}
