package cmd

import (
	"fmt"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the Ultramsg instance status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return gatewayResult(cmd, newActionUsecase(nil).InstanceStatus(commandContext(cmd)))
	},
}

var qrCmd = &cobra.Command{
	Use:   "qr [output.png]",
	Short: "Save the instance login QR code as PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		path, err := newActionUsecase(nil).SaveQRImage(commandContext(cmd), target)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "QR code saved to %s\n", path)
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log the instance out of WhatsApp",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return gatewayResult(cmd, newActionUsecase(nil).Logout(commandContext(cmd)))
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the Ultramsg instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return gatewayResult(cmd, newActionUsecase(nil).Restart(commandContext(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, qrCmd, logoutCmd, restartCmd)
}

// gatewayResult prints resp and turns a gateway error shape into a non-zero exit.
func gatewayResult(cmd *cobra.Command, resp domain.GatewayResponse) error {
	if err := printJSON(cmd, resp); err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("gateway error: %s", resp.Err())
	}
	return nil
}
