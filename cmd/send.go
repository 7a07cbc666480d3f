package cmd

import (
	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <phone> <message>",
	Short: "Send a text message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		replyTo, _ := cmd.Flags().GetString("reply-to")
		resp, err := newActionUsecase(nil).SendMessage(commandContext(cmd), domain.SendMessageRequest{
			Phone:     args[0],
			Message:   args[1],
			ReplyToID: replyTo,
		})
		if err != nil {
			return err
		}
		return gatewayResult(cmd, resp)
	},
}

func init() {
	sendCmd.Flags().String("reply-to", "", "id of the message to quote")
	rootCmd.AddCommand(sendCmd)
}
