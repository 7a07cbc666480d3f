package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Point the Ultramsg webhook at this action (register_session)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ok, resp := newActionUsecase(nil).RegisterSession(commandContext(cmd))
		if err := printJSON(cmd, resp); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("register_session failed: %s", resp.Err())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
