package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Town chat commands",
	}

	cmd.AddCommand(newChatLogCmd())
	cmd.AddCommand(newChatPostCmd())

	return cmd
}

func newChatLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <town-id>",
		Short: "Show the town's chat backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ChatLog

			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/chat", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChatPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <town-id> <message...>",
		Short: "Post a chat message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.Join(args[1:], " ")

			req := map[string]string{"body": body}
			var result ChatMessage

			if err := client.Post(fmt.Sprintf("/api/v1/towns/%s/chat", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
