package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAreaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Area commands",
	}

	cmd.AddCommand(newAreaListCmd())
	cmd.AddCommand(newAreaGetCmd())
	cmd.AddCommand(newAreaHistoryCmd())

	return cmd
}

func newAreaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <town-id>",
		Short: "List a town's areas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AreaList

			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/areas", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAreaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <town-id> <area-id>",
		Short: "Show an area's current state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Area

			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/areas/%s", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAreaHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <town-id> <area-id>",
		Short: "Show an area's game history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AreaHistory

			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/areas/%s/history", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
