package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newTownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "town",
		Short: "Town management commands",
	}

	cmd.AddCommand(newTownCreateCmd())
	cmd.AddCommand(newTownListCmd())
	cmd.AddCommand(newTownGetCmd())
	cmd.AddCommand(newTownJoinCmd())
	cmd.AddCommand(newTownLeaveCmd())
	cmd.AddCommand(newTownMoveCmd())
	cmd.AddCommand(newTownUpdateCmd())
	cmd.AddCommand(newTownDeleteCmd())

	return cmd
}

func newTownCreateCmd() *cobra.Command {
	var name, password, areasFile string
	var public bool
	var capacity int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new town",
		Long: `Create a new town with an area layout.

The layout is a JSON array of area definitions, e.g.:

  [{"id": "c4", "type": "ConnectFourArea",
    "bounds": {"x": 0, "y": 0, "width": 100, "height": 100}}]

Pass it via --areas-file, or omit the flag for a town with no areas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var areas []AreaDefinition
			if areasFile != "" {
				data, err := os.ReadFile(areasFile)
				if err != nil {
					return fmt.Errorf("failed to read areas file: %w", err)
				}
				if err := json.Unmarshal(data, &areas); err != nil {
					return fmt.Errorf("failed to parse areas file: %w", err)
				}
			}

			req := map[string]any{
				"friendly_name":   name,
				"is_public":       public,
				"update_password": password,
				"areas":           areas,
			}
			if capacity > 0 {
				req["capacity"] = capacity
			}

			var result Town
			if err := client.Post("/api/v1/towns", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Town name (required)")
	cmd.Flags().BoolVar(&public, "public", true, "List the town publicly")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Occupant capacity (default: server default)")
	cmd.Flags().StringVar(&password, "password", "", "Update password (required)")
	cmd.Flags().StringVar(&areasFile, "areas-file", "", "Path to JSON area layout")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newTownListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public towns",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TownList

			if err := client.Get("/api/v1/towns", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTownGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <town-id>",
		Short: "Get town details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TownDetail

			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTownJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <town-id>",
		Short: "Join a town",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TownDetail

			if err := client.Post(fmt.Sprintf("/api/v1/towns/%s/join", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTownLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <town-id>",
		Short: "Leave a town",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/towns/%s/leave", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left town %s", args[0]))
			return nil
		},
	}
}

func newTownMoveCmd() *cobra.Command {
	var moving bool

	cmd := &cobra.Command{
		Use:   "move <town-id> <x> <y>",
		Short: "Move to a position in the town",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			req := map[string]any{"x": x, "y": y, "moving": moving}
			var result MoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/towns/%s/move", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&moving, "moving", false, "Report as still moving")

	return cmd
}

func newTownUpdateCmd() *cobra.Command {
	var name, password string
	var public bool

	cmd := &cobra.Command{
		Use:   "update <town-id>",
		Short: "Update town settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"update_password": password,
				"friendly_name":   name,
				"is_public":       public,
			}
			var result Town

			if err := client.Patch(fmt.Sprintf("/api/v1/towns/%s", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New town name (required)")
	cmd.Flags().BoolVar(&public, "public", true, "List the town publicly")
	cmd.Flags().StringVar(&password, "password", "", "Update password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newTownDeleteCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete <town-id>",
		Short: "Delete a town",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"update_password": password}

			if err := client.Delete(fmt.Sprintf("/api/v1/towns/%s", args[0]), req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted town %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Update password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
