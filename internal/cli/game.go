package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands for game areas",
	}

	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameDropCmd())
	cmd.AddCommand(newGameLeaveCmd())

	return cmd
}

func commandPath(townID, areaID string) string {
	return fmt.Sprintf("/api/v1/towns/%s/areas/%s/command", townID, areaID)
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <town-id> <area-id>",
		Short: "Join the area's game, creating one if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"type": "JoinGame"}
			var result CommandResult

			if err := client.Post(commandPath(args[0], args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <town-id> <area-id> <game-id>",
		Short: "Signal readiness to start the game",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"type": "StartGame", "game_id": args[2]}
			var result CommandResult

			if err := client.Post(commandPath(args[0], args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Ready")
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <town-id> <area-id> <game-id> <row> <col>",
		Short: "Make a move at an explicit board position",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}
			col, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			return sendMove(args[0], args[1], args[2], row, col)
		},
	}
}

// newGameDropCmd drops a Connect Four piece into a column; the row is derived
// from the column's current occupancy so callers don't have to compute gravity
func newGameDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <town-id> <area-id> <game-id> <col>",
		Short: "Drop a Connect Four piece into a column",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			var area Area
			if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/areas/%s", args[0], args[1]), &area); err != nil {
				return err
			}
			if area.Game == nil {
				return fmt.Errorf("no game in progress")
			}

			var state connectFourView
			if err := json.Unmarshal(area.Game.State, &state); err != nil {
				return fmt.Errorf("area %s does not host Connect Four", args[1])
			}

			occupancy := 0
			for _, m := range state.Moves {
				if m.Col == col {
					occupancy++
				}
			}
			if occupancy >= 6 {
				return fmt.Errorf("column %d is full", col)
			}
			row := 5 - occupancy

			return sendMove(args[0], args[1], args[2], row, col)
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <town-id> <area-id> <game-id>",
		Short: "Leave the game",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"type": "LeaveGame", "game_id": args[2]}

			if err := client.Post(commandPath(args[0], args[1]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left game")
			return nil
		},
	}
}

func sendMove(townID, areaID, gameID string, row, col int) error {
	req := map[string]any{
		"type":    "GameMove",
		"game_id": gameID,
		"move":    map[string]int{"row": row, "col": col},
	}

	if err := client.Post(commandPath(townID, areaID), req, nil); err != nil {
		return err
	}

	// Show the board after the move
	var area Area
	if err := client.Get(fmt.Sprintf("/api/v1/towns/%s/areas/%s", townID, areaID), &area); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(area)
	return nil
}
