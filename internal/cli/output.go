package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Town:
		o.printTown(v)
	case TownDetail:
		o.printTownDetail(v)
	case TownList:
		o.printTownList(v)
	case MoveResult:
		o.printMoveResult(v)
	case Area:
		o.printArea(v)
	case AreaList:
		o.printAreaList(v)
	case AreaHistory:
		o.printAreaHistory(v)
	case CommandResult:
		o.printCommandResult(v)
	case ChatLog:
		o.printChatLog(v)
	case ChatMessage:
		o.printChatMessage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	IsGuest  bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// BoundingBox response type
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AreaDefinition response type
type AreaDefinition struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Bounds BoundingBox `json:"bounds"`
}

// Town response type
type Town struct {
	ID           string           `json:"id"`
	FriendlyName string           `json:"friendly_name"`
	IsPublic     bool             `json:"is_public"`
	Capacity     int              `json:"capacity"`
	Areas        []AreaDefinition `json:"areas"`
}

// TownSummary response type
type TownSummary struct {
	ID               string `json:"town_id"`
	FriendlyName     string `json:"friendly_name"`
	Capacity         int    `json:"capacity"`
	CurrentOccupancy int    `json:"current_occupancy"`
}

// TownList response type
type TownList struct {
	Towns []TownSummary `json:"towns"`
}

// Location response type
type Location struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Moving bool    `json:"moving"`
	AreaID string  `json:"area_id,omitempty"`
}

// Occupant response type
type Occupant struct {
	PlayerID string   `json:"player_id"`
	UserName string   `json:"user_name"`
	Location Location `json:"location"`
}

// TownDetail response type
type TownDetail struct {
	Town      Town       `json:"town"`
	Occupants []Occupant `json:"occupants"`
	Areas     []Area     `json:"areas"`
}

// MoveResult response type
type MoveResult struct {
	Location Location `json:"location"`
}

// GameView response type; State is variant-specific
type GameView struct {
	ID      string          `json:"id"`
	State   json.RawMessage `json:"state"`
	Result  *string         `json:"result"`
	Players []string        `json:"players"`
}

// HistoryEntry response type
type HistoryEntry struct {
	GameID string         `json:"game_id"`
	Scores map[string]int `json:"scores"`
}

// Area response type
type Area struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Game      *GameView      `json:"game,omitempty"`
	History   []HistoryEntry `json:"history"`
	Occupants []string       `json:"occupants"`
}

// AreaList response type
type AreaList struct {
	Areas []Area `json:"areas"`
}

// AreaHistory response type
type AreaHistory struct {
	History []HistoryEntry `json:"history"`
}

// CommandResult response type
type CommandResult struct {
	GameID string `json:"game_id,omitempty"`
}

// ChatMessage response type
type ChatMessage struct {
	Author   string    `json:"author"`
	UserName string    `json:"user_name"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// ChatLog response type
type ChatLog struct {
	Messages []ChatMessage `json:"messages"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.UserName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printTown(t Town) {
	visibility := "private"
	if t.IsPublic {
		visibility = "public"
	}
	fmt.Printf("Town: %s (%s)\n", t.FriendlyName, t.ID)
	fmt.Printf("Visibility: %s\n", visibility)
	fmt.Printf("Capacity: %d\n", t.Capacity)
	fmt.Printf("Areas (%d):\n", len(t.Areas))
	for _, a := range t.Areas {
		fmt.Printf("  - %s (%s) at (%.0f, %.0f) %0.fx%.0f\n",
			a.ID, a.Type, a.Bounds.X, a.Bounds.Y, a.Bounds.Width, a.Bounds.Height)
	}
}

func (o *Output) printTownDetail(t TownDetail) {
	o.printTown(t.Town)
	fmt.Printf("Occupants (%d):\n", len(t.Occupants))
	for _, occ := range t.Occupants {
		loc := fmt.Sprintf("(%.1f, %.1f)", occ.Location.X, occ.Location.Y)
		if occ.Location.AreaID != "" {
			loc += " in " + occ.Location.AreaID
		}
		fmt.Printf("  - %s (%s) %s\n", occ.UserName, occ.PlayerID, loc)
	}
}

func (o *Output) printTownList(l TownList) {
	if len(l.Towns) == 0 {
		fmt.Println("No public towns")
		return
	}
	for _, t := range l.Towns {
		fmt.Printf("%s  %s  (%d/%d)\n", t.ID, t.FriendlyName, t.CurrentOccupancy, t.Capacity)
	}
}

func (o *Output) printMoveResult(m MoveResult) {
	fmt.Printf("Position: (%.1f, %.1f)\n", m.Location.X, m.Location.Y)
	if m.Location.AreaID != "" {
		fmt.Printf("Area: %s\n", m.Location.AreaID)
	}
}

func (o *Output) printArea(a Area) {
	fmt.Printf("Area: %s (%s)\n", a.ID, a.Type)
	fmt.Printf("Occupants: %d\n", len(a.Occupants))

	if a.Game != nil {
		fmt.Printf("\nGame: %s\n", a.Game.ID)
		o.printGameState(a.Type, a.Game.State)
		if a.Game.Result != nil {
			fmt.Printf("Result: %s\n", *a.Game.Result)
		}
	}

	if len(a.History) > 0 {
		fmt.Printf("\nPast games: %d\n", len(a.History))
	}
}

// printGameState renders the variant-specific state, falling back to JSON
// when it doesn't parse as a known variant
func (o *Output) printGameState(areaType string, state json.RawMessage) {
	switch areaType {
	case "ConnectFourArea":
		var s connectFourView
		if err := json.Unmarshal(state, &s); err == nil {
			o.printConnectFour(s)
			return
		}
	case "TicTacToeArea":
		var s ticTacToeView
		if err := json.Unmarshal(state, &s); err == nil {
			o.printTicTacToe(s)
			return
		}
	}
	fmt.Println(string(state))
}

type connectFourMoveView struct {
	Color string `json:"color"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
}

type connectFourView struct {
	Red         string                `json:"red"`
	Yellow      string                `json:"yellow"`
	Status      string                `json:"status"`
	FirstPlayer string                `json:"first_player"`
	Winner      string                `json:"winner"`
	Moves       []connectFourMoveView `json:"moves"`
}

func (o *Output) printConnectFour(s connectFourView) {
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Red: %s  Yellow: %s\n", orOpen(s.Red), orOpen(s.Yellow))
	if s.Winner != "" {
		fmt.Printf("Winner: %s\n", s.Winner)
	}

	var grid [6][7]string
	for _, m := range s.Moves {
		if m.Color == "" || m.Row < 0 || m.Row >= 6 || m.Col < 0 || m.Col >= 7 {
			continue
		}
		grid[m.Row][m.Col] = string(m.Color[0])
	}

	fmt.Println("    0  1  2  3  4  5  6")
	for row := 0; row < 6; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < 7; col++ {
			cell := grid[row][col]
			if cell == "" {
				cell = "."
			}
			fmt.Printf(" %s ", cell)
		}
		fmt.Println("|")
	}
}

type ticTacToeMoveView struct {
	Mark string `json:"mark"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type ticTacToeView struct {
	X      string              `json:"x"`
	O      string              `json:"o"`
	Status string              `json:"status"`
	Winner string              `json:"winner"`
	Moves  []ticTacToeMoveView `json:"moves"`
}

func (o *Output) printTicTacToe(s ticTacToeView) {
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("X: %s  O: %s\n", orOpen(s.X), orOpen(s.O))
	if s.Winner != "" {
		fmt.Printf("Winner: %s\n", s.Winner)
	}

	var grid [3][3]string
	for _, m := range s.Moves {
		if m.Row < 0 || m.Row >= 3 || m.Col < 0 || m.Col >= 3 {
			continue
		}
		grid[m.Row][m.Col] = m.Mark
	}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cell := grid[row][col]
			if cell == "" {
				cell = "."
			}
			fmt.Printf(" %s ", cell)
		}
		fmt.Println()
	}
}

func orOpen(seat string) string {
	if seat == "" {
		return "<open>"
	}
	return seat
}

func (o *Output) printAreaList(l AreaList) {
	if len(l.Areas) == 0 {
		fmt.Println("No areas")
		return
	}
	for _, a := range l.Areas {
		status := "idle"
		if a.Game != nil {
			status = "game " + a.Game.ID
		}
		fmt.Printf("%s  %s  occupants=%d  %s\n", a.ID, a.Type, len(a.Occupants), status)
	}
}

func (o *Output) printAreaHistory(h AreaHistory) {
	if len(h.History) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for _, entry := range h.History {
		fmt.Printf("Game %s:\n", entry.GameID)
		for name, score := range entry.Scores {
			fmt.Printf("  %s: %d\n", name, score)
		}
	}
}

func (o *Output) printCommandResult(c CommandResult) {
	if c.GameID != "" {
		fmt.Printf("Game: %s\n", c.GameID)
	} else {
		fmt.Println("OK")
	}
}

func (o *Output) printChatMessage(m ChatMessage) {
	fmt.Printf("[%s] %s: %s\n", m.SentAt.Format("15:04:05"), m.UserName, m.Body)
}

func (o *Output) printChatLog(l ChatLog) {
	if len(l.Messages) == 0 {
		fmt.Println("No messages")
		return
	}
	for _, m := range l.Messages {
		o.printChatMessage(m)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
