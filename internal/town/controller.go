// Package town manages live towns: occupancy, movement, area command
// routing, and chat, layered over the persisted town records.
package town

import (
	"context"
	"log/slog"
	"sync"

	"github.com/boardtown/gamearea-go/internal/area"
	"github.com/boardtown/gamearea-go/internal/dependencies/clock"
	"github.com/boardtown/gamearea-go/internal/dependencies/random"
	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/storage"
)

const (
	// TownIDLength is the length of generated town identifiers
	TownIDLength = 8
	// TownIDAlphabet is the characters used in town identifiers (avoid confusing chars)
	TownIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultCapacity is used when a town is created without one
	DefaultCapacity = 50
)

// Notifier receives town events for fan-out to connected clients
type Notifier interface {
	Publish(ev model.Event)
}

// Controller manages town lifecycle and the live state layered on records
type Controller struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	notifier Notifier

	mu    sync.Mutex
	towns map[model.TownID]*liveTown
}

// liveTown is the in-memory state of a town. Commands and movement within a
// town are serialized by its mutex.
type liveTown struct {
	mu        sync.Mutex
	record    model.TownRecord
	occupants map[model.PlayerID]*occupant
	areas     map[model.AreaID]*area.Area
	areaOrder []model.AreaID
	chat      []model.ChatMessage
}

type occupant struct {
	player   model.Player
	location model.PlayerLocation
}

// NewController creates a new town Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	notifier Notifier,
) *Controller {
	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger,
		notifier: notifier,
		towns:    make(map[model.TownID]*liveTown),
	}
}

// CreateTown creates and persists a new town with the given area layout
func (c *Controller) CreateTown(
	ctx context.Context,
	friendlyName string,
	isPublic bool,
	capacity int,
	updatePassword string,
	areas []model.AreaDefinition,
) (*model.TownRecord, error) {
	if err := validateAreas(areas); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	now := c.clock.Now()

	// Generate unique town ID
	var id model.TownID
	for {
		id = model.TownID(c.random.String(TownIDLength, TownIDAlphabet))
		exists, err := c.storage.TownExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	record := &model.TownRecord{
		ID:             id,
		FriendlyName:   friendlyName,
		IsPublic:       isPublic,
		Capacity:       capacity,
		UpdatePassword: updatePassword,
		Areas:          areas,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.storage.SaveTown(ctx, record); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.towns[id] = c.newLiveTown(*record)
	c.mu.Unlock()

	c.logger.Info("town created",
		slog.String("town_id", string(id)),
		slog.String("friendly_name", friendlyName),
	)

	return record, nil
}

// ListTowns returns summaries of the public towns
func (c *Controller) ListTowns(ctx context.Context) ([]model.TownSummary, error) {
	records, err := c.storage.ListTowns(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.TownSummary, 0, len(records))
	for _, record := range records {
		if !record.IsPublic {
			continue
		}
		summaries = append(summaries, model.TownSummary{
			ID:               record.ID,
			FriendlyName:     record.FriendlyName,
			Capacity:         record.Capacity,
			CurrentOccupancy: c.occupancy(record.ID),
		})
	}
	return summaries, nil
}

// GetTown returns the full live snapshot of a town
func (c *Controller) GetTown(ctx context.Context, id model.TownID) (*model.TownSnapshot, error) {
	town, err := c.live(ctx, id)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()
	snap := town.snapshot()
	return &snap, nil
}

// JoinTown adds a player to a town at the spawn location
func (c *Controller) JoinTown(ctx context.Context, id model.TownID, player model.Player) error {
	town, err := c.live(ctx, id)
	if err != nil {
		return err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	if _, ok := town.occupants[player.ID]; ok {
		return model.ErrAlreadyInTown
	}
	if len(town.occupants) >= town.record.Capacity {
		return model.ErrTownFull
	}

	town.occupants[player.ID] = &occupant{player: player}
	c.publish(id, model.EventPlayerJoined, model.PlayerJoinedPayload{
		PlayerID: player.ID,
		UserName: player.UserName,
	})
	return nil
}

// LeaveTown removes a player from a town, forfeiting any game they are in
func (c *Controller) LeaveTown(ctx context.Context, id model.TownID, playerID model.PlayerID) error {
	town, err := c.live(ctx, id)
	if err != nil {
		return err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	occ, ok := town.occupants[playerID]
	if !ok {
		return model.ErrNotInTown
	}

	if occ.location.AreaID != "" {
		if a, ok := town.areas[occ.location.AreaID]; ok {
			a.RemoveOccupant(occ.player)
		}
	}
	delete(town.occupants, playerID)

	c.publish(id, model.EventPlayerLeft, model.PlayerLeftPayload{
		PlayerID: playerID,
		UserName: occ.player.UserName,
	})
	return nil
}

// MovePlayer updates a player's position, transferring area occupancy when
// the move crosses an area boundary
func (c *Controller) MovePlayer(
	ctx context.Context,
	id model.TownID,
	playerID model.PlayerID,
	x, y float64,
	moving bool,
) (model.PlayerLocation, error) {
	town, err := c.live(ctx, id)
	if err != nil {
		return model.PlayerLocation{}, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	occ, ok := town.occupants[playerID]
	if !ok {
		return model.PlayerLocation{}, model.ErrNotInTown
	}

	prev := occ.location.AreaID
	next := town.areaAt(x, y)

	if prev != next {
		if prev != "" {
			if a, ok := town.areas[prev]; ok {
				a.RemoveOccupant(occ.player)
			}
		}
		if next != "" {
			if a, ok := town.areas[next]; ok {
				a.AddOccupant(occ.player)
			}
		}
	}

	occ.location = model.PlayerLocation{X: x, Y: y, Moving: moving, AreaID: next}
	c.publish(id, model.EventPlayerMoved, model.PlayerMovedPayload{
		PlayerID: playerID,
		Location: occ.location,
	})
	return occ.location, nil
}

// HandleAreaCommand routes a game command to an area on behalf of a player.
// Commands within a town are serialized, so each area observes a single
// writer.
func (c *Controller) HandleAreaCommand(
	ctx context.Context,
	townID model.TownID,
	areaID model.AreaID,
	playerID model.PlayerID,
	cmd model.Command,
) (model.CommandResponse, error) {
	town, err := c.live(ctx, townID)
	if err != nil {
		return model.CommandResponse{}, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	occ, ok := town.occupants[playerID]
	if !ok {
		return model.CommandResponse{}, model.ErrNotInTown
	}
	a, ok := town.areas[areaID]
	if !ok {
		return model.CommandResponse{}, model.ErrAreaNotFound
	}

	return a.HandleCommand(cmd, occ.player)
}

// GetArea returns the current snapshot of an area
func (c *Controller) GetArea(ctx context.Context, townID model.TownID, areaID model.AreaID) (*model.AreaModel, error) {
	town, err := c.live(ctx, townID)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	a, ok := town.areas[areaID]
	if !ok {
		return nil, model.ErrAreaNotFound
	}
	m := a.ToModel()
	return &m, nil
}

// GetAreaHistory returns an area's accumulated match history
func (c *Controller) GetAreaHistory(ctx context.Context, townID model.TownID, areaID model.AreaID) ([]model.HistoryEntry, error) {
	town, err := c.live(ctx, townID)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	a, ok := town.areas[areaID]
	if !ok {
		return nil, model.ErrAreaNotFound
	}
	return a.History(), nil
}

// PostChat appends a chat message to the town backlog and broadcasts it
func (c *Controller) PostChat(ctx context.Context, townID model.TownID, playerID model.PlayerID, body string) (*model.ChatMessage, error) {
	town, err := c.live(ctx, townID)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	occ, ok := town.occupants[playerID]
	if !ok {
		return nil, model.ErrNotInTown
	}

	msg := model.ChatMessage{
		Author:   playerID,
		UserName: occ.player.UserName,
		Body:     body,
		SentAt:   c.clock.Now(),
	}
	town.chat = append(town.chat, msg)
	if len(town.chat) > model.ChatBacklogLimit {
		town.chat = town.chat[len(town.chat)-model.ChatBacklogLimit:]
	}

	c.publish(townID, model.EventChatMessage, msg)
	return &msg, nil
}

// GetChat returns the town's chat backlog, oldest first
func (c *Controller) GetChat(ctx context.Context, townID model.TownID) ([]model.ChatMessage, error) {
	town, err := c.live(ctx, townID)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	out := make([]model.ChatMessage, len(town.chat))
	copy(out, town.chat)
	return out, nil
}

// UpdateTown changes a town's name and visibility, guarded by the update
// password set at creation
func (c *Controller) UpdateTown(ctx context.Context, id model.TownID, password, friendlyName string, isPublic bool) (*model.TownRecord, error) {
	town, err := c.live(ctx, id)
	if err != nil {
		return nil, err
	}

	town.mu.Lock()
	defer town.mu.Unlock()

	if town.record.UpdatePassword != password {
		return nil, model.ErrInvalidPassword
	}

	town.record.FriendlyName = friendlyName
	town.record.IsPublic = isPublic
	town.record.UpdatedAt = c.clock.Now()

	record := town.record
	if err := c.storage.SaveTown(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteTown removes a town, guarded by the update password
func (c *Controller) DeleteTown(ctx context.Context, id model.TownID, password string) error {
	town, err := c.live(ctx, id)
	if err != nil {
		return err
	}

	town.mu.Lock()
	if town.record.UpdatePassword != password {
		town.mu.Unlock()
		return model.ErrInvalidPassword
	}
	town.mu.Unlock()

	if err := c.storage.DeleteTown(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.towns, id)
	c.mu.Unlock()

	c.logger.Info("town deleted", slog.String("town_id", string(id)))
	return nil
}

// live returns the in-memory town, rehydrating it from storage on first
// access after a restart
func (c *Controller) live(ctx context.Context, id model.TownID) (*liveTown, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if town, ok := c.towns[id]; ok {
		return town, nil
	}

	record, err := c.storage.GetTown(ctx, id)
	if err != nil {
		return nil, err
	}

	town := c.newLiveTown(*record)
	c.towns[id] = town
	return town, nil
}

func (c *Controller) newLiveTown(record model.TownRecord) *liveTown {
	town := &liveTown{
		record:    record,
		occupants: make(map[model.PlayerID]*occupant),
		areas:     make(map[model.AreaID]*area.Area, len(record.Areas)),
	}
	for _, def := range record.Areas {
		town.areas[def.ID] = area.New(def, c.random, c.logger, func(m model.AreaModel) {
			c.publish(record.ID, model.EventAreaChanged, model.AreaChangedPayload{Area: m})
		})
		town.areaOrder = append(town.areaOrder, def.ID)
	}
	return town
}

func (c *Controller) occupancy(id model.TownID) int {
	c.mu.Lock()
	town, ok := c.towns[id]
	c.mu.Unlock()
	if !ok {
		return 0
	}
	town.mu.Lock()
	defer town.mu.Unlock()
	return len(town.occupants)
}

func (c *Controller) publish(id model.TownID, t model.EventType, payload any) {
	if c.notifier == nil {
		return
	}
	c.notifier.Publish(model.Event{
		Type:      t,
		Timestamp: c.clock.Now(),
		TownID:    id,
		Payload:   payload,
	})
}

// areaAt returns the first area whose bounds contain the point
func (t *liveTown) areaAt(x, y float64) model.AreaID {
	for _, id := range t.areaOrder {
		if t.areas[id].Bounds().Contains(x, y) {
			return id
		}
	}
	return ""
}

func (t *liveTown) snapshot() model.TownSnapshot {
	occupants := make([]model.OccupantInfo, 0, len(t.occupants))
	for _, occ := range t.occupants {
		occupants = append(occupants, model.OccupantInfo{
			PlayerID: occ.player.ID,
			UserName: occ.player.UserName,
			Location: occ.location,
		})
	}
	areas := make([]model.AreaModel, 0, len(t.areaOrder))
	for _, id := range t.areaOrder {
		areas = append(areas, t.areas[id].ToModel())
	}
	return model.TownSnapshot{
		Record:    t.record,
		Occupants: occupants,
		Areas:     areas,
	}
}

func validateAreas(areas []model.AreaDefinition) error {
	seen := make(map[model.AreaID]bool, len(areas))
	for _, def := range areas {
		if def.ID == "" || seen[def.ID] {
			return model.ErrInvalidTownAreas
		}
		seen[def.ID] = true
		switch def.Type {
		case model.AreaConnectFour, model.AreaTicTacToe, model.AreaConversation:
		default:
			return model.ErrInvalidTownAreas
		}
		if def.Bounds.Width <= 0 || def.Bounds.Height <= 0 {
			return model.ErrInvalidTownAreas
		}
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTown(ctx context.Context, friendlyName string, isPublic bool, capacity int, updatePassword string, areas []model.AreaDefinition) (*model.TownRecord, error)
	ListTowns(ctx context.Context) ([]model.TownSummary, error)
	GetTown(ctx context.Context, id model.TownID) (*model.TownSnapshot, error)
	JoinTown(ctx context.Context, id model.TownID, player model.Player) error
	LeaveTown(ctx context.Context, id model.TownID, playerID model.PlayerID) error
	MovePlayer(ctx context.Context, id model.TownID, playerID model.PlayerID, x, y float64, moving bool) (model.PlayerLocation, error)
	HandleAreaCommand(ctx context.Context, townID model.TownID, areaID model.AreaID, playerID model.PlayerID, cmd model.Command) (model.CommandResponse, error)
	GetArea(ctx context.Context, townID model.TownID, areaID model.AreaID) (*model.AreaModel, error)
	GetAreaHistory(ctx context.Context, townID model.TownID, areaID model.AreaID) ([]model.HistoryEntry, error)
	PostChat(ctx context.Context, townID model.TownID, playerID model.PlayerID, body string) (*model.ChatMessage, error)
	GetChat(ctx context.Context, townID model.TownID) ([]model.ChatMessage, error)
	UpdateTown(ctx context.Context, id model.TownID, password, friendlyName string, isPublic bool) (*model.TownRecord, error)
	DeleteTown(ctx context.Context, id model.TownID, password string) error
}

var _ ControllerInterface = (*Controller)(nil)
