package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boardtown/gamearea-go/internal/api/middleware"
	"github.com/boardtown/gamearea-go/internal/api/request"
	"github.com/boardtown/gamearea-go/internal/api/response"
	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/town"
)

// TownHandler handles town-related endpoints
type TownHandler struct {
	towns town.ControllerInterface
}

// NewTownHandler creates a new town handler
func NewTownHandler(towns town.ControllerInterface) *TownHandler {
	return &TownHandler{
		towns: towns,
	}
}

// Create handles POST /api/v1/towns
func (h *TownHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.FriendlyName == "" {
		WriteError(w, NewInvalidRequestError("friendly_name is required"))
		return
	}
	if req.UpdatePassword == "" {
		WriteError(w, NewInvalidRequestError("update_password is required"))
		return
	}

	record, err := h.towns.CreateTown(r.Context(), req.FriendlyName, req.IsPublic, req.Capacity, req.UpdatePassword, req.Areas)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.TownFromModel(record))
}

// List handles GET /api/v1/towns
func (h *TownHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.towns.ListTowns(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TownList{Towns: summaries})
}

// Get handles GET /api/v1/towns/{town_id}
func (h *TownHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TownID(mux.Vars(r)["town_id"])

	snapshot, err := h.towns.GetTown(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TownDetailFromSnapshot(snapshot))
}

// Join handles POST /api/v1/towns/{town_id}/join
func (h *TownHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TownID(mux.Vars(r)["town_id"])

	if err := h.towns.JoinTown(r.Context(), id, *player); err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.towns.GetTown(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TownDetailFromSnapshot(snapshot))
}

// Leave handles POST /api/v1/towns/{town_id}/leave
func (h *TownHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TownID(mux.Vars(r)["town_id"])

	if err := h.towns.LeaveTown(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Move handles POST /api/v1/towns/{town_id}/move
func (h *TownHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TownID(mux.Vars(r)["town_id"])

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	location, err := h.towns.MovePlayer(r.Context(), id, player.ID, req.X, req.Y, req.Moving)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponse{Location: location})
}

// Update handles PATCH /api/v1/towns/{town_id}
func (h *TownHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.TownID(mux.Vars(r)["town_id"])

	var req request.UpdateTownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.FriendlyName == "" {
		WriteError(w, NewInvalidRequestError("friendly_name is required"))
		return
	}

	record, err := h.towns.UpdateTown(r.Context(), id, req.UpdatePassword, req.FriendlyName, req.IsPublic)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TownFromModel(record))
}

// Delete handles DELETE /api/v1/towns/{town_id}
func (h *TownHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TownID(mux.Vars(r)["town_id"])

	var req request.DeleteTownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.towns.DeleteTown(r.Context(), id, req.UpdatePassword); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetChat handles GET /api/v1/towns/{town_id}/chat
func (h *TownHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	id := model.TownID(mux.Vars(r)["town_id"])

	messages, err := h.towns.GetChat(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChatLog{Messages: messages})
}

// PostChat handles POST /api/v1/towns/{town_id}/chat
func (h *TownHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TownID(mux.Vars(r)["town_id"])

	var req request.PostChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Body == "" {
		WriteError(w, NewInvalidRequestError("body is required"))
		return
	}

	message, err := h.towns.PostChat(r.Context(), id, player.ID, req.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, message)
}
