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

// AreaHandler handles area-related endpoints
type AreaHandler struct {
	towns town.ControllerInterface
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(towns town.ControllerInterface) *AreaHandler {
	return &AreaHandler{
		towns: towns,
	}
}

// List handles GET /api/v1/towns/{town_id}/areas
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	townID := model.TownID(vars["town_id"])

	snapshot, err := h.towns.GetTown(r.Context(), townID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AreaList{Areas: snapshot.Areas})
}

// Get handles GET /api/v1/towns/{town_id}/areas/{area_id}
func (h *AreaHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	townID := model.TownID(vars["town_id"])
	areaID := model.AreaID(vars["area_id"])

	area, err := h.towns.GetArea(r.Context(), townID, areaID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, area)
}

// GetHistory handles GET /api/v1/towns/{town_id}/areas/{area_id}/history
func (h *AreaHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	townID := model.TownID(vars["town_id"])
	areaID := model.AreaID(vars["area_id"])

	history, err := h.towns.GetAreaHistory(r.Context(), townID, areaID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AreaHistory{History: history})
}

// Command handles POST /api/v1/towns/{town_id}/areas/{area_id}/command
func (h *AreaHandler) Command(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	vars := mux.Vars(r)
	townID := model.TownID(vars["town_id"])
	areaID := model.AreaID(vars["area_id"])

	var req request.AreaCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Type == "" {
		WriteError(w, NewInvalidRequestError("type is required"))
		return
	}

	resp, err := h.towns.HandleAreaCommand(r.Context(), townID, areaID, player.ID, req.ToCommand())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
