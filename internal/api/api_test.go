package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardtown/gamearea-go/internal/api"
	"github.com/boardtown/gamearea-go/internal/api/response"
	"github.com/boardtown/gamearea-go/internal/factory"
	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/services/auth"
	"github.com/boardtown/gamearea-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		TownController: app.TownController,
		HubManager:     app.HubManager,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func createGuestPlayer(t *testing.T, ts *testServer, name string) string {
	t.Helper()

	body := map[string]string{"user_name": name}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func defaultAreas() []map[string]any {
	return []map[string]any{
		{
			"id":     "c4",
			"type":   "ConnectFourArea",
			"bounds": map[string]float64{"x": 0, "y": 0, "width": 100, "height": 100},
		},
		{
			"id":     "lounge",
			"type":   "ConversationArea",
			"bounds": map[string]float64{"x": 200, "y": 0, "width": 50, "height": 50},
		},
	}
}

func createTown(t *testing.T, ts *testServer, token string) string {
	t.Helper()

	body := map[string]any{
		"friendly_name":   "Testville",
		"is_public":       true,
		"update_password": "secret",
		"areas":           defaultAreas(),
	}
	rr := ts.request(http.MethodPost, "/api/v1/towns", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Town
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"user_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.UserName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.UserName)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/towns", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndJoinTown(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	townID := createTown(t, ts, token1)

	// Created town appears in public listings
	rr := ts.request(http.MethodGet, "/api/v1/towns", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var listResp response.TownList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Towns, 1)
	assert.Equal(t, model.TownID(townID), listResp.Towns[0].ID)

	// Both players join
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joinResp response.TownDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joinResp))
	assert.Len(t, joinResp.Occupants, 2)
	assert.Len(t, joinResp.Areas, 2)

	// Joining twice conflicts
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token2)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestTownResponsesOmitUpdatePassword(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	rr := ts.request(http.MethodGet, "/api/v1/towns/"+townID, nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")
}

func TestMoveWithinTown(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	rr := ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// Walk into the connect four area
	body := map[string]any{"x": 10.0, "y": 10.0, "moving": false}
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/move", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var moveResp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &moveResp))
	assert.Equal(t, model.AreaID("c4"), moveResp.Location.AreaID)

	// Moving without joining the town first conflicts
	token2 := createGuestPlayer(t, ts, "Bob")
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/move", body, token2)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	townID := createTown(t, ts, token1)

	for _, token := range []string{token1, token2} {
		rr := ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)

		body := map[string]any{"x": 10.0, "y": 10.0, "moving": false}
		rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/move", body, token)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	commandPath := "/api/v1/towns/" + townID + "/areas/c4/command"

	// Both join the game; Alice seats first as red
	rr := ts.request(http.MethodPost, commandPath, map[string]any{"type": "JoinGame"}, token1)
	require.Equal(t, http.StatusOK, rr.Code)

	var joinResp model.CommandResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joinResp))
	gameID := joinResp.GameID
	require.NotEmpty(t, gameID)

	rr = ts.request(http.MethodPost, commandPath, map[string]any{"type": "JoinGame"}, token2)
	require.Equal(t, http.StatusOK, rr.Code)

	// Start
	rr = ts.request(http.MethodPost, commandPath, map[string]any{"type": "StartGame", "game_id": gameID}, token1)
	require.Equal(t, http.StatusOK, rr.Code)

	// Alice stacks column 0 for the win
	moves := []struct {
		token string
		row   int
		col   int
	}{
		{token1, 5, 0},
		{token2, 5, 1},
		{token1, 4, 0},
		{token2, 4, 1},
		{token1, 3, 0},
		{token2, 3, 1},
		{token1, 2, 0},
	}
	for _, m := range moves {
		body := map[string]any{
			"type":    "GameMove",
			"game_id": gameID,
			"move":    map[string]int{"row": m.row, "col": m.col},
		}
		rr = ts.request(http.MethodPost, commandPath, body, m.token)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	// History records the win for Alice
	rr = ts.request(http.MethodGet, "/api/v1/towns/"+townID+"/areas/c4/history", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var historyResp response.AreaHistory
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &historyResp))
	require.Len(t, historyResp.History, 1)
	assert.Equal(t, map[string]int{"Alice": 1, "Bob": 0}, historyResp.History[0].Scores)

	// A move after the game is over fails
	body := map[string]any{
		"type":    "GameMove",
		"game_id": gameID,
		"move":    map[string]int{"row": 5, "col": 2},
	}
	rr = ts.request(http.MethodPost, commandPath, body, token2)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameCommandErrors(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	rr := ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	commandPath := "/api/v1/towns/" + townID + "/areas/c4/command"

	// Unknown command type
	rr = ts.request(http.MethodPost, commandPath, map[string]any{"type": "Dance"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Game commands against a conversation area
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/areas/lounge/command",
		map[string]any{"type": "JoinGame"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Commands against an unknown area
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/areas/nowhere/command",
		map[string]any{"type": "JoinGame"}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Starting with no game in progress
	rr = ts.request(http.MethodPost, commandPath, map[string]any{"type": "StartGame", "game_id": "g1"}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChatEndpoints(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	rr := ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/join", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/chat", map[string]string{"body": "hello"}, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/towns/"+townID+"/chat", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var chatResp response.ChatLog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chatResp))
	require.Len(t, chatResp.Messages, 1)
	assert.Equal(t, "hello", chatResp.Messages[0].Body)
	assert.Equal(t, "Alice", chatResp.Messages[0].UserName)

	// Empty message rejected
	rr = ts.request(http.MethodPost, "/api/v1/towns/"+townID+"/chat", map[string]string{"body": ""}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateAndDeleteTown(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	// Wrong password forbidden
	body := map[string]any{"update_password": "wrong", "friendly_name": "Renamed", "is_public": false}
	rr := ts.request(http.MethodPatch, "/api/v1/towns/"+townID, body, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	body["update_password"] = "secret"
	rr = ts.request(http.MethodPatch, "/api/v1/towns/"+townID, body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var townResp response.Town
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &townResp))
	assert.Equal(t, "Renamed", townResp.FriendlyName)
	assert.False(t, townResp.IsPublic)

	rr = ts.request(http.MethodDelete, "/api/v1/towns/"+townID, map[string]string{"update_password": "wrong"}, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/towns/"+townID, map[string]string{"update_password": "secret"}, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/towns/"+townID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownTownReturns404(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/towns/NOPE", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/towns/NOPE/join", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListAreas(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	townID := createTown(t, ts, token)

	rr := ts.request(http.MethodGet, "/api/v1/towns/"+townID+"/areas", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AreaList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Areas, 2)

	byID := map[model.AreaID]model.AreaType{}
	for _, a := range resp.Areas {
		byID[a.ID] = a.Type
	}
	assert.Equal(t, model.AreaConnectFour, byID["c4"])
	assert.Equal(t, model.AreaConversation, byID["lounge"])
}

func TestListTownsWithoutSession(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	createTown(t, ts, token)

	rr := ts.request(http.MethodGet, "/api/v1/towns", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.TownList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Towns, 1)
}
