package redis

import (
	"fmt"

	"github.com/boardtown/gamearea-go/internal/model"
)

// Key prefix for all town data
const keyPrefix = "btgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// townKey returns the Redis key for a TownRecord
func townKey(id model.TownID) string {
	return fmt.Sprintf("%s:town:%s", keyPrefix, id)
}

// townIndexKey returns the Redis key for the SET of all town keys
func townIndexKey() string {
	return fmt.Sprintf("%s:idx:towns", keyPrefix)
}
