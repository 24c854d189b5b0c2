package redis

import (
	"fmt"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "guessgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roundKey returns the Redis key for a live Round
func roundKey(id model.RoundID) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, id)
}

// archiveKey returns the Redis key for an archived Round
func archiveKey(id model.RoundID) string {
	return fmt.Sprintf("%s:archive:%s", keyPrefix, id)
}

// sequenceKey returns the Redis key for the round sequence counter
func sequenceKey() string {
	return fmt.Sprintf("%s:round_sequence", keyPrefix)
}
