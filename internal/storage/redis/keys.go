package redis

import (
	"fmt"

	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Key prefix for all match data
const keyPrefix = "dotsboxes"

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchChannel returns the pub/sub channel for a match's change feed
func matchChannel(id model.MatchID) string {
	return fmt.Sprintf("%s:match_updates:%s", keyPrefix, id)
}

// openMatchesKey returns the Redis key for the SET of joinable matches
func openMatchesKey() string {
	return fmt.Sprintf("%s:idx:open_matches", keyPrefix)
}

// activeMatchesKey returns the Redis key for the SET of in-play matches,
// swept by the turn timer
func activeMatchesKey() string {
	return fmt.Sprintf("%s:idx:active_matches", keyPrefix)
}
