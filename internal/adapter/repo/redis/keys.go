package redisrepo

import "fmt"

const keyPrefix = "omerta"

func timerKey(playerID int64, name string) string {
	return fmt.Sprintf("%s:timer:%d:%s", keyPrefix, playerID, name)
}

// timersForPlayerIndexKey returns the key of the SET holding a player's
// timer names, used to enumerate without a scan.
func timersForPlayerIndexKey(playerID int64) string {
	return fmt.Sprintf("%s:idx:timers:%d", keyPrefix, playerID)
}
