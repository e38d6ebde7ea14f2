// internal/game/log.go
package game

import "time"

// Log entry kinds. Clients style log lines by kind.
const (
	LogInfo         = "info"
	LogSystem       = "system"
	LogTurn         = "turn"
	LogSuccess      = "success"
	LogFail         = "fail"
	LogClaimSuccess = "claim-success"
	LogClaimPartial = "claim-partial"
	LogClaimFail    = "claim-fail"
)

// LogEntry is one line of a room's append-only event log.
type LogEntry struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// addLog appends a timestamped entry to the room log. Assumes lock is held.
func (r *Room) addLog(message, kind string) {
	r.Log = append(r.Log, LogEntry{
		Message:   message,
		Type:      kind,
		Timestamp: time.Now().UnixMilli(),
	})
}
