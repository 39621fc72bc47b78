package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"uno-server/pkg/deck"
)

const logMessageLimit = 25

// LogMessage is a line in the game's log
// If PlayerName is set, the message is meant to be read as "{player} did X"
type LogMessage struct {
	UUID       string     `json:"uuid"`
	PlayerName string     `json:"playerName,omitempty"`
	Card       *deck.Card `json:"card,omitempty"`
	Message    string     `json:"message"`
	Time       time.Time  `json:"time"`
}

func newLogMessage(playerName string, card *deck.Card, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:       uuid.New().String(),
		PlayerName: playerName,
		Card:       card,
		Message:    fmt.Sprintf(format, a...),
		Time:       time.Now(),
	}
}

// addLogMessages adds a log message, keeping the last logMessageLimit messages
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages ...*LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
