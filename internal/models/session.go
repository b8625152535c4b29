package models

import "time"

// TimerSession is a committed focus interval. Sessions are created only by
// the timer state machine on a stop transition and are immutable once
// created.
type TimerSession struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"` // whole seconds
	Date      string    `json:"date"`     // YYYY-MM-DD calendar day of EndTime, used for grouping
}

// TimerState carries the accumulated focus-seconds counter on the wire.
type TimerState struct {
	TotalSeconds int `json:"totalSeconds"`
}
