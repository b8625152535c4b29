package models

import "time"

// Task is a member of the active task set. Completion is not a flag left
// set: completing a task migrates it into the victory log, so a task in
// the active set is never completed at rest.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// LogEntry is a "small win": either logged directly by the user or created
// automatically when a task is completed, in which case it reuses the
// task's id and text and stamps the completion moment.
type LogEntry struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}
