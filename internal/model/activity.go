package model

import "time"

// Action names recorded in the activity journal.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionDuplicated = "duplicated"
	ActionSignedIn   = "signed_in"
	ActionSignedOut  = "signed_out"
)

// Activity is one journal entry for a mutating operation or a session change.
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Document  string    `json:"document,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
