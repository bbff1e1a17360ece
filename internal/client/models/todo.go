// Package models defines the client-side view of server resources.
package models

import "time"

type Todo struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoPatch carries the fields to change; nil fields are left alone.
type TodoPatch struct {
	Description *string `json:"description,omitempty"`
	Done        *bool   `json:"done,omitempty"`
}
