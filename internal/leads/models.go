// Package leads captures and manages funnel contacts: Postgres is the system
// of record, with best-effort fan-out to search indexing, notifications, and
// the follow-up workflow.
package leads

import "time"

// Lead is a captured funnel contact. Email and phone are each optional, but a
// lead must carry at least one of them to be reachable.
type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	OverallScore int       `json:"overallScore,omitempty"`
	Band         string    `json:"band,omitempty"`
	Source       string    `json:"source,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpsertResult reports whether the upsert matched an existing lead or created
// a new one. Exactly one of the flags is set.
type UpsertResult struct {
	Created bool   `json:"created,omitempty"`
	Updated bool   `json:"updated,omitempty"`
	ID      string `json:"id"`
}
