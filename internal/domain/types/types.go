// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/memedash/internal/domain/aggregate"
)

// NotAvailable is rendered in place of any absent value.
const NotAvailable = "N/A"

// Row is one line of the coin table, with every value already rendered.
type Row struct {
	Identifier string `json:"identifier"`
	QueryTerm  string `json:"query_term"`
	Overall    string `json:"overall"`
	Sentiment  string `json:"sentiment"`
	Engagement string `json:"engagement"`
	Stability  string `json:"stability"`
	Risk       string `json:"risk"`
}

// Meta describes the list a view was computed from.
type Meta struct {
	Status    string     `json:"status"`
	Loading   bool       `json:"loading"`
	Message   string     `json:"message,omitempty"`
	Version   uint64     `json:"version"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Dashboard is the aggregate view together with the list status.
type Dashboard struct {
	Meta
	aggregate.View
}

// Coins is the rendered coin table.
type Coins struct {
	Meta
	Count int   `json:"count"`
	Rows  []Row `json:"rows"`
}
