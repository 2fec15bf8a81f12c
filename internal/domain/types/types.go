// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/sdc-standings/internal/domain/model"
)

// Payload is the published standings document.
type Payload struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Rows        []model.Row `json:"rows"`
}
