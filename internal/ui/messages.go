package ui

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
)

// Message types for async operations

// stateMsg carries a fresh snapshot read from the engine.
type stateMsg struct {
	state  *models.CanonicalState
	status models.FetchStatus
}

// tickMsg drives the display refresh between poll cycles.
type tickMsg time.Time
