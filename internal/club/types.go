package club

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidMatch   = errors.New("invalid match")
	ErrInvalidName    = errors.New("player name is required")
)
