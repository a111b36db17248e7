package app

import (
	"time"

	"github.com/campuscollab/server/internal/shared/config"
)

// pingTimeout bounds the database check behind /health.
const pingTimeout = 2 * time.Second

// LoadConfig loads application configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load()
}
