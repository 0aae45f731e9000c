// Package backend decides at startup whether a real data backend is
// configured. When the connection settings are missing or still carry the
// scaffold placeholders, the service runs in mock mode: no database handle
// is opened and the in-process mock identity store backs authentication.
package backend

import (
	"github.com/internlink/internlink/internal/config"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/logger"
)

// Placeholder values shipped in the example configuration. A value equal
// to one of these is treated the same as an absent value.
const (
	PlaceholderDatabaseURL = "your_database_url"
	PlaceholderServiceKey  = "your_service_key"
)

// Client holds the optional database handle. DB is nil in mock mode.
type Client struct {
	DB       *db.PostgresDB
	mockMode bool
}

// configured reports whether both connection settings carry real values.
// Checks are plain string comparisons, no connection attempt is made here.
// An empty URL forces mock mode regardless of the key.
func configured(databaseURL, serviceKey string) bool {
	if databaseURL == "" || databaseURL == PlaceholderDatabaseURL {
		return false
	}
	if serviceKey == "" || serviceKey == PlaceholderServiceKey {
		return false
	}
	return true
}

// New inspects the configuration once and either connects to Postgres or
// returns a nil-handle client flagged for mock mode. A failed connection
// attempt is an error, not a fallback: only unconfigured settings select
// mock mode.
func New(cfg *config.Config) (*Client, error) {
	if !configured(cfg.Backend.DatabaseURL, cfg.Backend.ServiceKey) {
		logger.Warn().Msg("Backend connection not configured, using mock data. Set backend.databaseUrl and backend.serviceKey to connect a real backend.")
		return &Client{DB: nil, mockMode: true}, nil
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("Backend database connected")
	return &Client{DB: database, mockMode: false}, nil
}

// MockMode reports whether the service is running without a real backend
func (c *Client) MockMode() bool {
	return c.mockMode
}

// Close releases the database handle if one was opened
func (c *Client) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
}
