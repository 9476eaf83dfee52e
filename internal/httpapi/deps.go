package httpapi

import (
	"database/sql"
	"sync/atomic"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/research"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic store holding config.Config; handlers read a fresh
	// snapshot per request.
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Run orchestration
	Manager *research.Manager

	// NewRunner builds a runner from the current config snapshot.
	// Injected so handler tests can substitute fakes.
	NewRunner func(cfg config.Config) *research.Runner
}
