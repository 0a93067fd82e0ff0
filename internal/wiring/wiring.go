// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/turret/internal/adapters/config"
	_ "go.trai.ch/turret/internal/adapters/logger"
	_ "go.trai.ch/turret/internal/adapters/snapshot"
	_ "go.trai.ch/turret/internal/adapters/zmq"
	// Register app and engine nodes.
	_ "go.trai.ch/turret/internal/app"
	_ "go.trai.ch/turret/internal/engine/resolver"
)
