package ports

import "go.trai.ch/turret/internal/core/domain"

// SettingsLoader builds the resolver settings once, before any engine exists.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsLoader interface {
	// ClientID returns the identity of the host application.
	ClientID() string
	// Load builds validated settings for clientID.
	Load(clientID string) (domain.Settings, error)
}
