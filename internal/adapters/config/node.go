package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the settings loader Graft node.
	LoaderNodeID graft.ID = "adapter.settings_loader"
	// NodeID is the unique identifier for the settings Graft node.
	NodeID graft.ID = "adapter.settings"
)

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			loader, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return domain.Settings{}, err
			}
			return LoadSettings(loader)
		},
	})
}

// LoadSettings loads the settings for the client the loader reports.
func LoadSettings(loader ports.SettingsLoader) (domain.Settings, error) {
	return loader.Load(loader.ClientID())
}

var _ ports.SettingsLoader = (*Loader)(nil)
