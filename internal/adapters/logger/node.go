package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/turret/internal/adapters/config"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFromSettings(settings), nil
		},
	})
}
