package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/turret/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/turret/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/turret/internal/adapters/snapshot" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/turret/internal/adapters/zmq"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
)

// NodeID is the unique identifier for the resolver engine Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			snapshot.NodeID,
			zmq.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}

			transport, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}

			return New(settings, transport, snapshots, log)
		},
	})
}
