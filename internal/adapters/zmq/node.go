package zmq

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/turret/internal/adapters/logger"
	"go.trai.ch/turret/internal/core/ports"
)

// NodeID is the unique identifier for the transport Graft node.
const NodeID graft.ID = "adapter.transport"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Transport, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTransport(log), nil
		},
	})
}
