package ports

import (
	"context"
	"time"

	"go.trai.ch/turret/internal/core/domain"
)

// Transport sends one query to the resolver service and waits for its reply.
//
//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Send opens a fresh channel to address, sends payload and waits at most timeout for the reply.
	// The reply is only meaningful when the status is domain.SendOK.
	Send(ctx context.Context, address string, payload []byte, timeout time.Duration) ([]byte, domain.SendStatus)
}
