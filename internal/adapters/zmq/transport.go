// Package zmq implements the resolver transport over ZeroMQ REQ/REP sockets.
package zmq

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
	"go.trai.ch/zerr"
)

const defaultDialRetry = 100 * time.Millisecond

// Transport implements ports.Transport.
// Every Send opens its own REQ socket and closes it before returning; nothing is pooled.
type Transport struct {
	log       ports.Logger
	dialRetry time.Duration
}

// Option configures a Transport.
type Option func(*Transport)

// WithDialRetry sets the pause between connection attempts within one Send.
func WithDialRetry(d time.Duration) Option {
	return func(t *Transport) {
		t.dialRetry = d
	}
}

// NewTransport creates a Transport reporting socket errors to log.
func NewTransport(log ports.Logger, opts ...Option) *Transport {
	t := &Transport{log: log, dialRetry: defaultDialRetry}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send sends payload to address and waits for a single reply.
// The whole exchange, including connecting, sending and closing, is bounded by timeout.
func (t *Transport) Send(
	ctx context.Context,
	address string,
	payload []byte,
	timeout time.Duration,
) ([]byte, domain.SendStatus) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sock := zmq4.NewReq(ctx,
		zmq4.WithDialerTimeout(timeout),
		zmq4.WithDialerRetry(t.dialRetry),
	)
	var closeOnce sync.Once
	closeSock := func() {
		closeOnce.Do(func() {
			_ = sock.Close()
		})
	}
	defer closeSock()

	if err := sock.Dial(address); err != nil {
		return nil, t.fail(ctx, address, "dial", err)
	}

	// zmq4 reads ignore the socket context, so the exchange runs aside and a deadline
	// closes the socket to release the blocked read.
	done := make(chan exchange, 1)
	go func() {
		done <- roundTrip(sock, payload)
	}()

	var res exchange
	select {
	case res = <-done:
	case <-ctx.Done():
		closeSock()
		<-done
		return nil, t.fail(ctx, address, "recv", ctx.Err())
	}
	if res.err != nil {
		return nil, t.fail(ctx, address, res.op, res.err)
	}

	reply := trimReply(bytes.Join(res.msg.Frames, nil))
	if len(reply) == 0 {
		t.log.Error(zerr.With(domain.ErrEmptyReply, "address", address))
		return nil, domain.SendTransportError
	}
	return reply, domain.SendOK
}

type exchange struct {
	msg zmq4.Msg
	op  string
	err error
}

func roundTrip(sock zmq4.Socket, payload []byte) exchange {
	if err := sock.Send(zmq4.NewMsg(payload)); err != nil {
		return exchange{op: "send", err: err}
	}
	msg, err := sock.Recv()
	if err != nil {
		return exchange{op: "recv", err: err}
	}
	return exchange{msg: msg}
}

func (t *Transport) fail(ctx context.Context, address, op string, err error) domain.SendStatus {
	status := domain.SendTransportError
	if isTimeout(ctx, err) {
		status = domain.SendTimeout
	}
	t.log.Error(zerr.With(zerr.With(zerr.With(
		zerr.Wrap(err, domain.ErrTransportFailed.Error()),
		"address", address), "op", op), "status", status.String()))
	return status
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// trimReply cuts the reply at the first NUL byte, since servers written against the C API
// send NUL-terminated strings. An all-zero reply becomes empty.
func trimReply(reply []byte) []byte {
	if i := bytes.IndexByte(reply, 0); i >= 0 {
		reply = reply[:i]
	}
	return reply
}

var _ ports.Transport = (*Transport)(nil)
