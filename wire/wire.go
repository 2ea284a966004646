// Package wire opens the byte streams irpc endpoints run over: plain TCP
// or a websocket carried as a net.Conn.
package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/coder/websocket"
)

// IsWebsocket reports whether addr names a websocket endpoint.
func IsWebsocket(addr string) bool {
	return strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://")
}

// Dial connects to a collector. Addresses starting with ws:// or wss://
// use a websocket, anything else is dialed as TCP.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	if IsWebsocket(addr) {
		ws, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial %s: %w", addr, err)
		}
		// image replies exceed the default 32KiB message limit
		ws.SetReadLimit(-1)
		slog.Debug("wire: websocket connected", "addr", addr)
		// The net.Conn must outlive the dial context.
		return websocket.NetConn(context.Background(), ws, websocket.MessageBinary), nil
	}

	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", addr, err)
	}
	slog.Debug("wire: tcp connected", "addr", addr)
	return nc, nil
}
