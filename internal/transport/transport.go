// Package transport implements the Transport component (C9): concrete
// backends that accept wire requests and hand them to a Handler,
// replying with whatever bytes the Handler returns.
package transport

// Handler answers one request's raw bytes with one response's raw
// bytes. The Request Dispatcher's Dispatch method satisfies this.
type Handler func(requestBytes []byte) []byte

// Transport is the external interface Host Runtime programs against,
// regardless of which concrete backend a Host Profile selects.
type Transport interface {
	Bind(endpoint string) error
	SetHandler(h Handler)
	Run() error
	Stop() error
}
