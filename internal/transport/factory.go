package transport

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// New selects the concrete backend named by a Host Profile's
// ipc.backend tag. Host Profile validation already rejects unknown
// backends before this is called.
func New(backend string, registry *prometheus.Registry) (Transport, error) {
	switch backend {
	case "socket":
		return NewSocket(), nil
	case "http":
		return NewHTTP(registry), nil
	default:
		return nil, fmt.Errorf("unknown transport backend %q", backend)
	}
}
