package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPTransport exposes the wire protocol over a gin-based HTTP server:
// POST /v0/rpc carries one wire request per body and replies with one
// wire response; GET /healthz is a liveness probe; GET /metrics serves
// the dispatcher's Prometheus registry when one is supplied.
//
// Grounded on controllers/api.go's RegisterRoutes/Healthz and
// internal/middleware/metrics.go's request-timing middleware, adapted
// from the teacher's bespoke service/component/tunnel routes to the
// single generic RPC route this host speaks.
type HTTPTransport struct {
	router   *gin.Engine
	srv      *http.Server
	handler  Handler
	Registry *prometheus.Registry
}

// NewHTTP builds an HTTPTransport. registry may be nil to disable /metrics.
func NewHTTP(registry *prometheus.Registry) *HTTPTransport {
	t := &HTTPTransport{Registry: registry}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", t.healthz)
	router.POST("/v0/rpc", t.rpc)
	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
	t.router = router
	return t
}

// Bind records the listen address; the actual listener is opened by Run.
func (t *HTTPTransport) Bind(endpoint string) error {
	t.srv = &http.Server{Addr: endpoint, Handler: t.router}
	return nil
}

// SetHandler installs the function invoked once per POST /v0/rpc.
func (t *HTTPTransport) SetHandler(h Handler) { t.handler = h }

// Run serves until Stop shuts the server down.
func (t *HTTPTransport) Run() error {
	err := t.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the HTTP server.
func (t *HTTPTransport) Stop() error {
	if t.srv == nil {
		return nil
	}
	return t.srv.Shutdown(context.Background())
}

func (t *HTTPTransport) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (t *HTTPTransport) rpc(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Data(http.StatusBadRequest, "application/json",
			[]byte(`{"ok":false,"error":{"code":"E_BAD_ARG","message":"failed to read request body"}}`))
		return
	}
	resp := t.handler(body)
	c.Data(http.StatusOK, "application/json", resp)
}
