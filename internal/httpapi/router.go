// Package httpapi implements the gateway's route handlers (spec §4.6) and
// wires the fixed request pipeline (spec §4.5) in front of them.
package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ST0x-Technology/st0x.rest.api/internal/auth"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/middleware"
	"github.com/ST0x-Technology/st0x.rest.api/internal/ratelimit"
	"github.com/ST0x-Technology/st0x.rest.api/internal/registry"
	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
	"github.com/ST0x-Technology/st0x.rest.api/internal/tokenlist"
)

// Deps bundles every collaborator the route handlers need. A single
// struct (rather than package-level globals) keeps router construction
// explicit and testable.
type Deps struct {
	Cell      *registry.Cell
	Store     *store.Store
	Verifier  *auth.Verifier
	Limiter   *ratelimit.Limiter
	Logger    *logging.Logger
	Tokens    *tokenlist.Cache
	TraceSink io.Writer
	// Loader loads and validates a registry provider from a URL (spec
	// §4.2 step 2). internal/engine/memory.Load satisfies this signature.
	Loader func(ctx context.Context, url string) (engine.RegistryProvider, error)
}

// NewRouter builds the full gorilla/mux router: public routes (health,
// metrics) get only the ambient pipeline; protected routes additionally
// get the auth guard (and admin gate for /admin/*), per spec §2's
// request-flow diagram.
func NewRouter(d *Deps) *mux.Router {
	if d.TraceSink == nil {
		d.TraceSink = io.Discard
	}

	r := mux.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(d.TraceSink))
	r.Use(middleware.GlobalRateLimit(d.Limiter))

	// Public routes carry no principal, so UsageLogger is wired directly
	// here; its key-id field is simply omitted for these requests.
	public := r.NewRoute().Subrouter()
	public.Use(middleware.UsageLogger(d.Logger))
	public.HandleFunc("/health", d.handleHealth).Methods(http.MethodGet)
	public.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// UsageLogger is registered after AuthGuard so it runs on the request
	// AuthGuard forwards downstream — the one carrying auth.WithPrincipal's
	// context value — and can include the key-id per spec §4.5 step 4.
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthGuard(d.Verifier, d.Limiter))
	protected.Use(middleware.UsageLogger(d.Logger))

	protected.HandleFunc("/v1/tokens", d.handleTokens).Methods(http.MethodGet)
	protected.HandleFunc("/v1/swap/quote", d.handleSwapQuote).Methods(http.MethodPost)
	protected.HandleFunc("/v1/swap/calldata", d.handleSwapCalldata).Methods(http.MethodPost)
	protected.HandleFunc("/v1/order/dca", d.handleDeployDca).Methods(http.MethodPost)
	protected.HandleFunc("/v1/order/solver", d.handleDeploySolver).Methods(http.MethodPost)
	protected.HandleFunc("/v1/order/cancel", d.handleCancelOrder).Methods(http.MethodPost)
	protected.HandleFunc("/v1/order/{orderHash}", d.handleGetOrder).Methods(http.MethodGet)
	protected.HandleFunc("/v1/orders/tx/{txHash}", d.handleOrdersByTx).Methods(http.MethodGet)
	protected.HandleFunc("/v1/orders/{address}", d.handleOrdersByAddress).Methods(http.MethodGet)
	protected.HandleFunc("/v1/trades/tx/{txHash}", d.handleTradesByTx).Methods(http.MethodGet)
	protected.HandleFunc("/v1/trades/{address}", d.handleTradesByAddress).Methods(http.MethodGet)
	protected.HandleFunc("/registry", d.handleGetRegistry).Methods(http.MethodGet)

	admin := protected.NewRoute().Subrouter()
	admin.Use(middleware.AdminGate())
	admin.HandleFunc("/admin/registry", d.handlePutRegistry).Methods(http.MethodPut)

	return r
}
