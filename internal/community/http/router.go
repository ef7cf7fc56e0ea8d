package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/jwtx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"

	_ "github.com/aussiebroadwan/huddle/api/community" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	InviteService     *service.InviteService
	MembershipService *service.MembershipService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerMembers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Huddle Community Service API
//	@version		0.1.0
//	@description	Invitation and membership management for Huddle communities.
//	@description
//	@description				Invitations are single-use, time-bounded tokens. The service stores only a
//	@description				SHA-256 fingerprint of each token; the plaintext is returned once at creation.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/huddle
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token minted by the platform identity service. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	createHandler := &InviteCreateHandler{InviteService: r.InviteService}
	listHandler := &InviteListHandler{InviteService: r.InviteService}
	acceptHandler := &InviteAcceptHandler{InviteService: r.InviteService}
	revokeHandler := &InviteRevokeHandler{InviteService: r.InviteService}

	authn := httpx.AuthnMiddleware(r.verifier)

	// Creating, listing and revoking invites are admin operations; the
	// community-level authorization check lives in the service.
	r.Mux.Handle("POST /v1/communities/{communityID}/invites",
		httpx.Chain(createHandler, authn))
	r.Mux.Handle("GET /v1/communities/{communityID}/invites",
		httpx.Chain(listHandler, authn))
	r.Mux.Handle("POST /v1/communities/{communityID}/invites/{invitationID}/revoke",
		httpx.Chain(revokeHandler, authn))

	// Accepting is open to any authenticated user; the token itself carries
	// the authorization.
	r.Mux.Handle("POST /v1/invites/accept",
		httpx.Chain(acceptHandler, authn))
}

func (r *Router) registerMembers() {
	listHandler := &MembersListHandler{MembershipService: r.MembershipService}
	removeHandler := &MemberRemoveHandler{MembershipService: r.MembershipService}

	authn := httpx.AuthnMiddleware(r.verifier)

	// Listing and removal require an admin role before the service runs the
	// per-community check.
	adminOnly := httpx.RequireAnyRole(adminRoles()...)

	r.Mux.Handle("GET /v1/communities/{communityID}/members",
		httpx.Chain(listHandler, authn, adminOnly))
	r.Mux.Handle("DELETE /v1/communities/{communityID}/members/{memberID}",
		httpx.Chain(removeHandler, authn, adminOnly))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
