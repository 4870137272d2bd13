// Package server provides an HTTP REST server that exposes SimpleLang
// analysis and its associated resources to clients.
//
//	POST   /api/v1/login               - log in and get a fresh JWT
//	DELETE /api/v1/login/{id}          - log out, invalidating all of a user's JWTs
//	POST   /api/v1/tokens              - refresh the token without credentials (auth required)
//	POST   /api/v1/analyze             - run analysis on source without storing it
//	POST   /api/v1/analyses            - store a new named analysis (auth required)
//	GET    /api/v1/analyses            - get own stored analyses (auth required)
//	GET    /api/v1/analyses/{id}         - get a stored analysis (auth required)
//	GET    /api/v1/analyses/{id}/results - re-run all phases on a stored analysis (auth required)
//	PUT    /api/v1/analyses/{id}       - replace a stored analysis (auth required)
//	DELETE /api/v1/analyses/{id}       - delete a stored analysis (auth required)
//	POST   /api/v1/users               - create a new user (admin auth required)
//	GET    /api/v1/users               - get all users (admin auth required)
//	GET    /api/v1/users/{id}          - get a user (auth required)
//	PUT    /api/v1/users/{id}          - replace a user (admin auth required)
//	PATCH  /api/v1/users/{id}          - update a user (auth required)
//	DELETE /api/v1/users/{id}          - delete a user (auth required)
//	GET    /api/v1/info                - get version info on the server
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mawais/slc/server/api"
	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/server/middle"
	"github.com/mawais/slc/server/result"
	"github.com/mawais/slc/server/slcs"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in
// route listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that
		// else treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

// Server is an HTTP REST server that provides SimpleLang analysis and
// associated resources. The zero-value of a Server should not be used
// directly; call New() to get one ready for use.
type Server struct {
	router chi.Router
	api    api.API
	srvc   slcs.Service
}

// New creates a new Server from the given config.
func New(cfg Config) (Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return Server{}, fmt.Errorf("connect DB: %w", err)
	}

	srvc := slcs.Service{DB: db}

	restAPI := api.API{
		Backend:     srvc,
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	return Server{
		router: newRouter(restAPI),
		api:    restAPI,
		srvc:   srvc,
	}, nil
}

// CreateUser creates a user directly in the server's backend, bypassing the
// REST API. It is intended for bootstrapping an initial admin account.
func (s Server) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	return s.srvc.CreateUser(ctx, username, password, email, role)
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost".
// If port is less than 1, it will default to 8080.
//
// This function will not return until the server stops listening, and then
// only with an error.
func (s Server) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, s.router))
}

func newRouter(restAPI api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount(api.PathPrefix, newAPIRouter(restAPI))

	return r
}

func newAPIRouter(restAPI api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount("/login", newLoginRouter(restAPI))
	r.Mount("/tokens", newTokensRouter(restAPI))
	r.Mount("/analyze", newAnalyzeRouter(restAPI))
	r.Mount("/analyses", newAnalysesRouter(restAPI))
	r.Mount("/users", newUsersRouter(restAPI))
	r.Mount("/info", newInfoRouter(restAPI))
	r.HandleFunc("/info/", RedirectNoTrailingSlash)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		result.NotFound().WriteResponse(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(restAPI.UnauthDelay)
		result.MethodNotAllowed(req).WriteResponse(w)
	})

	return r
}

func newLoginRouter(restAPI api.API) chi.Router {
	reqAuth := middle.RequireAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.Post("/", restAPI.HTTPCreateLogin())
	r.With(reqAuth).Delete("/"+p("id:uuid"), restAPI.HTTPDeleteLogin())
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

func newTokensRouter(restAPI api.API) chi.Router {
	reqAuth := middle.RequireAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.With(reqAuth).Post("/", restAPI.HTTPCreateToken())

	return r
}

func newAnalyzeRouter(restAPI api.API) chi.Router {
	optAuth := middle.OptionalAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.With(optAuth).Post("/", restAPI.HTTPAnalyze())

	return r
}

func newAnalysesRouter(restAPI api.API) chi.Router {
	reqAuth := middle.RequireAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.Use(reqAuth)

	r.Get("/", restAPI.HTTPGetAllAnalyses())
	r.Post("/", restAPI.HTTPCreateAnalysis())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", restAPI.HTTPGetAnalysis())
		r.Get("/results", restAPI.HTTPGetAnalysisResults())
		r.HandleFunc("/results/", RedirectNoTrailingSlash)
		r.Put("/", restAPI.HTTPUpdateAnalysis())
		r.Delete("/", restAPI.HTTPDeleteAnalysis())
	})

	return r
}

func newUsersRouter(restAPI api.API) chi.Router {
	reqAuth := middle.RequireAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.Use(reqAuth)

	r.Get("/", restAPI.HTTPGetAllUsers())
	r.Post("/", restAPI.HTTPCreateUser())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", restAPI.HTTPGetUser())
		r.Put("/", restAPI.HTTPReplaceUser())
		r.Patch("/", restAPI.HTTPUpdateUser())
		r.Delete("/", restAPI.HTTPDeleteUser())
	})

	return r
}

func newInfoRouter(restAPI api.API) chi.Router {
	optAuth := middle.OptionalAuth(restAPI.Backend.DB.Users(), restAPI.Secret, restAPI.UnauthDelay, dao.User{})

	r := chi.NewRouter()

	r.With(optAuth).Get("/", restAPI.HTTPGetInfo())

	return r
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same
// URL as the request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	result.Redirection(redirPath).WriteResponse(w)
}
