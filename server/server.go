// Package server exposes the HTTP API: auth, projects, memberships,
// tasks and attachments. Routing uses the standard mux with method
// patterns; cross-cutting concerns are layered with ChainMiddleware.
package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/taskflow-server/access"
	"github.com/jrsteele09/taskflow-server/attachments"
	"github.com/jrsteele09/taskflow-server/auth"
	"github.com/jrsteele09/taskflow-server/internal/config"
	"github.com/jrsteele09/taskflow-server/memberships"
	"github.com/jrsteele09/taskflow-server/projects"
	"github.com/jrsteele09/taskflow-server/tasks"
)

// Services groups the domain services the handlers dispatch to.
type Services struct {
	Auth        *auth.Service
	Projects    *projects.Service
	Memberships *memberships.Service
	Tasks       *tasks.Service
	Attachments *attachments.Service
}

type Server struct {
	env        string
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	services   Services
	authorizer *access.Authorizer
	metrics    *Metrics
}

func New(config config.Config, services Services, authorizer *access.Authorizer) (*Server, error) {
	if services.Auth == nil {
		return nil, errors.New("[server.New] Auth service is required")
	}
	if services.Projects == nil {
		return nil, errors.New("[server.New] Projects service is required")
	}
	if services.Memberships == nil {
		return nil, errors.New("[server.New] Memberships service is required")
	}
	if services.Tasks == nil {
		return nil, errors.New("[server.New] Tasks service is required")
	}
	if services.Attachments == nil {
		return nil, errors.New("[server.New] Attachments service is required")
	}
	if authorizer == nil {
		return nil, errors.New("[server.New] Authorizer is required")
	}

	s := &Server{
		mux:        http.NewServeMux(),
		config:     config,
		services:   services,
		authorizer: authorizer,
		metrics:    NewMetrics(),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
