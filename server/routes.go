package server

import (
	"net/http"

	"github.com/jrsteele09/taskflow-server/memberships"
)

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth())

	// Preflight requests carry no method pattern match of their own; the
	// CORS middleware answers them before this handler runs.
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, api...))

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), authed...))

	// PROJECTS
	s.RegisterRouteHandler("POST "+RouteProjects, ChainMiddleware(s.CreateProjectHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteProjects, ChainMiddleware(s.ListProjectsHandler(), authed...))
	s.RegisterRouteHandler("GET "+RouteProject, ChainMiddleware(s.GetProjectHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess())...))
	s.RegisterRouteHandler("PATCH "+RouteProject, ChainMiddleware(s.UpdateProjectHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleAdmin, memberships.RoleOwner))...))

	// MEMBERSHIPS
	s.RegisterRouteHandler("GET "+RouteProjectMemberships, ChainMiddleware(s.ListMembersHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess())...))
	s.RegisterRouteHandler("POST "+RouteProjectMemberships, ChainMiddleware(s.AddMemberHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleAdmin, memberships.RoleOwner))...))
	s.RegisterRouteHandler("PATCH "+RouteProjectMembership, ChainMiddleware(s.UpdateMemberRoleHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleOwner))...))
	s.RegisterRouteHandler("DELETE "+RouteProjectMembership, ChainMiddleware(s.RemoveMemberHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleAdmin, memberships.RoleOwner))...))

	// TASKS
	s.RegisterRouteHandler("GET "+RouteProjectTasks, ChainMiddleware(s.ListTasksHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess())...))
	s.RegisterRouteHandler("POST "+RouteProjectTasks, ChainMiddleware(s.CreateTaskHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleContributor, memberships.RoleAdmin, memberships.RoleOwner))...))
	s.RegisterRouteHandler("GET "+RouteProjectTask, ChainMiddleware(s.GetTaskHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess())...))
	s.RegisterRouteHandler("PATCH "+RouteProjectTask, ChainMiddleware(s.UpdateTaskHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleContributor, memberships.RoleAdmin, memberships.RoleOwner))...))
	s.RegisterRouteHandler("DELETE "+RouteProjectTask, ChainMiddleware(s.DeleteTaskHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleAdmin, memberships.RoleOwner))...))

	// ATTACHMENTS
	s.RegisterRouteHandler("GET "+RouteTaskAttachments, ChainMiddleware(s.ListAttachmentsHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess())...))
	s.RegisterRouteHandler("POST "+RouteTaskAttachments, ChainMiddleware(s.CreateAttachmentHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleContributor, memberships.RoleAdmin, memberships.RoleOwner))...))
	s.RegisterRouteHandler("POST "+RouteTaskAttachmentPresign, ChainMiddleware(s.PresignAttachmentHandler(),
		s.APIMiddleware(s.RequireAuth(), s.RequireProjectAccess(memberships.RoleContributor, memberships.RoleAdmin, memberships.RoleOwner))...))

	// OPERATIONAL
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
}
