package server

import (
	"net/http"

	"github.com/jrsteele09/taskflow-server/projects"
)

func (s *Server) CreateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projects.CreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		project, err := s.services.Projects.Create(r.Context(), UserIDFromContext(r.Context()), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, project)
	}
}

func (s *Server) ListProjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *projects.Status
		if raw := r.URL.Query().Get("status"); raw != "" {
			value := projects.Status(raw)
			status = &value
		}

		result, err := s.services.Projects.ListForUser(r.Context(), UserIDFromContext(r.Context()), status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) GetProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		membership := MembershipFromContext(r.Context())

		project, err := s.services.Projects.Get(r.Context(), r.PathValue("projectId"), membership.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func (s *Server) UpdateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var updates projects.UpdateParams
		if err := readJSON(r, &updates); err != nil {
			writeError(w, err)
			return
		}

		membership := MembershipFromContext(r.Context())
		project, err := s.services.Projects.Update(r.Context(), r.PathValue("projectId"), updates, membership.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}
