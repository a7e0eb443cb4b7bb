package server

import (
	"net/http"

	"github.com/jrsteele09/taskflow-server/tasks"
)

func (s *Server) ListTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := tasks.ListFilters{Search: query.Get("search")}
		if raw := query.Get("status"); raw != "" {
			status := tasks.Status(raw)
			filters.Status = &status
		}
		if raw := query.Get("assigneeId"); raw != "" {
			filters.AssigneeID = &raw
		}

		result, err := s.services.Tasks.List(r.Context(), r.PathValue("projectId"), filters)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tasks.CreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		task, err := s.services.Tasks.Create(r.Context(), r.PathValue("projectId"), UserIDFromContext(r.Context()), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, task)
	}
}

func (s *Server) GetTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := s.services.Tasks.Get(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func (s *Server) UpdateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params tasks.UpdateParams
		if err := readJSON(r, &params); err != nil {
			writeError(w, err)
			return
		}

		task, err := s.services.Tasks.Update(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"), params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func (s *Server) DeleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.services.Tasks.Delete(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
