package server

import (
	"net/http"

	"github.com/jrsteele09/taskflow-server/attachments"
)

func (s *Server) ListAttachmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.services.Attachments.List(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) PresignAttachmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FileName    string `json:"fileName"`
			ContentType string `json:"contentType"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		upload, err := s.services.Attachments.PresignUpload(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"), req.FileName, req.ContentType)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, upload)
	}
}

func (s *Server) CreateAttachmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attachments.CreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		attachment, err := s.services.Attachments.Create(r.Context(), r.PathValue("projectId"), r.PathValue("taskId"), UserIDFromContext(r.Context()), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, attachment)
	}
}
