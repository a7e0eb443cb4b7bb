package server

import (
	"net/http"

	"github.com/jrsteele09/taskflow-server/memberships"
)

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.services.Memberships.ListMembers(r.Context(), r.PathValue("projectId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func (s *Server) AddMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memberships.AddMemberRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		member, err := s.services.Memberships.AddMember(r.Context(), r.PathValue("projectId"), UserIDFromContext(r.Context()), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, member)
	}
}

func (s *Server) UpdateMemberRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role memberships.Role `json:"role"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		member, err := s.services.Memberships.UpdateMemberRole(r.Context(), r.PathValue("projectId"), r.PathValue("membershipId"), req.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, member)
	}
}

func (s *Server) RemoveMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.services.Memberships.RemoveMember(r.Context(), r.PathValue("projectId"), r.PathValue("membershipId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
