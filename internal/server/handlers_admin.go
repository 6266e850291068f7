package server

import (
	"net/http"

	"github.com/google/uuid"
)

// requireAdmin checks that the authenticated user has the admin role,
// writing the error response when they don't.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return uuid.Nil, false
	}

	isAdmin, err := s.userService.IsAdmin(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return uuid.Nil, false
	}
	if !isAdmin {
		err := &ErrForbidden{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) handleListPendingUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	users, err := s.userService.ListPending(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, users)
}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := s.userService.Approve(r.Context(), targetID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Approval email is best-effort; the approval itself already succeeded.
	if s.mailer != nil {
		if err := s.mailer.Send(r.Context(), user.Email,
			"Votre compte BeCandidature est activé",
			"<p>Bonjour "+user.Name+",</p><p>Votre compte a été approuvé. Vous pouvez maintenant vous connecter.</p>",
		); err != nil {
			s.logMailFailure(user.Email, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, user)
}
