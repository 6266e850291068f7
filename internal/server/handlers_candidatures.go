package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/importer"
	"github.com/Beviryon/BeCandidature-sub000/internal/server/middleware"
	"github.com/Beviryon/BeCandidature-sub000/internal/types"
)

// requireUser extracts the authenticated user ID, writing a 401 when absent.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {id} path segment, writing a 400 on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidature ID")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleCreateCandidature(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateCandidatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	date, ok := req.ParsedDate()
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application date")
		return
	}

	status := candidature.StatusPending
	if req.Status != "" {
		normalized, ok := candidature.NormalizeStatus(req.Status)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "Unrecognized status: "+req.Status)
			return
		}
		status = normalized
	}

	if err := candidature.ValidateRecord(req.Company, req.Title, date, status, req.Email, time.Now()); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record := &db.Candidature{
		UserID:          userID,
		Company:         req.Company,
		Title:           req.Title,
		ApplicationDate: db.NewDate(date),
		Status:          status,
		ContractType:    req.ContractType,
		Contact:         req.Contact,
		Email:           req.Email,
		Link:            req.Link,
		Notes:           req.Notes,
	}
	if followUp := candidature.ComputeFollowUp(date, status); followUp != nil {
		d := db.NewDate(*followUp)
		record.FollowUpDate = &d
	}

	id, err := s.store.CreateCandidature(r.Context(), record)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.store.GetCandidature(r.Context(), userID, id)
	if err != nil || created == nil {
		s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleListCandidatures(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	filters := db.CandidatureFilters{Company: r.URL.Query().Get("company")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := candidature.NormalizeStatus(raw)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "Unrecognized status: "+raw)
			return
		}
		filters.Status = status
	}

	candidatures, err := s.store.ListCandidatures(r.Context(), userID, filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidatures == nil {
		candidatures = []db.Candidature{}
	}
	s.jsonResponse(w, http.StatusOK, candidatures)
}

func (s *Server) handleGetCandidature(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	c, err := s.store.GetCandidature(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if c == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidature not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCandidature(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateCandidatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	current, err := s.store.GetCandidature(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if current == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidature not found")
		return
	}

	statusChanged, badRequest := mergeCandidature(current, &req)
	if badRequest != "" {
		s.errorResponse(w, http.StatusBadRequest, badRequest)
		return
	}

	// The merged record must satisfy the same invariants as a new one.
	if err := candidature.ValidateRecord(current.Company, current.Title,
		current.ApplicationDate.Time, current.Status, current.Email, time.Now()); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// A status change (or a moved application date) recomputes the follow-up
	// date; rejection clears it.
	if followUp := candidature.ComputeFollowUp(current.ApplicationDate.Time, current.Status); followUp != nil {
		d := db.NewDate(*followUp)
		current.FollowUpDate = &d
	} else {
		current.FollowUpDate = nil
	}

	if err := s.store.UpdateCandidature(r.Context(), current, statusChanged, req.StatusNote); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, current)
}

// mergeCandidature applies non-nil request fields onto the stored record.
// It reports whether the status changed, or a non-empty message when a field
// fails validation.
func mergeCandidature(c *db.Candidature, req *types.UpdateCandidatureRequest) (statusChanged bool, badRequest string) {
	if req.Company != nil {
		c.Company = *req.Company
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.ApplicationDate != nil {
		date, ok := importer.ParseDate(*req.ApplicationDate)
		if !ok {
			return false, "Invalid application date"
		}
		c.ApplicationDate = db.NewDate(date)
	}
	if req.Status != nil {
		status, ok := candidature.NormalizeStatus(*req.Status)
		if !ok {
			return false, "Unrecognized status: " + *req.Status
		}
		if status != c.Status {
			c.Status = status
			statusChanged = true
		}
	}
	if req.ContractType != nil {
		c.ContractType = *req.ContractType
	}
	if req.Contact != nil {
		c.Contact = *req.Contact
	}
	if req.Email != nil {
		if *req.Email != "" && !candidature.ValidEmail(*req.Email) {
			return false, "Invalid email: " + *req.Email
		}
		c.Email = *req.Email
	}
	if req.Link != nil {
		c.Link = *req.Link
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	return statusChanged, ""
}

func (s *Server) handleDeleteCandidature(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteCandidature(r.Context(), userID, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Candidature not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListStatusHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	// Ownership check before exposing history.
	c, err := s.store.GetCandidature(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if c == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidature not found")
		return
	}

	history, err := s.store.ListStatusHistory(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if history == nil {
		history = []db.StatusChange{}
	}
	s.jsonResponse(w, http.StatusOK, history)
}
