package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Beviryon/BeCandidature-sub000/internal/ai"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/importer"
	"github.com/Beviryon/BeCandidature-sub000/internal/types"
)

func (s *Server) handleCreateRelance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.CreateRelanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// Ownership check before touching history.
	c, err := s.store.GetCandidature(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if c == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidature not found")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, ok := importer.ParseDate(req.Date)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "Invalid relance date")
			return
		}
		date = parsed
	}

	relance := &db.Relance{
		CandidatureID: id,
		Date:          db.NewDate(date),
		Type:          req.Type,
		Note:          req.Note,
	}
	relanceID, err := s.store.AddRelance(r.Context(), relance)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": relanceID.String()})
}

func (s *Server) handleListRelances(w http.ResponseWriter, r *http.Request) {
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

	relances, err := s.store.ListRelances(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if relances == nil {
		relances = []db.Relance{}
	}
	s.jsonResponse(w, http.StatusOK, relances)
}

func (s *Server) handleDraftRelance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if s.drafter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI drafting is not configured")
		return
	}

	var req types.DraftRelanceRequest
	if r.Body != nil {
		// Body is optional; an empty one means defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
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

	relances, err := s.store.ListRelances(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	msg, err := s.drafter.DraftRelance(r.Context(), ai.RelanceInput{
		Company:         c.Company,
		Title:           c.Title,
		Contact:         c.Contact,
		ApplicationDate: c.ApplicationDate.Time,
		Status:          c.Status,
		RelanceCount:    len(relances),
		Tone:            req.Tone,
		Language:        req.Language,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Drafting failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.DraftRelanceResponse{Subject: msg.Subject, Body: msg.Body})
}
