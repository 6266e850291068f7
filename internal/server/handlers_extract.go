package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Beviryon/BeCandidature-sub000/internal/extract"
	"github.com/Beviryon/BeCandidature-sub000/internal/types"
)

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	var req types.ExtractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	s.jsonResponse(w, http.StatusOK, extract.FromText(req.Text))
}

func (s *Server) handleExtractURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	var req types.ExtractURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}

	draft, err := s.extractor.FromURL(r.Context(), req.URL, req.Hint)
	if err != nil {
		if errors.Is(err, extract.ErrInvalidURL) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}
