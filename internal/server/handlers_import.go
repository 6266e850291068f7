package server

import (
	"net/http"
	"time"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/importer"
	"github.com/Beviryon/BeCandidature-sub000/internal/types"
)

// maxImportBytes caps uploaded workbooks at 10 MiB.
const maxImportBytes = 10 << 20

// handleImportXLSX accepts a multipart upload with a "file" field, parses it
// as a workbook and persists every non-empty row. Rows that fail to persist
// are reported, not rolled back.
func (s *Server) handleImportXLSX(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	results, err := importer.Parse(file, time.Now())
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Unreadable workbook: "+err.Error())
		return
	}

	report := types.ImportReport{}
	for _, result := range results {
		rowReport := types.ImportRowReport{Row: result.Row, Warnings: result.Warnings}

		record := &db.Candidature{
			UserID:          userID,
			Company:         result.Draft.Company,
			Title:           result.Draft.Title,
			ApplicationDate: db.NewDate(result.Draft.ApplicationDate),
			Status:          result.Draft.Status,
			ContractType:    result.Draft.ContractType,
			Contact:         result.Draft.Contact,
			Email:           result.Draft.Email,
			Link:            result.Draft.Link,
			Notes:           result.Draft.Notes,
		}
		if followUp := candidature.ComputeFollowUp(result.Draft.ApplicationDate, result.Draft.Status); followUp != nil {
			d := db.NewDate(*followUp)
			record.FollowUpDate = &d
		}

		id, err := s.store.CreateCandidature(r.Context(), record)
		if err != nil {
			rowReport.Error = err.Error()
			report.Failed++
		} else {
			rowReport.ID = id.String()
			report.Created++
		}
		report.Rows = append(report.Rows, rowReport)
	}

	s.jsonResponse(w, http.StatusOK, report)
}
