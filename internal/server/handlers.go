package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

type streakResponse struct {
	streak.Result
	Today  string `json:"today"`
	AtRisk bool   `json:"at_risk"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, foldertree.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, foldertree.ErrCycle),
		errors.Is(err, storage.ErrAlreadyDeleted),
		errors.Is(err, storage.ErrNotDeleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// queryDay parses an optional YYYY-MM-DD query parameter.
func queryDay(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	return utils.ParseDay(v)
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	atRisk, result, err := s.svc.AtRisk(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streakResponse{
		Result: result,
		Today:  utils.FormatDay(s.svc.Today()),
		AtRisk: atRisk,
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	start, err := queryDay(r, "start")
	if err != nil {
		badRequest(w, "start must be YYYY-MM-DD")
		return
	}
	end, err := queryDay(r, "end")
	if err != nil {
		badRequest(w, "end must be YYYY-MM-DD")
		return
	}
	cal, err := s.svc.Calendar(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months")
	if err != nil || months < 0 {
		badRequest(w, "months must be a positive integer")
		return
	}
	if months == 0 {
		months = s.svc.Settings().ConsistencyWindowMonths
	}
	rate, err := s.svc.Consistency(r.Context(), months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"months": months, "rate": rate})
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil || days < 0 {
		badRequest(w, "days must be a positive integer")
		return
	}
	summary, err := s.svc.Mood(r.Context(), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.EntryFilter{
		StartDay: q.Get("start"),
		EndDay:   q.Get("end"),
		FolderID: q.Get("folder"),
	}
	for _, d := range []string{filter.StartDay, filter.EndDay} {
		if d != "" && !utils.ValidateDateFormat(d) {
			badRequest(w, "start and end must be YYYY-MM-DD")
			return
		}
	}
	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		badRequest(w, "limit must be a positive integer")
		return
	}
	filter.Limit = limit

	entries, err := s.svc.Entries(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day      string  `json:"day"`
		Title    string  `json:"title"`
		Content  string  `json:"content"`
		Mood     int     `json:"mood"`
		FolderID *string `json:"folder_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	entry, err := s.svc.AddEntry(r.Context(), models.Entry{
		Day:      req.Day,
		Title:    req.Title,
		Content:  req.Content,
		Mood:     req.Mood,
		FolderID: req.FolderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RestoreEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFolderTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.svc.FolderTree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := tree.Err(); err != nil && r.URL.Query().Get("strict") == "true" {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleFolderPath(w http.ResponseWriter, r *http.Request) {
	path, err := s.svc.FolderPath(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

func (s *Server) handleAddFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		ParentID    *string `json:"parent_id"`
		Icon        string  `json:"icon"`
		Color       string  `json:"color"`
		Description string  `json:"description"`
		IsPinned    bool    `json:"is_pinned"`
		SortOrder   int     `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	folder, err := s.svc.AddFolder(r.Context(), models.Folder{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		IsPinned:    req.IsPinned,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleToggleFolder(w http.ResponseWriter, r *http.Request) {
	expanded, err := s.svc.ToggleFolder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_expanded": expanded})
}

func (s *Server) handleMoveFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if err := s.svc.MoveFolder(r.Context(), chi.URLParam(r, "id"), req.ParentID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
