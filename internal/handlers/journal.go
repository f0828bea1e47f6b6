package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/logger"
	"github.com/AnshRaj112/serenify-journal/internal/middleware"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"github.com/AnshRaj112/serenify-journal/internal/services"
)

// maxBodyBytes bounds request bodies; a full-length entry in multi-byte text fits.
const maxBodyBytes = 64 << 10

// JournalHandler serves the /api/journal routes. The owner id comes from
// middleware.RequireOwner; body fields never override it.
type JournalHandler struct {
	journal *services.JournalService
	log     *zap.Logger
}

func NewJournalHandler(journal *services.JournalService, log *zap.Logger) *JournalHandler {
	return &JournalHandler{journal: journal, log: logger.OrNop(log)}
}

type CreateJournalRequest struct {
	Context string `json:"context"`
	Mood    string `json:"mood"`
	Insight string `json:"insight"`
}

type UpdateJournalRequest struct {
	Context string `json:"context"`
}

type AnalyzeRequest struct {
	Context string `json:"context"`
}

type JournalEntryResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Entry   models.JournalEntry `json:"entry"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *JournalHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
	}
	return ownerID, ok
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Create handles POST /api/journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req CreateJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.journal.Create(r.Context(), ownerID, services.CreateEntryInput{
		Context: req.Context,
		Mood:    req.Mood,
		Insight: req.Insight,
	})
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to create journal entry")
		return
	}

	writeJSON(w, http.StatusCreated, JournalEntryResponse{
		Success: true,
		Message: "Journal entry created successfully",
		Entry:   entry,
	})
}

// List handles GET /api/journal?page=&limit=.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	limit := queryInt(q.Get("limit"), services.DefaultPageLimit)

	result, err := h.journal.List(r.Context(), ownerID, page, limit)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch journal entries")
		return
	}
	if result.Entries == nil {
		result.Entries = []models.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /api/journal/{id}.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req UpdateJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.journal.Update(r.Context(), chi.URLParam(r, "id"), ownerID, req.Context)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to update journal entry")
		return
	}
	writeJSON(w, http.StatusOK, JournalEntryResponse{Success: true, Entry: entry})
}

// Delete handles DELETE /api/journal/{id}.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.journal.Delete(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		writeServiceError(w, h.log, err, "Failed to delete journal entry")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Journal entry deleted"})
}

// Analyze handles POST /api/journal/analyze. Nothing is stored.
func (h *JournalHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owner(w, r); !ok {
		return
	}
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	analysis, err := h.journal.Analyze(r.Context(), req.Context)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to analyze entry")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Stats handles GET /api/journal/stats?tz=.
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	loc, err := parseTimezone(r.URL.Query().Get("tz"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid timezone")
		return
	}

	stats, err := h.journal.Stats(r.Context(), ownerID, loc)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to compute journal stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// queryInt parses v, returning def when it is missing or not a number.
func queryInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func parseTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}
