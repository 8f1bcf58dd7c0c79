package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"streamalerts/internal/common"
	"streamalerts/internal/dbmysql"
)

// PreferenceAdmin is the preference management surface the API exposes.
// Implemented by dbmysql.PreferenceRepository.
type PreferenceAdmin interface {
	ListByPerson(ctx context.Context, personID int64) ([]*dbmysql.FilterPreference, error)
	Set(ctx context.Context, pref *dbmysql.FilterPreference) error
	Delete(ctx context.Context, personID int64, channel, category string) error
}

// Handler exposes the pipeline over HTTP: event intake, the polling/read
// surface, the archive listing, and preference management.
type Handler struct {
	pipeline *Pipeline
	prefs    PreferenceAdmin
	archive  ArchiveReader
}

// NewHandler builds the HTTP surface. archive may be nil when the archive
// store is disabled; its endpoint then reports 404.
func NewHandler(pipeline *Pipeline, prefs PreferenceAdmin, archive ArchiveReader) *Handler {
	return &Handler{pipeline: pipeline, prefs: prefs, archive: archive}
}

// RegisterRoutes attaches all pipeline routes to an /api/v1 subrouter.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/events", h.SubmitEvent).Methods("POST")
	api.HandleFunc("/alerts/{recipientID}", h.ListAlerts).Methods("GET")
	api.HandleFunc("/alerts/{recipientID}/unread", h.UnreadCount).Methods("GET")
	api.HandleFunc("/alerts/{recipientID}/archive", h.ListArchivedAlerts).Methods("GET")
	api.HandleFunc("/alerts/{recipientID}/{alertID}/read", h.MarkRead).Methods("PUT")
	api.HandleFunc("/alerts/{recipientID}/read-all", h.MarkAllRead).Methods("POST")
	api.HandleFunc("/preferences/{personID}", h.ListPreferences).Methods("GET")
	api.HandleFunc("/preferences/{personID}", h.SetPreference).Methods("POST")
	api.HandleFunc("/preferences/{personID}", h.DeletePreference).Methods("DELETE")
}

// AlertResponse is the wire shape of one alert in listings.
type AlertResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Message         string    `json:"message"`
	URL             string    `json:"url,omitempty"`
	HighPriority    bool      `json:"high_priority"`
	Read            bool      `json:"read"`
	OccurrenceCount int       `json:"occurrence_count"`
	ActorName       string    `json:"actor_name,omitempty"`
	NotifiedAt      time.Time `json:"notified_at"`
}

// SubmitEvent accepts one domain event. Validation failures come back as
// 400; accepted events are queued for the worker pool.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Validate up front so the producer hears about a bad event; the actual
	// delivery happens on the worker pool.
	if _, err := NewEnvelope(h.pipeline.taxonomy, event); err != nil {
		if IsInvalidEvent(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "event rejected", http.StatusBadRequest)
		return
	}

	h.pipeline.DeliverAsync(event)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := pathID(w, r, "recipientID")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	alerts, err := h.pipeline.List(r.Context(), recipientID, limit, offset, unreadOnly)
	if err != nil {
		log.Printf("List alerts for %d failed: %v", recipientID, err)
		http.Error(w, "failed to list alerts", http.StatusInternalServerError)
		return
	}

	responses := make([]AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = AlertResponse{
			ID:              alert.ID,
			Type:            alert.Type,
			Message:         alert.Message,
			URL:             alert.URL,
			HighPriority:    alert.HighPriority,
			Read:            alert.IsRead,
			OccurrenceCount: alert.OccurrenceCount,
			ActorName:       alert.ActorName,
			NotifiedAt:      alert.NotifiedAt,
		}
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := pathID(w, r, "recipientID")
	if !ok {
		return
	}

	count, err := h.pipeline.UnreadCount(r.Context(), recipientID)
	if err != nil {
		log.Printf("Unread count for %d failed: %v", recipientID, err)
		http.Error(w, "failed to get unread count", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

// ListArchivedAlerts returns alerts the retention sweeper moved to the
// archive store, newest first.
func (h *Handler) ListArchivedAlerts(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "archive not enabled", http.StatusNotFound)
		return
	}

	recipientID, ok := pathID(w, r, "recipientID")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	archived, err := h.archive.ListByRecipient(r.Context(), recipientID, int64(limit))
	if err != nil {
		log.Printf("List archived alerts for %d failed: %v", recipientID, err)
		http.Error(w, "failed to list archived alerts", http.StatusInternalServerError)
		return
	}

	responses := make([]AlertResponse, len(archived))
	for i, doc := range archived {
		responses[i] = AlertResponse{
			ID:              doc.AlertID,
			Type:            doc.Type,
			Message:         doc.Message,
			URL:             doc.URL,
			HighPriority:    doc.HighPriority,
			Read:            true,
			OccurrenceCount: doc.OccurrenceCount,
			ActorName:       doc.ActorName,
			NotifiedAt:      doc.NotifiedAt,
		}
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := pathID(w, r, "recipientID")
	if !ok {
		return
	}
	alertID := mux.Vars(r)["alertID"]

	err := h.pipeline.MarkRead(r.Context(), alertID, recipientID)
	if err != nil {
		if errors.Is(err, dbmysql.ErrAlertNotFound) {
			http.Error(w, "alert not found", http.StatusNotFound)
			return
		}
		log.Printf("Mark read %s for %d failed: %v", alertID, recipientID, err)
		http.Error(w, "failed to mark alert read", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := pathID(w, r, "recipientID")
	if !ok {
		return
	}

	if err := h.pipeline.MarkAllRead(r.Context(), recipientID); err != nil {
		log.Printf("Mark all read for %d failed: %v", recipientID, err)
		http.Error(w, "failed to mark alerts read", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// PreferenceRequest is the wire shape of one suppression row.
type PreferenceRequest struct {
	Channel  string `json:"channel"`
	Category string `json:"category"`
}

func (h *Handler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	personID, ok := pathID(w, r, "personID")
	if !ok {
		return
	}

	prefs, err := h.prefs.ListByPerson(r.Context(), personID)
	if err != nil {
		log.Printf("List preferences for %d failed: %v", personID, err)
		http.Error(w, "failed to list preferences", http.StatusInternalServerError)
		return
	}

	responses := make([]PreferenceRequest, len(prefs))
	for i, pref := range prefs {
		responses[i] = PreferenceRequest{Channel: pref.Channel, Category: pref.Category}
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	personID, ok := pathID(w, r, "personID")
	if !ok {
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !validChannel(req.Channel) || !validCategory(req.Category) {
		http.Error(w, "unknown channel or category", http.StatusBadRequest)
		return
	}

	pref := &dbmysql.FilterPreference{
		PersonID: personID,
		Channel:  req.Channel,
		Category: req.Category,
	}
	if err := h.prefs.Set(r.Context(), pref); err != nil {
		log.Printf("Set preference for %d failed: %v", personID, err)
		http.Error(w, "failed to set preference", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	personID, ok := pathID(w, r, "personID")
	if !ok {
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.prefs.Delete(r.Context(), personID, req.Channel, req.Category); err != nil {
		log.Printf("Delete preference for %d failed: %v", personID, err)
		http.Error(w, "failed to delete preference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validChannel(channel string) bool {
	switch common.Channel(channel) {
	case common.ChannelInApp, common.ChannelEmail:
		return true
	}
	return false
}

func validCategory(category string) bool {
	switch common.Category(category) {
	case common.CategoryPostToPersonalStream, common.CategoryComment,
		common.CategoryFollowPerson, common.CategoryFollowGroup:
		return true
	}
	return false
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Response encode failed: %v", err)
	}
}
