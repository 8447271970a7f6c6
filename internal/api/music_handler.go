package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rgoodwin/waveforge/internal/api/shared"
	"github.com/rgoodwin/waveforge/internal/task"
)

// TaskManager defines the task operations the HTTP layer depends on.
type TaskManager interface {
	// Submit schedules generation for the description and returns the task ID.
	Submit(description string) (uuid.UUID, error)

	// Status returns a snapshot of the task's current state.
	Status(id uuid.UUID) task.Snapshot

	// ArtifactPath returns the location of a completed task's audio file.
	ArtifactPath(id uuid.UUID) (string, bool)
}

// GenerateMusicRequest represents the request body for starting a generation.
type GenerateMusicRequest struct {
	Description string `json:"description" validate:"required,min=10,max=2000"`
}

// GenerateMusicResponse tells the client where to poll and where the audio
// will eventually be served from.
type GenerateMusicResponse struct {
	TaskID    string `json:"task_id"`
	StatusURL string `json:"status_url"`
	AudioURL  string `json:"audio_url"`
}

// StatusResponse represents the polled state of a generation task.
type StatusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// MusicHandler handles music generation HTTP requests.
type MusicHandler struct {
	tasks  TaskManager
	logger *slog.Logger
}

// NewMusicHandler creates a new MusicHandler.
func NewMusicHandler(tasks TaskManager, logger *slog.Logger) *MusicHandler {
	return &MusicHandler{
		tasks:  tasks,
		logger: logger,
	}
}

// GenerateMusic handles POST /api/generate-music requests. It validates the
// description, submits a generation task and responds immediately with 202
// Accepted; clients poll the status URL on their own schedule rather than
// holding the request open while the track renders.
func (h *MusicHandler) GenerateMusic(w http.ResponseWriter, r *http.Request) {
	var req GenerateMusicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Description is required and must be between 10 and 2000 characters")
		return
	}

	id, err := h.tasks.Submit(req.Description)
	if err != nil {
		h.logger.Error("failed to submit generation task", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to start music generation")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateMusicResponse{
		TaskID:    id.String(),
		StatusURL: "/api/status/" + id.String(),
		AudioURL:  "/api/audio/" + id.String(),
	})
}

// GetStatus handles GET /api/status/{taskID} requests. Unknown identifiers
// are a normal outcome and still answer 200, carrying status "error" with a
// not-found message, matching what pollers expect for expired tasks.
func (h *MusicHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshotFor(r)
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:   wireStatus(snap.Status),
		Progress: snap.Progress,
		Error:    snap.Error,
	})
}

// GetAudio handles GET /api/audio/{taskID} requests, serving the generated
// WAV file for a completed task.
func (h *MusicHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Audio file not found")
		return
	}

	path, ok := h.tasks.ArtifactPath(id)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Audio file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}

// snapshotFor resolves the task ID route parameter into a status snapshot.
// Malformed identifiers were never issued, so they read as not found.
func (h *MusicHandler) snapshotFor(r *http.Request) task.Snapshot {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		return task.Snapshot{Status: task.StatusError, Error: "task not found"}
	}
	return h.tasks.Status(id)
}

// wireStatus maps internal task states onto the wire vocabulary
// (pending|processing|completed|error); clients see failed tasks and
// unknown tasks uniformly as "error" with the message disambiguating.
func wireStatus(s task.Status) string {
	if s == task.StatusFailed {
		return string(task.StatusError)
	}
	return string(s)
}
