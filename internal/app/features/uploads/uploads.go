// Package uploads exposes the JSON endpoints behind the dashboard's
// upload panel.
//
// No file bytes ever arrive here: the client submits file metadata, the
// staging store validates and holds it, and "start" runs the simulated
// transfer. Items that reach success become file entries in the
// dashboard listing.
package uploads

import (
	"context"
	"errors"
	"net/http"
	"time"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/jsonutil"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/sizeutil"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the upload staging API.
type Handler struct {
	staging *stagingstore.Store
	entries *entrystore.Store
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
}

// NewHandler creates a new uploads Handler.
func NewHandler(
	staging *stagingstore.Store,
	entries *entrystore.Store,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		staging: staging,
		entries: entries,
		errLog:  errLog,
		logger:  logger,
	}
}

// Routes returns a chi.Router with upload API routes mounted.
// All routes require a session; callers get JSON 401s, not redirects.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requireSessionJSON)

	r.Post("/stage", h.stage)
	r.Get("/status", h.status)
	r.Post("/start", h.start)
	r.Post("/{id}/remove", h.remove)

	return r
}

// requireSessionJSON rejects unauthenticated calls with a JSON 401.
func requireSessionJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); !ok {
			jsonutil.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// stageInput is the metadata the panel submits per selected file.
type stageInput struct {
	FileName    string `json:"file_name"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// stage validates one file and adds it to the staging area.
func (h *Handler) stage(w http.ResponseWriter, r *http.Request) {
	var input stageInput
	if err := jsonutil.Decode(r, &input); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}
	if input.FileName == "" {
		jsonutil.BadRequest(w, "file_name is required")
		return
	}
	if input.SizeBytes < 0 {
		jsonutil.BadRequest(w, "size_bytes must not be negative")
		return
	}

	item, err := h.staging.Stage(input.FileName, input.SizeBytes, input.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, stagingstore.ErrTooLarge):
			jsonutil.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, stagingstore.ErrTypeNotAllowed),
			errors.Is(err, stagingstore.ErrTooMany):
			jsonutil.BadRequest(w, err.Error())
		default:
			h.errLog.Log(r, "failed to stage upload", err)
			jsonutil.InternalError(w, "failed to stage upload")
		}
		return
	}

	h.logger.Info("upload staged",
		zap.String("id", item.ID),
		zap.String("file", item.FileName),
		zap.Int64("bytes", item.SizeBytes))
	jsonutil.Created(w, item)
}

// status returns the staging area snapshot.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]any{
		"items":   h.staging.Items(),
		"running": h.staging.Running(),
	})
}

// start kicks off the simulated transfer for all pending items.
// The batch runs on the background context, not the request context:
// it must keep ticking after this response is written. Shutdown stops
// it through the staging store.
func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	started := h.staging.Start(context.Background(), h.onBatchDone)
	if !started {
		jsonutil.OK(w, map[string]any{
			"started": false,
			"running": h.staging.Running(),
		})
		return
	}

	h.logger.Info("upload batch started")
	jsonutil.OK(w, map[string]any{"started": true, "running": true})
}

// remove drops a pending item from the staging area.
func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch err := h.staging.Remove(id); {
	case err == nil:
		jsonutil.NoContent(w)
	case errors.Is(err, stagingstore.ErrNotFound):
		jsonutil.NotFound(w, "staged upload not found")
	case errors.Is(err, stagingstore.ErrNotPending):
		jsonutil.Error(w, http.StatusConflict, "upload already started")
	default:
		h.errLog.Log(r, "failed to remove staged upload", err)
		jsonutil.InternalError(w, "failed to remove staged upload")
	}
}

// onBatchDone turns every successful upload into a dashboard file entry.
func (h *Handler) onBatchDone(completed []models.StagedUpload) {
	now := time.Now().UTC()
	for _, item := range completed {
		entry := h.entries.Add(models.Entry{
			Name:       item.FileName,
			Kind:       models.KindFile,
			SizeLabel:  sizeutil.Format(item.SizeBytes),
			CreatedAt:  now,
			ModifiedAt: now,
		})
		h.logger.Info("upload finished, entry added",
			zap.String("upload_id", item.ID),
			zap.String("entry_id", entry.ID),
			zap.String("name", entry.Name))
	}
}
