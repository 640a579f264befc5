package api

import (
	"fmt"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/sourceloc"
	"github.com/yacobolo/designsync/internal/utility"
)

// Handler holds the API route handlers.
type Handler struct {
	engine *designsync.Engine
	logger *slog.Logger
}

// NewHandler returns a Handler over engine.
func NewHandler(engine *designsync.Engine, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// Scan handles GET /scan.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Scan(r.Context())
	if err != nil {
		writeError(w, h.logger, "scan", err)
		return
	}
	writeJSON(w, http.StatusOK, newScanResponse(res))
}

// Rescan handles POST /rescan.
func (h *Handler) Rescan(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Rescan(r.Context())
	if err != nil {
		writeError(w, h.logger, "rescan", err)
		return
	}
	writeJSON(w, http.StatusOK, newScanResponse(res))
}

// Apply handles POST /edits. The body is a designsync.Request.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req designsync.Request
	if err := decode(w, r, &req); err != nil {
		writeError(w, h.logger, "apply", err)
		return
	}
	resp, err := h.engine.Apply(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "apply", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Mark handles POST /elements/mark.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	var req ElementRequest
	if err := h.decodeElement(w, r, &req); err != nil {
		writeError(w, h.logger, "mark", err)
		return
	}
	m, err := h.engine.Mark(r.Context(), req.FilePath, hints(req))
	if err != nil {
		writeError(w, h.logger, "mark", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Unmark handles POST /elements/unmark.
func (h *Handler) Unmark(w http.ResponseWriter, r *http.Request) {
	var req UnmarkRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, h.logger, "unmark", err)
		return
	}
	err := validation.ValidateStruct(&req,
		validation.Field(&req.FilePath, validation.Required),
		validation.Field(&req.EID, validation.Required),
	)
	if err != nil {
		writeError(w, h.logger, "unmark", apperr.InvalidRequest(err))
		return
	}
	if err := h.engine.Unmark(r.Context(), req.FilePath, req.EID); err != nil {
		writeError(w, h.logger, "unmark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Inspect handles POST /elements/inspect.
func (h *Handler) Inspect(w http.ResponseWriter, r *http.Request) {
	var req ElementRequest
	if err := h.decodeElement(w, r, &req); err != nil {
		writeError(w, h.logger, "inspect", err)
		return
	}
	el, err := h.engine.Inspect(r.Context(), req.FilePath, hints(req))
	if err != nil {
		writeError(w, h.logger, "inspect", err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

// ParseClasses handles GET /classes/parse?classes=...
func (h *Handler) ParseClasses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utility.ParseClasses(r.URL.Query().Get("classes")))
}

// ValueForClass handles GET /classes/value?class=...
func (h *Handler) ValueForClass(w http.ResponseWriter, r *http.Request) {
	class := r.URL.Query().Get("class")
	if class == "" {
		writeError(w, h.logger, "class value", apperr.InvalidRequest(fmt.Errorf("class: cannot be blank")))
		return
	}
	res, err := utility.ValueForClass(class)
	if err != nil {
		writeError(w, h.logger, "class value", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ClassForValue handles GET /classes/for-value?property=...&value=...&variant=...
func (h *Handler) ClassForValue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	property, value := q.Get("property"), q.Get("value")
	if property == "" || value == "" {
		writeError(w, h.logger, "class for value", apperr.InvalidRequest(fmt.Errorf("property and value are required")))
		return
	}
	class, err := utility.ClassForValue(property, value, q.Get("variant"))
	if err != nil {
		writeError(w, h.logger, "class for value", err)
		return
	}
	writeJSON(w, http.StatusOK, ClassForValueResponse{Property: property, Value: value, Class: class})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cache":  h.engine.CacheStats(),
	})
}

func (h *Handler) decodeElement(w http.ResponseWriter, r *http.Request, req *ElementRequest) error {
	if err := decode(w, r, req); err != nil {
		return err
	}
	err := validation.ValidateStruct(req,
		validation.Field(&req.FilePath, validation.Required),
		validation.Field(&req.Identifier, validation.When(req.EID == "", validation.Required)),
		validation.Field(&req.Line, validation.Min(0)),
	)
	if err != nil {
		return apperr.InvalidRequest(err)
	}
	return nil
}

func hints(req ElementRequest) sourceloc.Hints {
	return sourceloc.Hints{Identifier: req.Identifier, Line: req.Line, Context: req.Context, EID: req.EID}
}
