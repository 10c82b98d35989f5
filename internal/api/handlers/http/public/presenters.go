package public

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

const maxBodyBytes = 64 << 10

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	var verr *e.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Info("validation failed", slog.String("path", r.URL.Path), slog.Any("fields", verr.Fields))
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"errors": verr.Fields,
		})
	case errors.Is(err, e.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	case errors.Is(err, e.ErrForbidden):
		l.Warn("forbidden", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "you can only modify your own alerts"})
	case errors.Is(err, e.ErrDuplicateConfirmation):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "you have already acted on this alert"})
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "alert not found"})
	case errors.Is(err, e.ErrInvalidCoordinates), errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
	default:
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}

// decode reads exactly one JSON object and rejects unknown fields.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		h.log(r).Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	return true
}

func (h *Handler) alertID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// queryParser collects every malformed query value so a request with several
// bad parameters gets them all back in one 422. Range and required checks run
// later in the service and only see requests that parsed cleanly.
type queryParser struct {
	r    *http.Request
	verr *e.ValidationError
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{r: r, verr: &e.ValidationError{}}
}

func (p *queryParser) raw(name string) (string, bool) {
	v := p.r.URL.Query().Get(name)
	return v, v != ""
}

func (p *queryParser) float(name string) *float64 {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.verr.Add(name, "must be a number")
		return nil
	}
	return &f
}

func (p *queryParser) int(name string) int {
	v := p.optionalInt(name)
	if v == nil {
		return 0
	}
	return *v
}

func (p *queryParser) optionalInt(name string) *int {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		p.verr.Add(name, "must be an integer")
		return nil
	}
	return &i
}

func (p *queryParser) string(name string) *string {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	return &s
}

func (p *queryParser) err() error {
	return p.verr.OrNil()
}
