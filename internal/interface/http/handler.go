package http

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
	"github.com/yanqian/shelter-console/pkg/metrics"
)

// ViewSource is the read side of the shared view state.
type ViewSource interface {
	Snapshot() viewstate.Snapshot
	Subscribe() (<-chan viewstate.Snapshot, func())
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	submissions submission.Service
	catalog     catalog.Service
	view        ViewSource
	metrics     *metrics.Recorder
	page        *template.Template
	logger      *slog.Logger

	mu       sync.Mutex
	lastForm forecast.FormInput
}

// NewHandler constructs the root HTTP handler.
func NewHandler(submissions submission.Service, catalogSvc catalog.Service, view ViewSource, recorder *metrics.Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		submissions: submissions,
		catalog:     catalogSvc,
		view:        view,
		metrics:     recorder,
		page:        parsePage(),
		logger:      logger.With("component", "http.handler"),
	}
}

// PredictionResponse is returned by the JSON prediction endpoint.
type PredictionResponse struct {
	Outcome submission.Outcome `json:"outcome"`
	View    viewstate.Snapshot `json:"view"`
}

// Index renders the console page.
func (h *Handler) Index(c *gin.Context) {
	snapshot := h.view.Snapshot()
	form := h.form()
	if form.Date == "" {
		form.Date = snapshot.DefaultDate
	}
	c.HTML(http.StatusOK, pageName, pageData{
		View:    snapshot,
		Form:    form,
		Catalog: h.catalog.Catalog(c.Request.Context()),
	})
}

// SubmitForm handles the native form post and redirects to the panel that
// should be scrolled into view.
func (h *Handler) SubmitForm(c *gin.Context) {
	var in forecast.FormInput
	if err := c.ShouldBind(&in); err != nil {
		abortWithError(c, NewHTTPError(codeInvalidRequest, errMessage(err), err))
		return
	}
	outcome := h.submissions.Submit(c.Request.Context(), in)
	if outcome.Status != submission.StatusRejected {
		h.rememberForm(in)
	}
	c.Redirect(http.StatusSeeOther, "/"+anchorFor(h.view.Snapshot().Focus))
}

// Predict runs one submission for API clients.
func (h *Handler) Predict(c *gin.Context) {
	var in forecast.FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(codeInvalidRequest, errMessage(err), err))
		return
	}

	outcome := h.submissions.Submit(c.Request.Context(), in)
	if outcome.Status == submission.StatusSucceeded || outcome.Status == submission.StatusInvalid {
		h.rememberForm(in)
	}
	if err := outcomeError(outcome); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PredictionResponse{Outcome: outcome, View: h.view.Snapshot()})
}

// View returns the current view snapshot.
func (h *Handler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.Snapshot())
}

// ViewStream pushes view snapshots using Server-Sent Events. The stream is
// exempt from the server write timeout and ends on the first failed write.
func (h *Handler) ViewStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(codeStreamUnsupported, "streaming not supported", nil))
		return
	}
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("stream keeps server write deadline", "error", err)
	}

	updates, cancel := h.view.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.logger.Error("marshal snapshot failed", "error", err)
				continue
			}
			if err := writeEvent(c.Writer, payload); err != nil {
				h.logger.Info("view stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, payload []byte) error {
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	_, err := w.Write(frame)
	return err
}

// Sectors returns the sector catalog.
func (h *Handler) Sectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Catalog(c.Request.Context()))
}

// History lists recent submissions.
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(codeInvalidRequest, "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	records, err := h.submissions.History(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if records == nil {
		records = []submission.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": records})
}

// Healthz reports liveness of the console itself.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) form() forecast.FormInput {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastForm
}

func (h *Handler) rememberForm(in forecast.FormInput) {
	h.mu.Lock()
	h.lastForm = in
	h.mu.Unlock()
}

func anchorFor(focus viewstate.Panel) string {
	if focus == viewstate.PanelNone {
		return ""
	}
	return "#" + string(focus)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
