package statement

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/middleware"
)

// Handler serves statements over plain HTTP. Routes must sit behind
// middleware.RequireAuthHTTP.
type Handler struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l, now: time.Now}
}

// Routes mounts the statement downloads on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/statements/history.csv", h.render("text/csv; charset=utf-8", "csv", WriteCSV))
	r.Get("/statements/history.pdf", h.render("application/pdf", "pdf", WritePDF))
}

func (h *Handler) render(contentType, ext string, write func(io.Writer, *Statement) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := middleware.GetOwnerID(r.Context())
		if ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		history, err := h.ledger.ListPaymentHistory(r.Context(), ownerID)
		if err != nil {
			slog.Error("Failed to load payment history", "owner_id", ownerID, "error", err)
			http.Error(w, "failed to load payment history", http.StatusInternalServerError)
			return
		}
		s := New(ownerID, history, h.now())

		var buf bytes.Buffer
		if err := write(&buf, s); err != nil {
			slog.Error("Failed to render statement", "owner_id", ownerID, "format", ext, "error", err)
			http.Error(w, "failed to render statement", http.StatusInternalServerError)
			return
		}

		filename := "billwise-history-" + s.GeneratedAt.Format("2006-01-02") + "." + ext
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Write(buf.Bytes())
	}
}
