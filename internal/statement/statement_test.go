package statement

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/storage/sqlite"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleHistory() []models.PaymentHistory {
	return []models.PaymentHistory{
		{
			ID: "h2", BillID: "b1", BillerName: "Meralco", Amount: money.MustParse("60"), Balance: money.Zero,
			DueDate: date("2026-03-15"), PaidOn: date("2026-03-11"), Status: models.StatusPaid,
			TransactionAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC).UnixMicro(),
		},
		{
			ID: "h1", BillID: "b1", BillerName: "Meralco", Amount: money.MustParse("40.5"), Balance: money.MustParse("60"),
			DueDate: date("2026-03-15"), PaidOn: date("2026-03-10"), Status: models.StatusPartial, Method: "GCash",
			TransactionAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC).UnixMicro(),
		},
	}
}

func TestNewTotalsAmounts(t *testing.T) {
	s := New("alice", sampleHistory(), time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "100.50", s.TotalPaid.String())
	assert.Len(t, s.Entries, 2)

	empty := New("alice", nil, time.Now())
	assert.True(t, empty.TotalPaid.IsZero())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, New("alice", sampleHistory(), time.Now())))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2026-03-11T09:00:00Z", "2026-03-11", "Meralco", "2026-03-15", "60.00", "0.00", "paid", "", "", "b1"}, rows[1])
	assert.Equal(t, "40.50", rows[2][4])
	assert.Equal(t, "GCash", rows[2][7])
	assert.Equal(t, "TOTAL", rows[3][2])
	assert.Equal(t, "100.50", rows[3][4])
}

func TestWritePDF(t *testing.T) {
	history := sampleHistory()
	for i := 0; i < 80; i++ {
		history = append(history, history[1])
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, New("alice", history, time.Now())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	m := regexp.MustCompile(`/Count (\d+)`).FindStringSubmatch(buf.String())
	require.Len(t, m, 2)
	pages, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.Greater(t, pages, 1, "long histories span pages")
}

func TestTrimTo(t *testing.T) {
	assert.Equal(t, "short", trimTo("short", 10))
	assert.Equal(t, "abcd...", trimTo("abcdefgh", 5))
}

func TestHandler(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	l := ledger.New(store)
	ctx := context.Background()

	biller, err := l.AddBiller(ctx, "alice", ledger.BillerInput{Name: "Globe"})
	require.NoError(t, err)
	bill, err := l.AddBill(ctx, "alice", ledger.BillInput{BillerID: biller.ID, Amount: money.MustParse("25"), DueDate: date("2026-05-01")})
	require.NoError(t, err)
	_, err = l.AddPayment(ctx, "alice", ledger.PaymentInput{BillID: bill.ID, Amount: money.MustParse("25"), PaidOn: date("2026-04-28")})
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	h := NewHandler(l)
	h.now = func() time.Time { return time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthHTTP(jwtManager))
		h.Routes(r)
	})

	token, err := jwtManager.Generate("alice")
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/statements/history.csv", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "billwise-history-2026-04-30.csv")
		assert.Contains(t, rec.Body.String(), "Globe")
		assert.Contains(t, rec.Body.String(), "25.00")
	})

	t.Run("pdf", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/statements/history.pdf", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("requires token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statements/history.csv", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
