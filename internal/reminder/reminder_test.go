package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func bill(id, due string, status models.BillStatus) models.Bill {
	return models.Bill{ID: id, DueDate: date(due), Status: status, Amount: money.FromCents(1000), Balance: money.FromCents(1000)}
}

type fakeSource struct {
	bills map[string][]models.Bill
	err   error
}

func (f *fakeSource) ListOwners(ctx context.Context) ([]string, error) {
	var owners []string
	for o := range f.bills {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	return owners, nil
}

func (f *fakeSource) ListUnpaidBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bills[ownerID], nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[string]Reminder
}

func (n *recordingNotifier) Notify(ctx context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[string]Reminder)
	}
	n.sent[r.OwnerID] = r
	return nil
}

func TestClassify(t *testing.T) {
	today := date("2026-03-10")
	bills := []models.Bill{
		bill("late", "2026-03-09", models.StatusPartial),
		bill("today", "2026-03-10", models.StatusUnpaid),
		bill("edge", "2026-03-13", models.StatusUnpaid),
		bill("later", "2026-03-14", models.StatusUnpaid),
		bill("settled", "2026-03-01", models.StatusPaid),
	}

	r := Classify("alice", bills, today, 3)
	require.Len(t, r.Overdue, 1)
	assert.Equal(t, "late", r.Overdue[0].ID)
	require.Len(t, r.DueSoon, 2)
	assert.Equal(t, "today", r.DueSoon[0].ID)
	assert.Equal(t, "edge", r.DueSoon[1].ID)

	none := Classify("alice", bills, today, 0)
	require.Len(t, none.DueSoon, 1, "a zero window still includes today")
}

func TestRun(t *testing.T) {
	source := &fakeSource{bills: map[string][]models.Bill{
		"alice": {bill("a1", "2026-03-01", models.StatusUnpaid), bill("a2", "2026-03-11", models.StatusPartial)},
		"bob":   {bill("b1", "2026-04-30", models.StatusUnpaid)},
		"carol": {bill("c1", "2026-03-12", models.StatusUnpaid)},
	}}
	notifier := &recordingNotifier{}
	m := metrics.New()
	s := NewScheduler(source, notifier, m, 3)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC) }

	require.NoError(t, s.Run(context.Background()))

	assert.Len(t, notifier.sent, 2, "bob has nothing due")
	assert.Len(t, notifier.sent["alice"].Overdue, 1)
	assert.Len(t, notifier.sent["alice"].DueSoon, 1)
	assert.Len(t, notifier.sent["carol"].DueSoon, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BillsDueSoon))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillsOverdue))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemindersSent))
}

func TestRunPropagatesSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	source := &fakeSource{bills: map[string][]models.Bill{"alice": nil}, err: boom}
	m := metrics.New()
	m.SetDueCounts(5, 5)
	s := NewScheduler(source, &recordingNotifier{}, m, 3)

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.BillsDueSoon), "gauges keep the last complete scan")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&fakeSource{}, LogNotifier{}, nil, 3)
	assert.Error(t, s.Start(context.Background(), "not a schedule"))

	require.NoError(t, s.Start(context.Background(), "0 8 * * *"))
	assert.Error(t, s.Start(context.Background(), "0 8 * * *"), "already started")
	s.Stop()
	s.Stop()
}

func TestLogNotifier(t *testing.T) {
	r := Reminder{OwnerID: "alice", Overdue: []models.Bill{bill("a1", "2026-03-01", models.StatusUnpaid)}}
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), r))
}
