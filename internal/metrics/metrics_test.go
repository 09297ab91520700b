package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
	"github.com/MonksterFX/fermentation-station/internal/store/memory"
)

func gaugeValue(t *testing.T, m *Metrics, status domain.FermentStatus) float64 {
	t.Helper()
	g, err := m.fermentsByStatus.GetMetricWithLabelValues(string(status))
	require.NoError(t, err)
	return testutil.ToFloat64(g)
}

func TestGaugesTrackCollection(t *testing.T) {
	t.Parallel()

	ferments := memory.NewFermentStore()
	m := New(ferments)
	ctx := context.Background()

	assert.Zero(t, gaugeValue(t, m, domain.StatusPlanned))

	ferment, err := ferments.Create(ctx, store.FermentDraft{
		Name:      "Gauge Kimchi",
		Type:      domain.TypeKimchi,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, gaugeValue(t, m, domain.StatusPlanned))
	assert.Zero(t, testutil.ToFloat64(m.openReminders))

	_, err = ferments.AddReminder(ctx, ferment.ID, domain.ReminderDraft{
		Title: "Check Kimchi",
		Text:  "Check Kimchi",
		Date:  time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.openReminders))

	stable := domain.StatusStable
	require.NoError(t, ferments.Update(ctx, ferment.ID, store.FermentUpdate{Status: &stable}))
	assert.Zero(t, gaugeValue(t, m, domain.StatusPlanned))
	assert.Equal(t, 1.0, gaugeValue(t, m, domain.StatusStable))

	require.NoError(t, ferments.Delete(ctx, ferment.ID))
	assert.Zero(t, gaugeValue(t, m, domain.StatusStable))
	assert.Zero(t, testutil.ToFloat64(m.openReminders))
}

func TestChangeCounter(t *testing.T) {
	t.Parallel()

	ferments := memory.NewFermentStore()
	m := New(ferments)
	ctx := context.Background()

	_, err := ferments.Create(ctx, store.FermentDraft{
		Name:      "Counted Kefir",
		Type:      domain.TypeKefir,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	created, err := m.changesTotal.GetMetricWithLabelValues(string(store.ChangeFermentCreated))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(created))
}

func TestSnapshotMatchesQueryAggregate(t *testing.T) {
	t.Parallel()

	ferments := memory.NewFermentStore()
	m := New(ferments)
	ctx := context.Background()

	_, err := ferments.Create(ctx, store.FermentDraft{
		Name:      "Snapshot Sourdough",
		Type:      domain.TypeSourdough,
		StartDate: time.Now(),
		Status:    domain.StatusStable,
	})
	require.NoError(t, err)

	stats := m.Snapshot(ctx)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Zero(t, stats.Planned)
}
