package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestLabel_FallbackForBlankAndNil(t *testing.T) {
	assert.Equal(t, LabelSinVia, DimensionVia.Label(nil))
	assert.Equal(t, LabelSinVia, DimensionVia.Label(ptr("   ")))
	assert.Equal(t, "Manual", DimensionVia.Label(ptr("Manual")))
	assert.Equal(t, "", DimensionStatus.Fallback())
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter(DimensionVia, []string{" sin vía ", "Manual", "", "Manual", "  "})
	assert.True(t, f.IncludeUnknown)
	assert.Equal(t, []string{"Manual"}, f.Values)
	assert.True(t, f.Active())

	empty := ParseFilter(DimensionVia, []string{"", " "})
	assert.False(t, empty.Active())

	// status no tiene token desconocido: el literal se conserva
	st := ParseFilter(DimensionStatus, []string{"Sin Vía"})
	assert.False(t, st.IncludeUnknown)
	assert.Equal(t, []string{"Sin Vía"}, st.Values)
}

func TestFilterMatches(t *testing.T) {
	sentinelOnly := ParseFilter(DimensionVia, []string{"Sin Vía"})
	assert.True(t, sentinelOnly.Matches(nil))
	assert.True(t, sentinelOnly.Matches(ptr(" ")))
	assert.False(t, sentinelOnly.Matches(ptr("Sistema")))

	mixed := ParseFilter(DimensionVia, []string{"Sin Vía", "Sistema"})
	assert.True(t, mixed.Matches(nil))
	assert.True(t, mixed.Matches(ptr("Sistema")))
	assert.False(t, mixed.Matches(ptr("Manual")))

	literal := ParseFilter(DimensionVia, []string{"Sistema"})
	assert.False(t, literal.Matches(nil))
	assert.False(t, literal.Matches(ptr("sistema")))

	var none Filter
	assert.True(t, none.Matches(nil))
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, Period3M, ParsePeriod(" 3M "))
	assert.Equal(t, Period1M, ParsePeriod("3m"))
	assert.Equal(t, Period1M, ParsePeriod(""))
	assert.Equal(t, Period5Y, ParsePeriod("5Y"))
}

func TestPeriodSince_ClampsToEndOfMonth(t *testing.T) {
	now := time.Date(2024, time.March, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 15, 4, 5, 0, time.UTC), Period1M.Since(now))
	assert.Equal(t, time.Date(2023, time.December, 31, 15, 4, 5, 0, time.UTC), Period3M.Since(now))
	assert.Equal(t, time.Date(2023, time.March, 31, 15, 4, 5, 0, time.UTC), Period1Y.Since(now))

	leap := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2019, time.February, 28, 0, 0, 0, 0, time.UTC), Period5Y.Since(leap))
}

func TestGroupBy_NullClassificationCountedOnce(t *testing.T) {
	facts := []IdeaFact{
		{Status: "Registrada"},
		{Status: "Registrada", Classification: ptr("  ")},
		{Status: "Revisada", Classification: ptr("Mejora")},
	}
	groups := GroupBy(facts, DimensionClassification)
	require.Len(t, groups, 2)
	assert.Equal(t, LabelCount{Label: LabelSinClasificar, Count: 2}, groups[0])
	assert.Equal(t, LabelCount{Label: "Mejora", Count: 1}, groups[1])

	sum := 0
	for _, g := range groups {
		sum += g.Count
	}
	assert.Equal(t, len(facts), sum)
}

func TestTimeline_FilterAndBucket(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	facts := []IdeaFact{
		{CreatedAt: now.Add(-2 * time.Hour), Status: "Registrada", Via: ptr("Sistema")},
		{CreatedAt: now.Add(-26 * time.Hour), Status: "Registrada"},
		{CreatedAt: now.Add(-26 * time.Hour), Status: "Revisada", Via: ptr("Manual")},
		{CreatedAt: now.AddDate(0, -2, 0), Status: "Registrada", Via: ptr("Sistema")},
	}

	tf := NewTimelineFilter(now, TimelineQuery{Period: "1M", Vias: []string{"Sin Vía", "Sistema"}})
	var kept []IdeaFact
	for _, f := range facts {
		if tf.Matches(f) {
			kept = append(kept, f)
		}
	}
	points := BucketByDay(kept)
	require.Len(t, points, 2)
	assert.True(t, points[0].Date.Before(points[1].Date))
	assert.Equal(t, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, 2, Total(points))

	// las dimensiones se combinan con AND
	tf = NewTimelineFilter(now, TimelineQuery{Period: "1M", Statuses: []string{"Revisada"}, Vias: []string{"Sistema"}})
	n := 0
	for _, f := range facts {
		if tf.Matches(f) {
			n++
		}
	}
	assert.Zero(t, n)
}

func TestBucketByDay_Empty(t *testing.T) {
	points := BucketByDay(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Zero(t, Total(points))
}
