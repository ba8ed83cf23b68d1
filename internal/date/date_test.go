package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestRange_EndsAtTodayOldestFirst(t *testing.T) {
	today := New(2026, time.March, 2)

	got := Range(3, today)

	require.Len(t, got, 3)
	assert.Equal(t, "2026-02-28", got[0].String())
	assert.Equal(t, "2026-03-01", got[1].String())
	assert.Equal(t, "2026-03-02", got[2].String())
}

func TestRange_NonPositiveIsEmpty(t *testing.T) {
	today := New(2026, time.March, 2)

	assert.Empty(t, Range(0, today))
	assert.Empty(t, Range(-4, today))
}

func TestRange_Restartable(t *testing.T) {
	today := New(2025, time.December, 31)

	assert.Equal(t, Range(30, today), Range(30, today))
}

func TestRange_CrossesYearBoundary(t *testing.T) {
	got := Range(2, New(2026, time.January, 1))

	assert.Equal(t, "2025-12-31", got[0].String())
	assert.Equal(t, "2026-01-01", got[1].String())
}

func TestOf_UsesTimestampLocation(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, time.May, 4, 2, 30, 0, 0, zone) // 2026-05-03 16:30 UTC

	assert.Equal(t, "2026-05-04", Of(ts).String())
	assert.Equal(t, "2026-05-03", Of(ts.UTC()).String())
}

func TestCompareAndMonthDay(t *testing.T) {
	a := New(2026, time.April, 9)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(b.AddDays(-1)))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, "04-09", a.MonthDay())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("2026-13-01")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestMarshal_YAMLAndJSON(t *testing.T) {
	d := New(2026, time.July, 14)

	y, err := yaml.Marshal(map[string]Date{"due": d})
	require.NoError(t, err)
	assert.Contains(t, string(y), "2026-07-14")

	var back map[string]Date
	require.NoError(t, yaml.Unmarshal(y, &back))
	assert.True(t, back["due"].Equal(d))

	j, err := json.Marshal(map[Date]int{d: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"2026-07-14":1}`, string(j))

	var keyed map[Date]int
	require.NoError(t, json.Unmarshal(j, &keyed))
	assert.Equal(t, 1, keyed[d])
}
