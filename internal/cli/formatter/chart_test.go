package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	p := testutil.NewTestProject("Launch", testutil.WithCreatedAt(testutil.Day(1)), testutil.WithDeadline(testutil.Day(5)))

	days := DateRange(*p)
	require.Len(t, days, 5)
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 5, days[4].Day())
	assert.Equal(t, 0, days[0].Hour(), "columns are whole days")
}

func TestDateRange_InvertedIsCreationDay(t *testing.T) {
	p := testutil.NewTestProject("Late", testutil.WithCreatedAt(testutil.Day(5)), testutil.WithDeadline(testutil.Day(3)))

	days := DateRange(*p)
	require.Len(t, days, 1)
	assert.Equal(t, 5, days[0].Day())
}

func TestDateRange_SameDay(t *testing.T) {
	p := testutil.NewTestProject("Rush", testutil.WithCreatedAt(testutil.Day(4)), testutil.WithDeadline(testutil.Day(4)))
	assert.Len(t, DateRange(*p), 1)
}

func chartPlan() domain.Plan {
	p := testutil.NewTestProject("Launch", testutil.WithCreatedAt(testutil.Day(1)), testutil.WithDeadline(testutil.Day(5)))
	build := testutil.NewTestStage("Build", testutil.WithStageDuration(2))
	build.StartDate = domain.StartOfDay(testutil.Day(4))
	build.EndDate = domain.EndOfDay(testutil.Day(5))

	early := testutil.NewTestStage("Early", testutil.WithStageDuration(3))
	early.StartDate = domain.StartOfDay(testutil.Day(0))
	early.EndDate = domain.EndOfDay(testutil.Day(2))
	return testutil.NewTestPlan(p, build, early)
}

func chartRow(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, label) {
			return line
		}
	}
	t.Fatalf("no chart row starting with %q in:\n%s", label, out)
	return ""
}

func TestFormatChart_Bars(t *testing.T) {
	out := FormatChart(chartPlan())

	assert.Contains(t, out, "Mar 1, 2025 → Mar 5, 2025")
	assert.True(t, strings.HasSuffix(chartRow(t, out, "DAY"), "  1  2  3  4  5"))
	assert.True(t, strings.HasSuffix(chartRow(t, out, "S1 Build"), "  ·  ·  ·██████"))
}

func TestFormatChart_MarksOverflowBeforeRange(t *testing.T) {
	out := FormatChart(chartPlan())
	assert.True(t, strings.HasSuffix(chartRow(t, out, "S2 Early"), "◀█████  ·  ·  ·"))
}

func TestFormatChart_UnscheduledRowIsEmpty(t *testing.T) {
	p := testutil.NewTestProject("Launch", testutil.WithCreatedAt(testutil.Day(1)), testutil.WithDeadline(testutil.Day(3)))
	plan := testutil.NewTestPlan(p, testutil.NewTestStage("Idle"))

	assert.True(t, strings.HasSuffix(chartRow(t, FormatChart(plan), "S1 Idle"), "  ·  ·  ·"))
}
