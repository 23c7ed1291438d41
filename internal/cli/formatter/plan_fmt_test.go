package formatter

import (
	"testing"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/scheduler"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatSchedule_PositionalReferences(t *testing.T) {
	p := testutil.NewTestProject("Launch")
	design := testutil.NewTestStage("Design", testutil.WithStageID("s1"),
		testutil.WithStageResponsibles("Ann"),
		testutil.WithTasks(
			testutil.NewTestTask("Sketch", testutil.WithTaskID("t1")),
			testutil.NewTestTask("Review", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1")),
		))
	build := testutil.NewTestStage("Build", testutil.WithStageID("s2"), testutil.WithStageDeps("s1", "ghost"))

	out := FormatSchedule(testutil.NewTestPlan(p, design, build))

	assert.Contains(t, out, "LAUNCH")
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "  T2")
	assert.Contains(t, out, "S1, ghost")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "○ open")
}

func TestFormatSchedule_Empty(t *testing.T) {
	out := FormatSchedule(testutil.NewTestPlan(testutil.NewTestProject("Blank")))
	assert.Contains(t, out, "No stages yet.")
}

func TestFormatWarnings(t *testing.T) {
	assert.Empty(t, FormatWarnings(nil))

	w := scheduler.Warning{
		Kind:    scheduler.WarnCycle,
		Pass:    scheduler.PassOrder,
		Entity:  domain.EntityStage,
		StageID: "s1",
		RefID:   "s2",
	}
	out := FormatWarnings([]scheduler.Warning{w})
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "! "+w.String())
}
