package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSpan(t *testing.T, start, end time.Time, fromDay, toDay int, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, domain.StartOfDay(testutil.Day(fromDay)), start, msgAndArgs...)
	assert.Equal(t, domain.EndOfDay(testutil.Day(toDay)), end, msgAndArgs...)
}

func warningsOfKind(warns []Warning, kind WarningKind) []Warning {
	var out []Warning
	for _, w := range warns {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func TestSchedule_SingleStageEndsAtDeadline(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(3)),
	)

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 8, 10)
}

func TestSchedule_DependencyFinishesBeforeDependent(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(3)),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDuration(2), testutil.WithStageDeps("s1")),
	)

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	// s2 has no dependents, so it is anchored to the deadline; s1 must end
	// the day before s2 starts.
	assertSpan(t, got.Stages[1].StartDate, got.Stages[1].EndDate, 9, 10)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 6, 8)
}

func TestSchedule_EarliestDependentWins(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("base", testutil.WithStageID("base")),
		testutil.NewTestStage("short", testutil.WithStageID("short"), testutil.WithStageDuration(1), testutil.WithStageDeps("base")),
		testutil.NewTestStage("long", testutil.WithStageID("long"), testutil.WithStageDuration(4), testutil.WithStageDeps("base")),
	)

	got, _ := Schedule(plan)

	assertSpan(t, got.Stages[1].StartDate, got.Stages[1].EndDate, 10, 10)
	assertSpan(t, got.Stages[2].StartDate, got.Stages[2].EndDate, 7, 10)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 6, 6)
}

func TestSchedule_CycleCompletesWithWarning(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDeps("s2")),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDeps("s1")),
	)

	got, warns := Schedule(plan)

	require.True(t, got.Scheduled())
	cycles := warningsOfKind(warns, WarnCycle)
	require.Len(t, cycles, 1)
	assert.Equal(t, PassSchedule, cycles[0].Pass)
	assert.Equal(t, domain.EntityStage, cycles[0].Entity)

	// The walk starts at s1; the edge back into s1 is dropped, so s2 is
	// anchored to the deadline and s1 ends the day before.
	assertSpan(t, got.Stages[1].StartDate, got.Stages[1].EndDate, 10, 10)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 9, 9)
}

func TestSchedule_TasksWithinStage(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(3), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1")),
			testutil.NewTestTask("T2", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1")),
		)),
	)

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	s := got.Stages[0]
	assertSpan(t, s.StartDate, s.EndDate, 8, 10)
	assertSpan(t, s.Tasks[1].StartDate, s.Tasks[1].EndDate, 10, 10)
	assertSpan(t, s.Tasks[0].StartDate, s.Tasks[0].EndDate, 9, 9)
	assert.Equal(t, dayBefore(s.Tasks[1].StartDate), s.Tasks[0].EndDate)
}

func TestSchedule_TasksAnchorToTheirStage(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(2), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1"), testutil.WithTaskDuration(2)),
		)),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDuration(3), testutil.WithStageDeps("s1")),
	)

	got, _ := Schedule(plan)

	s1 := got.Stages[0]
	assertSpan(t, s1.StartDate, s1.EndDate, 6, 7)
	assert.Equal(t, s1.EndDate, s1.Tasks[0].EndDate)
	assertSpan(t, s1.Tasks[0].StartDate, s1.Tasks[0].EndDate, 6, 7)
}

func TestSchedule_TaskCycle(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(5), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1"), testutil.WithTaskDeps("t2")),
			testutil.NewTestTask("T2", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1")),
		)),
	)

	got, warns := Schedule(plan)

	require.True(t, got.Scheduled())
	cycles := warningsOfKind(warns, WarnCycle)
	require.Len(t, cycles, 1)
	assert.Equal(t, domain.EntityTask, cycles[0].Entity)
	assert.Equal(t, "s1", cycles[0].StageID)
}

func TestSchedule_TaskDependencyOnStageIsFlagged(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(2)),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDuration(2), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1"), testutil.WithTaskDeps("s1")),
		)),
	)

	got, warns := Schedule(plan)

	cross := warningsOfKind(warns, WarnCrossScopeReference)
	require.Len(t, cross, 1)
	assert.Equal(t, "s2", cross[0].StageID)
	assert.Equal(t, "t1", cross[0].TaskID)
	assert.Equal(t, "s1", cross[0].RefID)

	// The reference is ignored: the task still ends with its stage.
	assert.Equal(t, got.Stages[1].EndDate, got.Stages[1].Tasks[0].EndDate)
	// Stage s1 is not affected by the task's reference either.
	assert.Equal(t, got.Project.DeadlineEnd(), got.Stages[0].EndDate)
}

func TestSchedule_DanglingAndSelfReferencesIgnored(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(2), testutil.WithStageDeps("s1", "ghost", "")),
	)

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 9, 10)
	assert.Equal(t, []string{"s1", "ghost", ""}, got.Stages[0].Dependencies, "dependency list is not rewritten")
}

func TestSchedule_DegenerateRangeUsesCreationDay(t *testing.T) {
	project := testutil.NewTestProject("Late", testutil.WithCreatedAt(testutil.Day(5)), testutil.WithDeadline(testutil.Day(2)))
	plan := testutil.NewTestPlan(project,
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(4), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1"), testutil.WithTaskDuration(3)),
		)),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDeps("s1")),
	)

	got, warns := Schedule(plan)

	require.Len(t, warns, 1)
	assert.Equal(t, WarnDegenerateRange, warns[0].Kind)
	for _, s := range got.Stages {
		assertSpan(t, s.StartDate, s.EndDate, 5, 5, s.ID)
		for _, task := range s.Tasks {
			assertSpan(t, task.StartDate, task.EndDate, 5, 5, task.ID)
		}
	}
}

func TestSchedule_DeadlineOnCreationDayIsNotDegenerate(t *testing.T) {
	project := testutil.NewTestProject("Same day", testutil.WithCreatedAt(testutil.Day(3)), testutil.WithDeadline(testutil.Day(3)))
	plan := testutil.NewTestPlan(project, testutil.NewTestStage("S1", testutil.WithStageID("s1")))

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 3, 3)
}

func TestSchedule_NonPositiveDurationTreatedAsOneDay(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(0)),
	)

	got, _ := Schedule(plan)

	assertSpan(t, got.Stages[0].StartDate, got.Stages[0].EndDate, 10, 10)
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithTasks(testutil.NewTestTask("T1"))),
	)
	before := plan.Clone()

	_, _ = Schedule(plan)

	assert.Equal(t, before, plan)
}

func TestSchedule_Idempotent(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("S1", testutil.WithStageID("s1"), testutil.WithStageDuration(2), testutil.WithTasks(
			testutil.NewTestTask("T1", testutil.WithTaskID("t1")),
			testutil.NewTestTask("T2", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1")),
		)),
		testutil.NewTestStage("S2", testutil.WithStageID("s2"), testutil.WithStageDuration(3), testutil.WithStageDeps("s1")),
		testutil.NewTestStage("S3", testutil.WithStageID("s3"), testutil.WithStageDeps("s1", "s2")),
	)

	once, _ := Schedule(plan)
	twice, _ := Schedule(once)

	assert.Equal(t, once, twice)
}

func TestSchedule_EmptyPlan(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("Empty"))

	got, warns := Schedule(plan)

	assert.Empty(t, warns)
	assert.Empty(t, got.Stages)
}
