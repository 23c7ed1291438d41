package scheduler

import (
	"testing"

	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDependsOn(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("P"),
		stage("a"), stage("b", "a"), stage("c", "b"), stage("d"))

	assert.True(t, DependsOn(plan, "b", "a"))
	assert.True(t, DependsOn(plan, "c", "a"), "transitive")
	assert.False(t, DependsOn(plan, "a", "c"))
	assert.False(t, DependsOn(plan, "d", "a"))
	assert.False(t, DependsOn(plan, "ghost", "a"))
}

func TestDependsOn_ToleratesCycles(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("P"),
		stage("a", "b"), stage("b", "a"), stage("c"))

	assert.True(t, DependsOn(plan, "a", "a"))
	assert.False(t, DependsOn(plan, "a", "c"))
}

func TestWouldCycle(t *testing.T) {
	plan := testutil.NewTestPlan(testutil.NewTestProject("P"),
		stage("a"), stage("b", "a"), stage("c", "b"))

	assert.True(t, WouldCycle(plan, "a", "c"), "c already depends on a")
	assert.True(t, WouldCycle(plan, "a", "a"))
	assert.False(t, WouldCycle(plan, "c", "a"))
}

func TestTaskDependsOn(t *testing.T) {
	s := testutil.NewTestStage("S", testutil.WithTasks(
		testutil.NewTestTask("t1", testutil.WithTaskID("t1")),
		testutil.NewTestTask("t2", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1")),
		testutil.NewTestTask("t3", testutil.WithTaskID("t3"), testutil.WithTaskDeps("t2")),
	))

	assert.True(t, TaskDependsOn(s, "t3", "t1"))
	assert.False(t, TaskDependsOn(s, "t1", "t3"))
	assert.True(t, WouldCycleTask(s, "t1", "t3"))
	assert.False(t, WouldCycleTask(s, "t3", "t1"))
}
