package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositional(t *testing.T) {
	tests := []struct {
		ref    string
		prefix string
		want   int
		ok     bool
	}{
		{"S1", "S", 0, true},
		{"s3", "S", 2, true},
		{"2", "S", 1, true},
		{"T4", "T", 3, true},
		{"S0", "S", 0, false},
		{"S", "S", 0, false},
		{"T1", "S", 0, false},
		{"abc", "S", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			got, ok := positional(tc.ref, tc.prefix)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestStageID_PositionThenRawID(t *testing.T) {
	p := testutil.NewTestPlan(testutil.NewTestProject("Launch"),
		testutil.NewTestStage("Design", testutil.WithStageID("s1")),
		testutil.NewTestStage("Build", testutil.WithStageID("s2")),
	)

	id, err := stageID(p, "S2")
	require.NoError(t, err)
	assert.Equal(t, "s2", id)

	id, err = stageID(p, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", id, "raw ids are accepted")

	_, err = stageID(p, "S3")
	assert.ErrorIs(t, err, editor.ErrStageNotFound)
}

func TestTaskID_ScopedToStage(t *testing.T) {
	s := testutil.NewTestStage("Design", testutil.WithTasks(
		testutil.NewTestTask("Sketch", testutil.WithTaskID("t1")),
	))

	id, err := taskID(s, "T1")
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	_, err = taskID(s, "T2")
	assert.ErrorIs(t, err, editor.ErrTaskNotFound)
}

func TestResolveProjectID_Prefix(t *testing.T) {
	app := testApp(t)
	id := seedProject(t, app)
	ctx := context.Background()

	got, err := resolveProjectID(ctx, app, id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = resolveProjectID(ctx, app, "")
	assert.Error(t, err)
}
