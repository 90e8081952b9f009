package operations_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptercli/internal/operations"
	"adaptercli/internal/operations/testutil"
)

func TestRegistry(t *testing.T) {
	r := operations.NewRegistry()

	require.NoError(t, r.Register(testutil.SuccessfulStep("load")))
	require.NoError(t, r.Register(testutil.SuccessfulStep("clean")))
	require.NoError(t, r.Register(testutil.SuccessfulStep("write")))

	assert.Equal(t, 3, r.Count())
	assert.True(t, r.Has("clean"))
	assert.False(t, r.Has("align"))
	assert.Equal(t, []string{"load", "clean", "write"}, r.ListIDs())

	steps := r.List()
	require.Len(t, steps, 3)
	assert.Equal(t, "write", steps[2].ID())

	step, err := r.Get("load")
	require.NoError(t, err)
	assert.Equal(t, "load", step.ID())

	_, err = r.Get("align")
	assert.Error(t, err)
}

func TestRegistryRejects(t *testing.T) {
	r := operations.NewRegistry()

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(testutil.SuccessfulStep("")))

	require.NoError(t, r.Register(testutil.SuccessfulStep("load")))
	assert.Error(t, r.Register(testutil.SuccessfulStep("load")))
	assert.Equal(t, 1, r.Count())
}

func TestConfigTimeouts(t *testing.T) {
	cfg := operations.NewConfigBuilder().
		WithDefaultTimeout(time.Minute).
		WithStepTimeout("write", 5*time.Second).
		Build()

	assert.Equal(t, 5*time.Second, cfg.GetStepTimeout("write"))
	assert.Equal(t, time.Minute, cfg.GetStepTimeout("load"))

	empty := &operations.Config{}
	assert.Equal(t, operations.DefaultStepTimeout, empty.GetStepTimeout("load"))
	empty.SetStepTimeout("load", time.Second)
	assert.Equal(t, time.Second, empty.GetStepTimeout("load"))
}
