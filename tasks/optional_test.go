package tasks_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/tasks"
)

func TestOptionalDistinguishesAbsentAndNull(t *testing.T) {
	var params tasks.UpdateParams
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId": null, "title": "Renamed"}`), &params))

	require.True(t, params.Title.Set)
	require.NotNil(t, params.Title.Value)
	require.Equal(t, "Renamed", *params.Title.Value)

	// null clears the field
	require.True(t, params.AssigneeID.Set)
	require.Nil(t, params.AssigneeID.Value)

	// absent leaves the field untouched
	require.False(t, params.DueAt.Set)
}
