package apperrors_test

import (
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
)

func TestStatusCodes(t *testing.T) {
	require.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(apperrors.Unauthorized("nope")))
	require.Equal(t, http.StatusForbidden, apperrors.StatusCode(apperrors.Forbidden("nope")))
	require.Equal(t, http.StatusConflict, apperrors.StatusCode(apperrors.Conflict("taken")))
	require.Equal(t, http.StatusNotFound, apperrors.StatusCode(apperrors.NotFound("gone")))
	require.Equal(t, http.StatusBadRequest, apperrors.StatusCode(apperrors.BadRequest("bad")))
	require.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(pkgerrors.New("boom")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := pkgerrors.Wrap(apperrors.NotFound("Project not found"), "loading project")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
	require.Equal(t, "Project not found", apperrors.Message(err))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	require.Equal(t, "internal server error", apperrors.Message(pkgerrors.New("pq: connection refused")))
}
