package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"powerup/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore(nil, "slot"))
	assert.ErrorIs(t, FromStore(fmt.Errorf("x: %w", database.ErrNoDocument), "slot"), ErrNotFound)
	assert.ErrorIs(t, FromStore(database.ErrDuplicateKey, "slot"), ErrConflict)
	assert.ErrorIs(t, FromStore(database.ErrWriteConflict, "slot"), ErrConflict)

	other := errors.New("io")
	assert.Equal(t, other, FromStore(other, "slot"))
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err         error
		status      int
		withDetails bool
	}{
		{fmt.Errorf("%w: bad hour", ErrValidation), http.StatusBadRequest, true},
		{fmt.Errorf("%w: slot taken", ErrConflict), http.StatusConflict, true},
		{fmt.Errorf("%w: slot", ErrNotFound), http.StatusNotFound, false},
		{fmt.Errorf("%w: other trainer", ErrForbidden), http.StatusNotFound, false},
		{errors.New("mongo exploded"), http.StatusInternalServerError, true},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondError(c, "Failed", tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		if tc.withDetails {
			assert.NotEmpty(t, body.Details)
		} else {
			assert.Equal(t, deniedMessage, body.Message)
			assert.Empty(t, body.Details)
		}
		assert.NotContains(t, body.Details, "mongo exploded")
	}
}

func TestRespondErrorForbiddenLooksMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	respond := func(err error) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondError(c, "Failed to edit slot", err)
		return w
	}
	missing := respond(fmt.Errorf("%w: slot", ErrNotFound))
	foreign := respond(fmt.Errorf("%w: slot s1 belongs to another trainer", ErrForbidden))

	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())
	assert.NotContains(t, foreign.Body.String(), "another trainer")
}
