package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrInvalidView.WithDetails(map[string]interface{}{"kind": "pie"})

	assert.Nil(t, ErrInvalidView.Details)
	assert.Equal(t, "pie", withDetails.Details["kind"])
	assert.True(t, stderrors.Is(withDetails, ErrInvalidView))
	assert.False(t, stderrors.Is(withDetails, ErrInvalidPeriod))
	assert.Equal(t, "INVALID_VIEW: Unknown visualization", withDetails.Error())
}

func TestParseError(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	err := fmt.Errorf("load: %w", &ParseError{Row: 12, Column: "Comptage horaire", Value: "abc", Err: cause})

	assert.True(t, IsParseError(err))
	assert.False(t, IsStartupError(err))
	assert.True(t, stderrors.Is(err, strconv.ErrSyntax))
	assert.Contains(t, err.Error(), `row 12: column "Comptage horaire"`)
}

func TestStartupError(t *testing.T) {
	err := fmt.Errorf("api: %w", &StartupError{Source: "data.csv", Err: stderrors.New("no such file")})

	assert.True(t, IsStartupError(err))
	assert.False(t, IsParseError(err))
	assert.Equal(t, "api: startup: data.csv: no such file", err.Error())
}
