package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type windowQuery struct {
	Start string `query:"start" validate:"required,datetime=2006-01-02"`
	Month int    `json:"month" validate:"min=1,max=12"`
}

func TestValidate_UsesTagNames(t *testing.T) {
	err := Validate(&windowQuery{Start: "01/04/2023", Month: 13})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"start": "datetime", "month": "max"}, fields)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(&windowQuery{Start: "2023-04-01", Month: 4}))
}
