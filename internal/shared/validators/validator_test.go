package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RegexpTag(t *testing.T) {
	t.Parallel()

	type ignoreList struct {
		Patterns []string `validate:"dive,regexp"`
	}

	v := New()

	assert.NoError(t, v.Struct(&ignoreList{Patterns: []string{`^/static/`, `/favicon\.ico`}}))

	err := v.Struct(&ignoreList{Patterns: []string{`^/ok`, `([unclosed`}})
	if assert.Error(t, err) {
		ve, ok := err.(ValidationErrors)
		assert.True(t, ok)
		assert.Equal(t, TagRegexp, ve[0].Tag())
	}
}
