package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'INC' failed", From("line %d '%v' %v", 3, "INC", "failed"))
	assert.Equal("[1 0]", From("%v", []int{1, 0}))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	defer SetLanguage(DEFAULT_LANGUAGE)

	assert.NoError(SetLanguage("en-GB"))
	assert.Equal("candidates: 4", From("candidates: %d", 4))

	assert.Error(SetLanguage("not a language!"))
	assert.Equal("candidates: 4", From("candidates: %d", 4))
}
