package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID("poa")
	b := GenerateID("poa")
	assert.NotEqual(t, a, b)
	assert.True(t, ValidateGrantID(a))
	assert.False(t, ValidateGrantID("usr-"+a[4:]))
	assert.False(t, ValidateGrantID("poa-not-a-uuid"))
}
