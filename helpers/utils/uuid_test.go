package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, a, b)
	assert.True(t, ValidRequestID(a))
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, ValidRequestID("req-123_abc.1"))
	assert.False(t, ValidRequestID(""))
	assert.False(t, ValidRequestID("has space"))
	assert.False(t, ValidRequestID("line\nbreak"))
	assert.False(t, ValidRequestID(string(make([]byte, 65))))
}
