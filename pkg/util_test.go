package pkg

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(24)
	require.NoError(t, err)
	s2, err := GenerateRandomString(24)
	require.NoError(t, err)

	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
}

func TestNewID(t *testing.T) {
	id := NewID("te")
	assert.True(t, strings.HasPrefix(id, "te_"))
	assert.Len(t, id, len("te_")+8)
	assert.NotContains(t, id, "-")

	assert.NotEqual(t, NewID("a"), NewID("a"))
}

func TestWriteJSONResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONResponse(rr, map[string]any{"data": []string{"a1"}, "error": nil})

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data": ["a1"], "error": null}`, rr.Body.String())
}

func TestCombinedWriter(t *testing.T) {
	var b1, b2 bytes.Buffer
	cw := NewCombinedWriter(&b1, &b2)

	n, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "hello", b1.String())
	assert.Equal(t, "hello", b2.String())
}
