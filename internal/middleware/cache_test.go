package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWriter_WithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 16}

	n, err := cw.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.False(t, cw.overflowed())
	assert.Equal(t, "hello world", cw.buf.String())
}

// A body that exactly fills the limit is still complete and cacheable;
// one byte more and the capture is a prefix that must be discarded.
func TestCaptureWriter_OverflowBoundary(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	_, err := cw.Write([]byte("abcd"))
	require.NoError(t, err)
	assert.False(t, cw.overflowed())

	_, err = cw.Write([]byte("e"))
	require.NoError(t, err)
	assert.True(t, cw.overflowed())
	// The client still received every byte.
	assert.Equal(t, "abcde", rec.Body.String())
	// The capture holds only a prefix, which is why overflowed
	// responses are never stored.
	assert.Equal(t, "abcd", cw.buf.String())
}

func TestCaptureWriter_NoLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}

	big := bytes.Repeat([]byte("x"), 1<<16)
	_, err := cw.Write(big)
	require.NoError(t, err)
	assert.False(t, cw.overflowed())
	assert.Equal(t, len(big), cw.buf.Len())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayload_Garbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)
}
