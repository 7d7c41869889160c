package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NothingWritten(t *testing.T) {
	rec := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rec.StatusCode())
	assert.Zero(t, rec.BytesWritten())
	assert.False(t, rec.Committed())
}

func TestRecorder_FirstStatusWins(t *testing.T) {
	tests := []struct {
		name   string
		status []int
		want   int
	}{
		{"created", []int{http.StatusCreated}, http.StatusCreated},
		{"not found", []int{http.StatusNotFound}, http.StatusNotFound},
		{"second call dropped", []int{http.StatusBadRequest, http.StatusInternalServerError}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			underlying := httptest.NewRecorder()
			rec := Wrap(underlying)
			for _, s := range tt.status {
				rec.WriteHeader(s)
			}
			assert.Equal(t, tt.want, rec.StatusCode())
			assert.Equal(t, tt.want, underlying.Code)
			assert.True(t, rec.Committed())
		})
	}
}

func TestRecorder_WriteCountsBytes(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := Wrap(underlying)

	_, err := rec.Write([]byte(`{"articles":`))
	require.NoError(t, err)
	_, err = rec.Write([]byte(`[]}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.StatusCode())
	assert.Equal(t, 15, rec.BytesWritten())
	assert.Equal(t, `{"articles":[]}`, underlying.Body.String())
}

func TestRecorder_WriteAfterErrorStatus(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := Wrap(underlying)

	rec.WriteHeader(http.StatusServiceUnavailable)
	_, _ = rec.Write([]byte("down"))

	assert.Equal(t, http.StatusServiceUnavailable, underlying.Code)
	assert.Equal(t, 4, rec.BytesWritten())
}

func TestRecorder_ResponseControllerFlush(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := Wrap(underlying)

	require.NoError(t, http.NewResponseController(rec).Flush())
	assert.True(t, underlying.Flushed)
}
