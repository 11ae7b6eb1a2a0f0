package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

func TestWriteJson(t *testing.T) {
	writer := httptest.NewRecorder()
	WriteJson(writer, map[string]string{"pollId": "0xabc"})

	require.Equal(t, http.StatusOK, writer.Code)
	require.Equal(t, "application/json", writer.Header().Get("Content-Type"))

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(writer.Body.Bytes(), &body))
	assert.Equal(t, true, body.Success)
	assert.Equal(t, "0xabc", body.Data["pollId"])
}

func TestWriteJsonPaginated(t *testing.T) {
	writer := httptest.NewRecorder()
	type page struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	}
	WriteJsonPaginated(writer, []string{"a", "b"}, &page{Page: 1, Limit: 10, Total: 2})

	var body struct {
		Success    bool     `json:"success"`
		Data       []string `json:"data"`
		Pagination *page    `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(writer.Body.Bytes(), &body))
	assert.Equal(t, true, body.Success)
	assert.Equal(t, 2, len(body.Data))
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 2, body.Pagination.Total)
}

func TestWriteError(t *testing.T) {
	writer := httptest.NewRecorder()
	WriteError(writer, &DefaultJsonError{Message: "poll not found", Code: http.StatusNotFound})

	require.Equal(t, http.StatusNotFound, writer.Code)
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(writer.Body.Bytes(), &body))
	assert.Equal(t, false, body.Success)
	assert.Equal(t, "poll not found", body.Error)
}

func TestHandleError(t *testing.T) {
	writer := httptest.NewRecorder()
	HandleError(writer, "startTime must be before endTime", http.StatusBadRequest)

	require.Equal(t, http.StatusBadRequest, writer.Code)
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(writer.Body.Bytes(), &body))
	assert.Equal(t, false, body.Success)
	assert.Equal(t, "startTime must be before endTime", body.Error)
}
