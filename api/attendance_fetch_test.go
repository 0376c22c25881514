package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"minhyuk/wedding-api/attendance"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceFetch(t *testing.T) {
	setupConfig(t)
	sc := newFakeSheets(t, &fakeSheets{rows: [][]string{
		{"2025-10-01 12:00:00", "김민수", "010-1234-5678", attendance.Attending, "2", "ua", "dev1"},
		{"2025-10-01 13:00:00", "이영희", "", attendance.NotAttending, "0"},
		{"2025-10-01 14:00:00", "박지훈", "", attendance.Attending, "1"},
	}})
	a := newTestAPI(t, &fakeStorage{}, sc)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["total"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["attending"])
	assert.Equal(t, float64(1), summary["declined"])
	assert.Equal(t, float64(3), summary["totalGuests"])

	rows := body["attendance"].([]any)
	require.Len(t, rows, 3)
	first := rows[0].(map[string]any)
	assert.Equal(t, "김민수", first["name"])
	assert.Equal(t, true, first["willAttend"])
	assert.Equal(t, "dev1", first["deviceId"])
}

func TestAttendanceFetchMissingSheetID(t *testing.T) {
	setupConfig(t)
	viper.Set("google.sheet_id", "")
	a := newTestAPI(t, &fakeStorage{}, newFakeSheets(t, &fakeSheets{}))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAttendanceFetchUpstreamError(t *testing.T) {
	setupConfig(t)
	a := newTestAPI(t, &fakeStorage{}, newFakeSheets(t, &fakeSheets{failReads: true}))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
