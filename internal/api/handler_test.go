package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/store"
	"github.com/hyaku122/kintai-final/internal/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(filepath.Join(t.TempDir(), "attendance.json"), zap.NewNop())
	require.NoError(t, st.Load())
	manager := timesheet.NewManager(st, attendance.DefaultPolicy(), zap.NewNop())

	return NewHandler(manager, zap.NewNop()).Router()
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetDay(t *testing.T) {
	r := setupRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/days/2025-07-21", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Meta struct {
			Key       string `json:"date"`
			IsHoliday bool   `json:"isHoliday"`
			BadgeText string `json:"badgeText"`
		} `json:"meta"`
		Record struct {
			Kind string `json:"kind"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "2025-07-21", view.Meta.Key)
	assert.True(t, view.Meta.IsHoliday)
	assert.Equal(t, "海の日", view.Meta.BadgeText)
	assert.Equal(t, "normal", view.Record.Kind)
}

func TestGetDay_InvalidDate(t *testing.T) {
	r := setupRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/days/2025-02-30", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusBadRequest, env.Error.Code)
}

func TestPutRecord(t *testing.T) {
	r := setupRouter(t)

	w, env := doRequest(t, r, http.MethodPut, "/api/records/2025-06-10", `{"start":"09:45","end":"20:00","note":"release"}`)
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))

	var view struct {
		Judgment string `json:"judgment"`
		Warning  bool   `json:"warning"`
		Pay      struct {
			WorkMinutes int `json:"workMinutes"`
		} `json:"pay"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "遅刻・残業", view.Judgment)
	assert.True(t, view.Warning)
	assert.Equal(t, 555, view.Pay.WorkMinutes)

	w, env = doRequest(t, r, http.MethodGet, "/api/months/2025/6", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		ActualWorkingDays int   `json:"actualWorkingDays"`
		TotalMinutes      int   `json:"totalMinutes"`
		TotalPay          int64 `json:"totalPay"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.ActualWorkingDays)
	assert.Equal(t, 555, summary.TotalMinutes)
	// 480 regular minutes at 1500 plus 75 overtime minutes at 1875
	assert.Equal(t, int64(12000+2344), summary.TotalPay)
}

func TestPutRecord_BadInput(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"malformed time", "/api/records/2025-06-10", `{"start":"9:5"}`, http.StatusBadRequest},
		{"unknown kind", "/api/records/2025-06-10", `{"kind":"vacation"}`, http.StatusBadRequest},
		{"times on a saturday", "/api/records/2025-06-07", `{"start":"10:00"}`, http.StatusBadRequest},
		{"not json", "/api/records/2025-06-10", `{`, http.StatusBadRequest},
		{"invalid date", "/api/records/2025-13-01", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doRequest(t, r, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.NotNil(t, env.Error)
		})
	}
}

func TestGetMonth_Invalid(t *testing.T) {
	r := setupRouter(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/months/2025/13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/months/twenty/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHolidays(t *testing.T) {
	r := setupRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/holidays/2025", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Len(t, entries, 19)
	assert.Equal(t, "2025-01-01", entries[0].Date)
	assert.Equal(t, "元日", entries[0].Name)
}

func TestCompanyHolidays(t *testing.T) {
	r := setupRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/company-holidays", `{"date":"2025-8-13"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, r, http.MethodGet, "/api/company-holidays", "")
	require.Equal(t, http.StatusOK, w.Code)
	var keys []string
	require.NoError(t, json.Unmarshal(env.Data, &keys))
	assert.Equal(t, []string{"2025-08-13"}, keys)

	w, _ = doRequest(t, r, http.MethodPost, "/api/company-holidays", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/company-holidays/2025-08-13", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/company-holidays/2025-08-13", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
