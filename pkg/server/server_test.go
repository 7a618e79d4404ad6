package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sunplan/sunplan/pkg/advisor"
	"github.com/sunplan/sunplan/pkg/forecast"
	"github.com/sunplan/sunplan/pkg/types"
)

func newTestServer(s *mockStorage) *Server {
	return &Server{
		storage:    s,
		calculator: forecast.NewCalculator(),
		advisor:    advisor.New(),
		serverName: "sunplan-test",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleForecast(t *testing.T) {
	t.Run("Returns 24 Hours", func(t *testing.T) {
		mockS := &mockStorage{}
		mockS.On("InsertForecast", mock.Anything, mock.Anything).Return(nil)
		srv := newTestServer(mockS)

		w := postJSON(t, srv.handleForecast, "/api/forecast", forecastRequest{
			Day: types.DayForecast{
				Source:    types.ForecastSourceManual,
				Sunrise:   "06:00",
				Sunset:    "18:00",
				Condition: types.ConditionSunny,
			},
			Config: types.SystemConfiguration{
				TotalSystemKWP:   4,
				SystemEfficiency: 0.85,
			},
		})

		resp := w.Result()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var fc types.CalculatedForecast
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&fc))
		assert.Empty(t, fc.ErrorKind)
		assert.InDelta(t, 17.0, fc.DailyTotalKWH, 0.001)
		assert.Len(t, fc.Hourly, 24)

		mockS.AssertCalled(t, "InsertForecast", mock.Anything, mock.Anything)
	})

	t.Run("Calculation Errors Still Return OK", func(t *testing.T) {
		mockS := &mockStorage{}
		mockS.On("InsertForecast", mock.Anything, mock.Anything).Return(nil)
		srv := newTestServer(mockS)

		w := postJSON(t, srv.handleForecast, "/api/forecast", forecastRequest{
			Day: types.DayForecast{
				Source:    types.ForecastSourceManual,
				Sunrise:   "08:00",
				Sunset:    "06:00",
				Condition: types.ConditionSunny,
			},
			Config: types.SystemConfiguration{TotalSystemKWP: 4},
		})

		resp := w.Result()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var fc types.CalculatedForecast
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&fc))
		assert.Equal(t, types.ErrorKindInvalidDaylightWindow, fc.ErrorKind)
	})

	t.Run("Bad JSON", func(t *testing.T) {
		srv := newTestServer(&mockStorage{})
		req := httptest.NewRequest("POST", "/api/forecast", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		srv.handleForecast(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestHandleAdvice(t *testing.T) {
	mockS := &mockStorage{}
	mockS.On("InsertAdvice", mock.Anything, mock.Anything).Return(nil)
	srv := newTestServer(mockS)

	hourly := make([]types.HourlyGeneration, 24)
	for h := range hourly {
		hourly[h].Time = "00:00"
	}
	w := postJSON(t, srv.handleAdvice, "/api/advice", types.AdviceRequest{
		Forecast: types.CalculatedForecast{Hourly: hourly},
		Config: types.SystemConfiguration{
			BatteryCapacityKWH:      10,
			BatteryMaxChargeRateKWH: 10,
		},
		Tariffs: []types.TariffPeriod{
			{StartTime: "00:00", EndTime: "05:00", Cheap: true, RatePencePerKWH: 10},
		},
		BatteryLevelKWH:              2,
		Type:                         types.AdviceTypeOvernight,
		PreferredOvernightBatterySOC: 100,
	})

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var adv types.ChargingAdvice
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&adv))
	assert.True(t, adv.RecommendChargeLater)
	require.NotNil(t, adv.ChargeNeededKWH)
	assert.InDelta(t, 8.0, *adv.ChargeNeededKWH, 0.001)

	mockS.AssertCalled(t, "InsertAdvice", mock.Anything, mock.Anything)
}

func TestHandlePlan(t *testing.T) {
	mockS := &mockStorage{}
	mockS.On("InsertAdvice", mock.Anything, mock.Anything).Return(nil)
	srv := newTestServer(mockS)

	hourly := make([]types.HourlyGeneration, 24)
	w := postJSON(t, srv.handlePlan, "/api/plan", advisor.DailyPlanRequest{
		TodayForecast:                types.CalculatedForecast{Hourly: hourly},
		TomorrowForecast:             types.CalculatedForecast{Hourly: hourly},
		Config:                       types.SystemConfiguration{BatteryCapacityKWH: 10},
		BatteryLevelKWH:              10,
		CurrentHour:                  14,
		PreferredOvernightBatterySOC: 100,
	})

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var plan advisor.DailyPlan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plan))
	assert.Empty(t, plan.Today.ErrorKind)
	assert.Empty(t, plan.Overnight.ErrorKind)

	// one record per advice type
	mockS.AssertNumberOfCalls(t, "InsertAdvice", 2)
}

func TestHandleHistory(t *testing.T) {
	t.Run("Advice Defaults To Last 24h", func(t *testing.T) {
		mockS := &mockStorage{}
		mockS.On("GetAdviceHistory", mock.Anything, mock.Anything, mock.Anything).
			Return([]types.AdviceRecord{{Type: types.AdviceTypeToday}}, nil)
		srv := newTestServer(mockS)

		req := httptest.NewRequest("GET", "/api/history/advice", nil)
		w := httptest.NewRecorder()
		srv.handleHistoryAdvice(w, req)

		resp := w.Result()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var recs []types.AdviceRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
		require.Len(t, recs, 1)
		assert.Equal(t, types.AdviceTypeToday, recs[0].Type)
	})

	t.Run("Forecasts With Explicit Range", func(t *testing.T) {
		start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)

		mockS := &mockStorage{}
		mockS.On("GetForecastHistory", mock.Anything, start, end).
			Return([]types.ForecastRecord{}, nil)
		srv := newTestServer(mockS)

		req := httptest.NewRequest("GET",
			"/api/history/forecasts?start="+start.Format(time.RFC3339)+"&end="+end.Format(time.RFC3339), nil)
		w := httptest.NewRecorder()
		srv.handleHistoryForecasts(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		mockS.AssertExpectations(t)
	})

	t.Run("Start Only Defaults End To Now", func(t *testing.T) {
		// recent enough to stay inside the 7 day cap against the default end
		start := time.Now().Add(-2 * time.Hour).UTC().Truncate(time.Second)

		mockS := &mockStorage{}
		mockS.On("GetForecastHistory", mock.Anything,
			mock.MatchedBy(func(ts time.Time) bool { return ts.Equal(start) }),
			mock.MatchedBy(func(ts time.Time) bool { return time.Since(ts) < time.Minute }),
		).Return([]types.ForecastRecord{}, nil)
		srv := newTestServer(mockS)

		req := httptest.NewRequest("GET",
			"/api/history/forecasts?start="+start.Format(time.RFC3339), nil)
		w := httptest.NewRecorder()
		srv.handleHistoryForecasts(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		mockS.AssertExpectations(t)
	})

	t.Run("End Only Defaults Start To 24h Before", func(t *testing.T) {
		end := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)

		mockS := &mockStorage{}
		mockS.On("GetForecastHistory", mock.Anything,
			mock.MatchedBy(func(ts time.Time) bool { return ts.Equal(end.Add(-24 * time.Hour)) }),
			mock.MatchedBy(func(ts time.Time) bool { return ts.Equal(end) }),
		).Return([]types.ForecastRecord{}, nil)
		srv := newTestServer(mockS)

		req := httptest.NewRequest("GET",
			"/api/history/forecasts?end="+end.Format(time.RFC3339), nil)
		w := httptest.NewRecorder()
		srv.handleHistoryForecasts(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		mockS.AssertExpectations(t)
	})

	t.Run("Inverted Range", func(t *testing.T) {
		srv := newTestServer(&mockStorage{})
		req := httptest.NewRequest("GET",
			"/api/history/forecasts?start=2026-08-30T00:00:00Z&end=2026-08-29T00:00:00Z", nil)
		w := httptest.NewRecorder()
		srv.handleHistoryForecasts(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestHealthzAndServerName(t *testing.T) {
	srv := newTestServer(&mockStorage{})
	handler := srv.setupHandler()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sunplan-test", resp.Header.Get("Server"))
}
