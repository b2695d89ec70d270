package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/mocks"
)

func newDashboardRouter(service *mocks.MockDashboardService) *chi.Mux {
	logger := testLogger()
	handler := NewDashboardHandler(service, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	router.Route("/dashboard", handler.RegisterRoutes)
	return router
}

func TestDashboardOverview(t *testing.T) {
	service := mocks.NewMockDashboardService()

	avg := 15.25
	overview := &domain.DashboardOverview{
		Tickets: []*domain.Ticket{sampleTicket(1, "ES-1001")},
		KPIs: domain.KPISummary{
			TicketsCreated:        1,
			TicketsMitigated:      0,
			OpenTickets:           1,
			AvgTimeToResolveHours: &avg,
		},
		TimeSeries: []domain.TimeSeriesPoint{
			{Date: "2026-03-05", Created: 1},
		},
		Breakdown: []domain.StatusSeverityCount{
			{Status: domain.StatusOpen, SeverityCounts: map[string]int{"High": 1}},
		},
		TopTeams: []domain.TeamCount{
			{Team: "Platform", TicketCount: 1},
		},
	}

	service.On("GetOverview", mock.Anything, mock.MatchedBy(func(spec domain.FilterSpec) bool {
		if len(spec.Teams) != 2 || spec.Teams[0] != "Platform" || spec.Teams[1] != "Data" {
			return false
		}
		if spec.DateEnd == nil {
			return false
		}
		return spec.DateEnd.Equal(domain.EndOfDay(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	})).Return(overview, nil)

	router := newDashboardRouter(service)

	req := httptest.NewRequest(stdhttp.MethodGet, "/dashboard/overview?teams=Platform,Data&date_end=2026-03-10", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response OverviewDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))

	assert.Len(t, response.Tickets, 1)
	assert.Equal(t, "ES-1001", response.Tickets[0].Key)
	assert.Equal(t, 1, response.KPIs.TicketsCreated)
	require.NotNil(t, response.KPIs.AvgTimeToResolveHours)
	assert.Equal(t, 15.25, *response.KPIs.AvgTimeToResolveHours)
	require.Len(t, response.TimeSeries, 1)
	assert.Equal(t, "2026-03-05", response.TimeSeries[0].Date)
	require.Len(t, response.Breakdown, 1)
	assert.Equal(t, map[string]int{"High": 1}, response.Breakdown[0].SeverityCounts)
	require.Len(t, response.TopTeams, 1)
	assert.Equal(t, "Platform", response.TopTeams[0].Team)

	service.AssertExpectations(t)
}

func TestDashboardOverview_MalformedDateIgnored(t *testing.T) {
	service := mocks.NewMockDashboardService()

	service.On("GetOverview", mock.Anything, mock.MatchedBy(func(spec domain.FilterSpec) bool {
		return spec.DateStart == nil && spec.DateEnd == nil
	})).Return(&domain.DashboardOverview{}, nil)

	router := newDashboardRouter(service)

	req := httptest.NewRequest(stdhttp.MethodGet, "/dashboard/overview?date_start=not-a-date", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestDashboardOverview_ServiceError(t *testing.T) {
	service := mocks.NewMockDashboardService()
	service.On("GetOverview", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInternal)

	router := newDashboardRouter(service)

	req := httptest.NewRequest(stdhttp.MethodGet, "/dashboard/overview", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusInternalServerError, recorder.Code)
}

func TestDashboardListTickets(t *testing.T) {
	service := mocks.NewMockDashboardService()

	tickets := []*domain.Ticket{
		sampleTicket(1, "ES-1001"),
		sampleTicket(2, "ES-1002"),
	}
	service.On("ListTickets", mock.Anything, mock.Anything).Return(tickets, nil)

	router := newDashboardRouter(service)

	req := httptest.NewRequest(stdhttp.MethodGet, "/dashboard/tickets", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response ListResponse[TicketDTO]
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))

	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "ES-1001", response.Data[0].Key)
	assert.Equal(t, "ES-1002", response.Data[1].Key)
}

func TestDashboardFilterOptions(t *testing.T) {
	service := mocks.NewMockDashboardService()

	options := &domain.FilterOptions{
		Teams:      []string{"Data", "Platform"},
		Severities: []string{"Critical", "High"},
		Statuses:   []string{"Open", "Resolved"},
	}
	service.On("GetFilterOptions", mock.Anything).Return(options, nil)

	router := newDashboardRouter(service)

	req := httptest.NewRequest(stdhttp.MethodGet, "/dashboard/filter-options", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response FilterOptionsDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))

	assert.Equal(t, []string{"Data", "Platform"}, response.Teams)
	assert.Equal(t, []string{"Critical", "High"}, response.Severities)
	assert.Equal(t, []string{"Open", "Resolved"}, response.Statuses)
}
