package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/gateway"
	"github.com/roger120981/buenavida-admin/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *gateway.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestListParticipants_SendsFiltersAndPagination(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/participants", r.URL.Path)
		gotQuery = map[string]string{
			"filters":   r.URL.Query().Get("filters"),
			"page":      r.URL.Query().Get("page"),
			"pageSize":  r.URL.Query().Get("pageSize"),
			"sortBy":    r.URL.Query().Get("sortBy"),
			"sortOrder": r.URL.Query().Get("sortOrder"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Page[models.Participant]{
			Data:       []models.Participant{{ID: 1, Name: "Jane Doe"}},
			Total:      21,
			Page:       2,
			PageSize:   10,
			TotalPages: 3,
			HasNext:    true,
		})
	}))

	result, err := client.ListParticipants(context.Background(), gateway.ListOptions{
		Filters:   map[string]any{"isActive": true, "community": "North"},
		Page:      2,
		PageSize:  10,
		SortBy:    "name",
		SortOrder: "desc",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"community":"North","isActive":true}`, gotQuery["filters"])
	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "10", gotQuery["pageSize"])
	assert.Equal(t, "name", gotQuery["sortBy"])
	assert.Equal(t, "desc", gotQuery["sortOrder"])

	require.Len(t, result.Data, 1)
	assert.Equal(t, "Jane Doe", result.Data[0].Name)
	assert.True(t, result.CanPrevious())
	assert.True(t, result.CanNext())
}

func TestListParticipants_DefaultsMatchDashboard(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"filters":   r.URL.Query().Get("filters"),
			"page":      r.URL.Query().Get("page"),
			"pageSize":  r.URL.Query().Get("pageSize"),
			"sortBy":    r.URL.Query().Get("sortBy"),
			"sortOrder": r.URL.Query().Get("sortOrder"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0,"page":1,"pageSize":10,"totalPages":0,"hasNext":false}`))
	}))

	_, err := client.ListParticipants(context.Background(), gateway.ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "{}", got["filters"])
	assert.Equal(t, "1", got["page"])
	assert.Equal(t, "10", got["pageSize"])
	assert.Equal(t, "createdAt", got["sortBy"])
	assert.Equal(t, "asc", got["sortOrder"])
}

func TestCreateParticipant_PayloadHasNoAssignmentsKey(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/participants", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"name":"Jane Doe"}`))
	}))

	dto := models.ParticipantDTO{
		Name:       "Jane Doe",
		MedicaidID: "123",
		DOB:        "1990-01-01",
		Gender:     "F",
		IsActive:   true,
		CaseManager: models.CaseManagerRelation{
			Connect: &models.CaseManagerConnect{ID: 5},
		},
	}
	created, err := client.CreateParticipant(context.Background(), dto)
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)

	assert.Equal(t, "Jane Doe", body["name"])
	assert.Equal(t, "123", body["medicaidId"])
	assert.Equal(t, "1990-01-01", body["dob"])
	assert.Equal(t, "F", body["gender"])

	caseManager, ok := body["caseManager"].(map[string]any)
	require.True(t, ok)
	connect, ok := caseManager["connect"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), connect["id"])
	_, hasCreate := caseManager["create"]
	assert.False(t, hasCreate)

	_, hasAssignments := body["caregiverAssignments"]
	assert.False(t, hasAssignments)
}

func TestGetParticipant_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetParticipant(context.Background(), 999)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestUpdateParticipant_ServerErrorKeepsMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/participants/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"medicaidId already in use"}`))
	}))

	_, err := client.UpdateParticipant(context.Background(), 7, models.ParticipantDTO{})
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "medicaidId already in use", apiErr.Message)
	assert.True(t, apiErr.IsValidation())
}

func TestDeleteParticipant_ReturnsAcknowledgement(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/participants/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Participant deactivated"}`))
	}))

	result, err := client.DeleteParticipant(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Participant deactivated", result.Message)
}

func TestListParticipantsByStatus_UsesStatusPath(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/participants/status/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"name":"Jane Doe","isActive":true}]}`))
	}))

	participants, err := client.ListParticipantsByStatus(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.True(t, participants[0].IsActive)
}

func TestListParticipants_MalformedErrorBodyFallsBack(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))

	_, err := client.ListParticipants(context.Background(), gateway.ListOptions{})
	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed", apiErr.Message)
}
