package guideservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestGetGuide_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/guides/7", r.URL.Path)
		w.Write([]byte(`{
			"id": 7,
			"display_name": "Maria",
			"policy_kind": "moderate",
			"deposit_percent": 25,
			"is_active": true
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	guide, err := client.GetGuide(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), guide.ID)
	assert.Equal(t, "moderate", guide.PolicyKind)
	assert.Equal(t, 25, guide.DepositPercent)
	assert.True(t, guide.IsActive)
}

func TestGetGuide_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.GetGuide(context.Background(), 999)
	require.ErrorIs(t, err, ErrGuideNotFound)
}

func TestGetService_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/3", r.URL.Path)
		w.Write([]byte(`{
			"id": 3,
			"guide_id": 7,
			"title": "Old Town Walking Tour",
			"price_cents": 10000,
			"duration_minutes": 180,
			"default_capacity": 8,
			"is_active": true
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	service, err := client.GetService(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), service.ID)
	assert.Equal(t, int64(7), service.GuideID)
	assert.Equal(t, int64(10000), service.PriceCents)
	assert.Equal(t, 180, service.DurationMinutes)
}

func TestGetService_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.GetService(context.Background(), 999)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGet_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.GetGuide(context.Background(), 7)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGet_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.GetGuide(context.Background(), 7)
	require.ErrorIs(t, err, ErrInvalidResponse)
}
