package garageservice

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

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetGarage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/garage", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"garage": [
				{"sector": "A", "base_price": 10.00, "max_capacity": 100},
				{"sector": "B", "base_price": 4.00, "max_capacity": 72}
			],
			"spots": [
				{"id": "A-1", "sector": "A", "lat": -23.561684, "lng": -46.655981},
				{"id": "B-1", "sector": "B", "lat": -23.561674, "lng": -46.655971}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})

	layout, err := client.GetGarage(context.Background())
	require.NoError(t, err)

	require.Len(t, layout.Garage, 2)
	assert.Equal(t, "A", layout.Garage[0].Sector)
	assert.InDelta(t, 10.00, layout.Garage[0].BasePrice, 0.001)
	assert.Equal(t, 100, layout.Garage[0].MaxCapacity)

	require.Len(t, layout.Spots, 2)
	assert.Equal(t, "A-1", layout.Spots[0].ID)
	assert.Equal(t, "A", layout.Spots[0].Sector)
	assert.InDelta(t, -23.561684, layout.Spots[0].Lat, 0.0000001)
}

func TestGetGarage_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})

	_, err := client.GetGarage(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetGarage_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"garage": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})

	_, err := client.GetGarage(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetGarage_EmptyLayoutRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"garage": [], "spots": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})

	_, err := client.GetGarage(context.Background())
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

func TestGetGarage_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})

	_, err := client.GetGarage(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
