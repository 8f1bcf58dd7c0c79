package directory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamalerts/internal/common"
	"streamalerts/internal/config"
)

func newTestClient(baseURL, relayURL string) *Client {
	return NewClient(&config.Config{
		Directory: config.DirectoryConfig{
			BaseURL:       baseURL,
			EmailRelayURL: relayURL,
			TimeoutSecs:   2,
		},
	})
}

func TestCoordinators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entities/group/engineering/coordinators", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]int64{"person_ids": {3, 4}})
	}))
	defer server.Close()

	ids, err := newTestClient(server.URL, "").Coordinators(context.Background(), common.EntityGroup, "engineering")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)
}

func TestStreamOwner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entities/person/bjones/owner", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int64{"person_id": 2})
	}))
	defer server.Close()

	owner, err := newTestClient(server.URL, "").StreamOwner(context.Background(), common.EntityPerson, "bjones")
	require.NoError(t, err)
	assert.Equal(t, int64(2), owner)
}

func TestCommenters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/activities/42/commenters", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]int64{"person_ids": {1, 4, 7}})
	}))
	defer server.Close()

	ids, err := newTestClient(server.URL, "").Commenters(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 7}, ids)
}

func TestDirectoryErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Commenters(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/send", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, float64(4), payload["recipient_id"])
		assert.Equal(t, "hello", payload["body"])
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := newTestClient("", server.URL).Send(context.Background(), 4, "subject", "hello")
	require.NoError(t, err)
}

func TestSendEmailWithoutRelayConfigured(t *testing.T) {
	err := newTestClient("", "").Send(context.Background(), 4, "subject", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendEmailRelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestClient("", server.URL).Send(context.Background(), 4, "subject", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
