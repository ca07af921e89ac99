package openstack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/session"
)

// TestRealClient_InterfaceCompliance verifies RealClient implements Client.
func TestRealClient_InterfaceCompliance(_ *testing.T) {
	var _ Client = (*RealClient)(nil)
}

func newTestClient(t *testing.T, handler http.Handler) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	endpoints := map[string]string{
		serviceReservation: srv.URL,
		serviceCompute:     srv.URL,
		serviceNetwork:     srv.URL,
		serviceImage:       srv.URL,
		serviceContainer:   srv.URL,
		serviceShare:       srv.URL,
	}
	timeouts := config.LoadTimeouts()
	timeouts.RetryMaxAttempts = 2
	timeouts.RetryInitialDelay = time.Millisecond
	return NewRealClient(session.New(session.StaticToken("test-token"), endpoints), WithTimeouts(timeouts))
}

func TestRealClient_RetriesServerErrors(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"lease": map[string]any{"id": "lease-1", "status": "ACTIVE"},
		})
	}))

	lease, err := c.GetLease(context.Background(), "lease-1")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", lease.Status)
	assert.Equal(t, 3, calls)
}

func TestRealClient_DoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "lease not found", http.StatusNotFound)
	}))

	_, err := c.GetLease(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, session.IsNotFound(err))
	assert.Equal(t, 1, calls)
}

func TestRealClient_RetryBudgetExhausted(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.GetLease(context.Background(), "lease-1")
	require.Error(t, err)
	var apiErr *session.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 3, calls) // initial attempt plus the retry budget
}

func TestRealClient_CreateLease(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/leases", r.URL.Path)
		require.Equal(t, "test-token", r.Header.Get("X-Auth-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"lease": map[string]any{"id": "lease-1", "name": "my-lease", "status": "PENDING"},
		})
	}))

	lease, err := c.CreateLease(context.Background(), LeaseCreateRequest{
		Name:  "my-lease",
		Start: "2021-01-01 00:01",
		End:   "2021-01-02 00:00",
		Reservations: []ReservationRequest{
			{ResourceType: ResourceTypeNode, Min: 1, Max: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "lease-1", lease.ID)
	assert.Equal(t, "PENDING", lease.Status)

	payload, ok := captured["lease"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "my-lease", payload["name"])
	// The reservation service rejects payloads missing the events list.
	events, present := payload["events"]
	require.True(t, present)
	assert.Empty(t, events)
}

func TestRealClient_GetLease_NotFoundPassesThrough(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "lease not found", http.StatusNotFound)
	}))

	_, err := c.GetLease(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, session.IsNotFound(err))
}

func TestRealClient_UpdateLease_Prolong(t *testing.T) {
	var captured map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/v1/leases/lease-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"lease": map[string]any{"id": "lease-1", "status": "ACTIVE"},
		})
	}))

	lease, err := c.UpdateLease(context.Background(), "lease-1", "my-lease", "60m")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", lease.Status)
	assert.Equal(t, "my-lease", captured["name"])
	assert.Equal(t, "60m", captured["prolong_for"])
}

func TestRealClient_ExtendShare(t *testing.T) {
	var captured map[string]map[string]int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/shares/share-1/action", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))

	require.NoError(t, c.ExtendShare(context.Background(), "share-1", 20))
	assert.Equal(t, 20, captured["extend"]["new_size"])
}

func TestRealClient_CreateServer_SchedulerHint(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/servers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"server": map[string]any{"id": "srv-1", "status": "BUILD"},
		})
	}))

	srv, err := c.CreateServer(context.Background(), ServerCreateRequest{
		Name:          "node-0",
		ImageID:       "img-1",
		FlavorID:      "flv-1",
		SchedulerHint: map[string]string{"reservation": "res-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", srv.ID)

	hints, ok := captured["os:scheduler_hints"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", hints["reservation"])

	server, ok := captured["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "img-1", server["imageRef"])
	assert.Equal(t, float64(1), server["min_count"])
}

func TestRealClient_PublicNetworkID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, publicNetworkName, r.URL.Query().Get("name"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"networks": []map[string]any{
				{"id": "net-internal", "name": "public", "router:external": false},
				{"id": "net-ext", "name": "public", "router:external": true},
			},
		})
	}))

	id, err := c.PublicNetworkID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "net-ext", id)
}

func TestRealClient_PublicNetworkID_NoneFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"networks": []map[string]any{}})
	}))

	_, err := c.PublicNetworkID(context.Background())
	assert.Error(t, err)
}

func TestRealClient_AddFloatingIP(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/servers/srv-1/action", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))

	require.NoError(t, c.AddFloatingIP(context.Background(), "srv-1", "192.0.2.10"))

	action, ok := captured["addFloatingIp"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "192.0.2.10", action["address"])
}

func TestRealClient_DeleteContainer_Stop(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/v1/containers/c-1", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("stop"))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteContainer(context.Background(), "c-1", true))
}

func TestRealClient_CreateKeyPair(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/os-keypairs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"keypair": map[string]any{
				"name":        "trestle-key",
				"public_key":  "ssh-ed25519 AAAA test",
				"fingerprint": "ab:cd",
			},
		})
	}))

	kp, err := c.CreateKeyPair(context.Background(), "trestle-key", "ssh-ed25519 AAAA test")
	require.NoError(t, err)
	assert.Equal(t, "trestle-key", kp.Name)
	assert.Equal(t, "ab:cd", kp.Fingerprint)

	payload, ok := captured["keypair"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ssh-ed25519 AAAA test", payload["public_key"])
}

func TestRealClient_ListKeyPairs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/os-keypairs", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keypairs": []map[string]any{
				{"keypair": map[string]any{"name": "a"}},
				{"keypair": map[string]any{"name": "b"}},
			},
		})
	}))

	pairs, err := c.ListKeyPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "a", pairs[0].Name)
	assert.Equal(t, "b", pairs[1].Name)
}
