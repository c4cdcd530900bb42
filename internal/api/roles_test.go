package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smazurov/streamroles/internal/api/models"
	"github.com/smazurov/streamroles/internal/events"
	"github.com/smazurov/streamroles/internal/metrics"
	"github.com/smazurov/streamroles/internal/roles"
	"github.com/smazurov/streamroles/internal/streams"
)

type fakeLister struct {
	list []streams.Descriptor
	err  error
}

func (f *fakeLister) ListStreamOptions(_ context.Context) ([]streams.Descriptor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type memoryStore struct {
	roles     map[string]string
	prebuffer []string
	explicit  bool
}

func (m *memoryStore) Load() error { return nil }
func (m *memoryStore) Save() error { return nil }

func (m *memoryStore) RoleSelection(role string) string {
	if sel, ok := m.roles[role]; ok && sel != "" {
		return sel
	}
	return "Default"
}

func (m *memoryStore) SetRoleSelection(role, selection string) error {
	m.roles[role] = selection
	return nil
}

func (m *memoryStore) EnabledStreams() ([]string, bool) {
	return m.prebuffer, m.explicit
}

func (m *memoryStore) SetEnabledStreams(names []string) error {
	if names == nil {
		names = []string{}
	}
	m.prebuffer = names
	m.explicit = true
	return nil
}

func (m *memoryStore) ClearEnabledStreams() error {
	m.prebuffer = nil
	m.explicit = false
	return nil
}

func testDescriptors() []streams.Descriptor {
	return []streams.Descriptor{
		{Name: "main", Source: "sensor", Container: "mp4", Video: &streams.Resolution{Width: 3840, Height: 2160}},
		{Name: "substream", Source: "sensor", Container: "mp4", Video: &streams.Resolution{Width: 1280, Height: 720}},
	}
}

func setupTestServer(t *testing.T, opts *Options) *httptest.Server {
	t.Helper()
	if opts.Service == nil {
		store := &memoryStore{roles: make(map[string]string)}
		lister := &fakeLister{list: testDescriptors()}
		opts.Service = roles.NewService(store, lister, opts.EventBus, metrics.NewRecorder(nil))
	}
	server := NewServer(opts)
	ts := httptest.NewServer(server.GetMux())
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	data := decodeBody[models.HealthData](t, resp)
	if data.Status != "ok" {
		t.Errorf("expected ok status, got %q", data.Status)
	}
}

func TestListStreams(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	resp, err := http.Get(ts.URL + "/api/streams")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data := decodeBody[models.StreamListData](t, resp)
	if data.Count != 2 {
		t.Errorf("expected 2 streams, got %d", data.Count)
	}
}

func TestListStreamsCameraDown(t *testing.T) {
	store := &memoryStore{roles: make(map[string]string)}
	lister := &fakeLister{err: streams.NewError(streams.ErrCodeCameraUnreachable, "connection refused", nil)}
	bus := events.New()
	svc := roles.NewService(store, lister, bus, metrics.NewRecorder(nil))
	ts := setupTestServer(t, &Options{EventBus: bus, Service: svc})

	resp, err := http.Get(ts.URL + "/api/streams")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 for unreachable camera, got %d", resp.StatusCode)
	}
}

func TestListRoles(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	resp, err := http.Get(ts.URL + "/api/roles")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data := decodeBody[models.RoleListData](t, resp)
	if data.Count != 5 {
		t.Errorf("expected 5 roles, got %d", data.Count)
	}
	for _, state := range data.Roles {
		if state.Selection != "Default" {
			t.Errorf("role %s: expected pristine Default selection, got %q", state.Role, state.Selection)
		}
		if state.Stream == nil {
			t.Errorf("role %s: expected a resolved stream", state.Role)
		}
	}
}

func TestGetRoleUnknown(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	resp, err := http.Get(ts.URL + "/api/roles/nightVision")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown role, got %d", resp.StatusCode)
	}
}

func TestSetRoleSelection(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	body := bytes.NewBufferString(`{"selection":"substream"}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/roles/defaultStream", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	state := decodeBody[roles.RoleState](t, resp)
	if state.Selection != "substream" {
		t.Errorf("expected stored selection, got %q", state.Selection)
	}
	if state.IsDefault {
		t.Error("expected explicit resolution after pinning")
	}
	if state.Stream == nil || state.Stream.Name != "substream" {
		t.Errorf("expected pinned stream resolved, got %+v", state.Stream)
	}
}

func TestSetRoleSelectionUnknownStream(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	body := bytes.NewBufferString(`{"selection":"no-such-stream"}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/roles/defaultStream", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown stream, got %d", resp.StatusCode)
	}
}

func TestPrebufferLifecycle(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	// Computed default: first eligible stream
	resp, err := http.Get(ts.URL + "/api/prebuffer")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	state := decodeBody[roles.PrebufferState](t, resp)
	if state.Explicit {
		t.Error("expected computed prebuffer state")
	}
	if len(state.Enabled) != 1 || state.Enabled[0] != "main" {
		t.Errorf("expected computed default [main], got %v", state.Enabled)
	}

	// Explicit empty set
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/prebuffer", bytes.NewBufferString(`{"enabled":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	state = decodeBody[roles.PrebufferState](t, resp)
	if !state.Explicit {
		t.Error("expected explicit state after PUT")
	}
	if len(state.Enabled) != 0 {
		t.Errorf("expected empty enabled set, got %v", state.Enabled)
	}

	// Clear reverts to computed default
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/prebuffer", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	state = decodeBody[roles.PrebufferState](t, resp)
	if state.Explicit {
		t.Error("expected computed state after DELETE")
	}
	if len(state.Enabled) != 1 || state.Enabled[0] != "main" {
		t.Errorf("expected computed default restored, got %v", state.Enabled)
	}
}

func TestBasicAuthRequired(t *testing.T) {
	ts := setupTestServer(t, &Options{
		EventBus:     events.New(),
		AuthUsername: "admin",
		AuthPassword: "secret",
	})

	// Protected endpoint rejects anonymous requests
	resp, err := http.Get(ts.URL + "/api/roles")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", resp.StatusCode)
	}

	// Health stays open
	resp, err = http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health to bypass auth, got %d", resp.StatusCode)
	}

	// Valid credentials pass
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/roles", nil)
	req.SetBasicAuth("admin", "secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with credentials, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	recorder := metrics.NewRecorder(nil)
	store := &memoryStore{roles: make(map[string]string)}
	bus := events.New()
	svc := roles.NewService(store, &fakeLister{list: testDescriptors()}, bus, recorder)
	ts := setupTestServer(t, &Options{
		EventBus:          bus,
		Service:           svc,
		PrometheusHandler: recorder.Handler(),
	})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from metrics endpoint, got %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/roles", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected permissive origin, got %q", got)
	}
}

func TestVersionEndpoint(t *testing.T) {
	ts := setupTestServer(t, &Options{EventBus: events.New()})

	resp, err := http.Get(ts.URL + "/api/version")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data := decodeBody[models.VersionData](t, resp)
	if data.Version == "" {
		t.Error("expected version string")
	}
	if data.GoVersion == "" {
		t.Error("expected Go version string")
	}
}
