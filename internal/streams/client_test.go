package streams

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListStreamOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/streams" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"main","source":"local","container":"h264","video":{"width":3840,"height":2160}},
			{"name":"cloud","source":"cloud","container":"h264"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	list, err := client.ListStreamOptions(context.Background())
	if err != nil {
		t.Fatalf("ListStreamOptions failed: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(list))
	}
	if list[0].Name != "main" {
		t.Errorf("expected first stream 'main', got %s", list[0].Name)
	}
	if list[0].Video == nil || list[0].Video.Pixels() != 3840*2160 {
		t.Errorf("expected 4k resolution on first stream, got %+v", list[0].Video)
	}
	if list[1].Video != nil {
		t.Errorf("expected unknown resolution on second stream, got %+v", list[1].Video)
	}
}

func TestListStreamOptionsEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer server.Close()

	list, err := NewClient(server.URL).ListStreamOptions(context.Background())
	if err != nil {
		t.Fatalf("ListStreamOptions failed: %v", err)
	}
	if list == nil {
		t.Error("expected non-nil slice for successful query")
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d entries", len(list))
	}
}

func TestListStreamOptionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).ListStreamOptions(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var streamErr *Error
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if streamErr.Code != ErrCodeCameraStatus {
		t.Errorf("expected code %s, got %s", ErrCodeCameraStatus, streamErr.Code)
	}
}

func TestListStreamOptionsUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.ListStreamOptions(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable camera")
	}

	var streamErr *Error
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if streamErr.Code != ErrCodeCameraUnreachable {
		t.Errorf("expected code %s, got %s", ErrCodeCameraUnreachable, streamErr.Code)
	}
}

func TestFindByName(t *testing.T) {
	list := []Descriptor{{Name: "a"}, {Name: "b"}}

	if found := FindByName(list, "b"); found == nil || found.Name != "b" {
		t.Errorf("expected to find 'b', got %+v", found)
	}
	if found := FindByName(list, "missing"); found != nil {
		t.Errorf("expected nil for missing name, got %+v", found)
	}
	if found := FindByName(nil, "a"); found != nil {
		t.Errorf("expected nil for nil list, got %+v", found)
	}
}
