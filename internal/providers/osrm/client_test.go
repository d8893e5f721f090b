package osrm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roadcast/internal/apperr"
	"roadcast/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithOptions(server.URL, 5*time.Second, testLogger())
}

var (
	origin      = types.NewCoords(12.9716, 77.5946)
	destination = types.NewCoords(13.0000, 77.7500)
)

func TestGetRoutes_Success(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"_p~iF~ps|U_ulLnnqC","distance":18200,"duration":1620,"legs":[]}]}`))
	})

	resp, err := client.GetRoutes(context.Background(), origin, destination)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}

	if len(resp.Routes) != 1 {
		t.Fatalf("route count = %d, want 1", len(resp.Routes))
	}
	if resp.Routes[0].Duration != 1620 {
		t.Errorf("duration = %v, want 1620", resp.Routes[0].Duration)
	}

	// Coordinates go on the path as lon,lat pairs.
	if !strings.HasPrefix(gotPath, "/route/v1/driving/77.5946") {
		t.Errorf("request path %q does not start with longitude", gotPath)
	}
	for _, param := range []string{"alternatives=true", "steps=true", "overview=full"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}
}

func TestGetRoutes_NoRouteIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points"}`))
	})

	_, err := client.GetRoutes(context.Background(), origin, destination)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want apperr.ErrNotFound", err)
	}
}

func TestGetRoutes_OkWithZeroRoutesIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	})

	_, err := client.GetRoutes(context.Background(), origin, destination)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want apperr.ErrNotFound", err)
	}
}

func TestGetRoutes_RejectedRequestIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"InvalidQuery","message":"Query string malformed"}`))
	})

	_, err := client.GetRoutes(context.Background(), origin, destination)
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want apperr.ErrUnavailable", err)
	}
}

func TestGetRoutes_ServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetRoutes(context.Background(), origin, destination)
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want apperr.ErrUnavailable", err)
	}
}

func TestGetRoutes_BadJSONIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetRoutes(context.Background(), origin, destination)
	if !errors.Is(err, apperr.ErrMalformed) {
		t.Errorf("error = %v, want apperr.ErrMalformed", err)
	}
}
