package observability_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so counters are non-zero
	observability.ObserveHTTP("/hotels", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("mongo", "hotels", "find", "ok", 3*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{"finder_http_requests_total", "finder_store_operations_total"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestServe_SideListenerUsesRegistry(t *testing.T) {
	if observability.Serve("", observability.InitRegistry()) != nil {
		t.Fatal("empty addr should disable the side listener")
	}

	reg := observability.InitRegistry()
	observability.ObserveExternal("finder_api", "search_hotels", 200, 5*time.Millisecond)

	srv := observability.Serve("127.0.0.1:0", reg)
	if srv == nil {
		t.Fatal("expected a metrics server")
	}
	defer srv.Close()

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "finder_external_requests_total") {
		t.Fatalf("side listener is missing finder metrics:\n%s", rr.Body.String())
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("find: %w", domain.ErrNotFound), "not_found"},
		{domain.ErrInvalidID, "invalid"},
		{errors.New("timeout"), "error"},
	}
	for _, c := range cases {
		if got := observability.Outcome(c.err); got != c.want {
			t.Fatalf("Outcome(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
