package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raiden-network/scenario-services/internal/app/factory"
	"go.uber.org/zap"
)

// NewApp constructs an App in a temporary instance directory with the
// given route groups. Unset Options fields keep the factory defaults;
// the logger defaults to a no-op logger.
func NewApp(t *testing.T, opts factory.Options, groups ...factory.RouteGroup) *factory.App {
	t.Helper()
	if opts.InstancePath == "" {
		opts.InstancePath = t.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	app, err := factory.Construct(opts, groups...)
	if err != nil {
		t.Fatalf("factory.Construct failed: %v", err)
	}
	return app
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
