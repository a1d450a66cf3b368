package handlers

import (
	"net"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// testServer exposes a fiber app over a real TCP listener so the stdlib
// HTTP client can exercise it, mirroring httptest.NewServer's URL/Close
// surface. Fiber's Handler() is a fasthttp.RequestHandler, which cannot
// be passed to httptest.NewServer directly, and the buffering net/http
// adaptor would deadlock on the SSE streaming endpoint.
type testServer struct {
	URL string
	app *fiber.App
}

func newTestServer(t *testing.T, app *fiber.App) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	return &testServer{URL: "http://" + ln.Addr().String(), app: app}
}

func (s *testServer) Close() {
	_ = s.app.Shutdown()
}
