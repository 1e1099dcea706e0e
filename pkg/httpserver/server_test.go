package httpserver_test

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Camping-RSO/camping-logs-ms/pkg/httpserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	return port
}

func TestServer_ServeAndShutdown(t *testing.T) {
	port := freePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv := httpserver.New(handler, httpserver.Port(port), httpserver.ShutdownTimeout(time.Second))
	assert.Equal(t, ":"+port, srv.Addr())

	var (
		resp *http.Response
		err  error
	)
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://127.0.0.1:" + port + "/")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	require.NoError(t, srv.Shutdown())

	err, ok := <-srv.Notify()
	assert.False(t, ok)
	assert.NoError(t, err)
}
