package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	s := &Server{server: &http.Server{}}

	for _, opt := range []Option{
		Port("8080"),
		ReadTimeout(2 * time.Second),
		WriteTimeout(0),
		ShutdownTimeout(time.Second),
	} {
		opt(s)
	}

	assert.Equal(t, ":8080", s.server.Addr)
	assert.Equal(t, 2*time.Second, s.server.ReadTimeout)
	assert.Zero(t, s.server.WriteTimeout)
	assert.Equal(t, time.Second, s.shutdownTimeout)
}
