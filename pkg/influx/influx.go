// Package influx holds InfluxDB 1.x connection coordinates and opens a new
// client per call. Callers own the returned client and must Close it.
package influx

import (
	"net"
	"time"

	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	client "github.com/influxdata/influxdb1-client/v2"
)

const (
	userAgent          = "camping-logs-ms"
	defaultPingTimeout = 3 * time.Second
)

type Influx struct {
	host               string
	port               string
	user               string
	password           string
	ssl                bool
	insecureSkipVerify bool
	timeout            time.Duration

	Database string
}

func New(host, port string, opts ...Option) *Influx {
	i := &Influx{
		host: host,
		port: port,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *Influx) Addr() string {
	scheme := "http"
	if i.ssl {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(i.host, i.port)
}

// Dial builds a fresh HTTP client. No request is sent, so an unreachable
// server surfaces on the first Query or Write.
func (i *Influx) Dial() (client.Client, error) {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:               i.Addr(),
		Username:           i.user,
		Password:           i.password,
		UserAgent:          userAgent,
		Timeout:            i.timeout,
		InsecureSkipVerify: i.insecureSkipVerify,
	})
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return c, nil
}

// Ping checks that the server answers and returns its version.
func (i *Influx) Ping() (string, error) {
	c, err := i.Dial()
	if err != nil {
		return "", err
	}
	defer c.Close()

	_, version, err := c.Ping(defaultPingTimeout)
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}
	return version, nil
}
