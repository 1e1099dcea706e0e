// Package influxtest provides an in-memory server speaking the InfluxDB 1.x
// HTTP API (/ping, /write, /query) for tests.
package influxtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Camping-RSO/camping-logs-ms/pkg/influx"
	"github.com/influxdata/influxdb1-client/models"
)

const version = "1.8.10-influxtest"

type point struct {
	measurement string
	time        time.Time
	fields      map[string]interface{}
}

type Server struct {
	*httptest.Server

	Database string

	mu       sync.Mutex
	points   []point
	writeErr string
	queryErr string
	queries  []string
	writes   []string
}

func NewServer(t testing.TB, database string) *Server {
	t.Helper()

	s := &Server{Database: database}
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/write", s.handleWrite)
	mux.HandleFunc("/query", s.handleQuery)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// Influx returns connection coordinates pointing at the server.
func (s *Server) Influx(opts ...influx.Option) *influx.Influx {
	u, _ := url.Parse(s.URL)
	opts = append([]influx.Option{influx.Database(s.Database)}, opts...)
	return influx.New(u.Hostname(), u.Port(), opts...)
}

// Seed stores a raw point in measurement, bypassing the line protocol.
func (s *Server) Seed(measurement string, fields map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = append(s.points, point{measurement: measurement, time: time.Now(), fields: fields})
}

func (s *Server) FailWrites(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = msg
}

func (s *Server) FailQueries(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryErr = msg
}

// Points returns the field sets stored in measurement, in write order.
func (s *Server) Points(measurement string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []map[string]interface{}
	for _, p := range s.points {
		if p.measurement == measurement {
			out = append(out, p.fields)
		}
	}
	return out
}

// Writes returns the raw line-protocol bodies received on /write.
func (s *Server) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-Influxdb-Version", version)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	if db := r.URL.Query().Get("db"); db != s.Database {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": fmt.Sprintf("database not found: %q", db)})
		return
	}

	s.mu.Lock()
	writeErr := s.writeErr
	s.mu.Unlock()
	if writeErr != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": writeErr})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	parsed, err := models.ParsePointsString(string(body))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, string(body))
	for _, p := range parsed {
		fields, err := p.Fields()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		s.points = append(s.points, point{
			measurement: string(p.Name()),
			time:        p.Time(),
			fields:      fields,
		})
	}
	w.Header().Set("X-Influxdb-Version", version)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.FormValue("q")
	db := r.FormValue("db")

	s.mu.Lock()
	s.queries = append(s.queries, q)
	queryErr := s.queryErr
	s.mu.Unlock()

	if queryErr != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": queryErr})
		return
	}
	if db != s.Database {
		writeJSON(w, http.StatusOK, map[string]any{"results": []any{
			map[string]any{"statement_id": 0, "error": fmt.Sprintf("database not found: %s", db)},
		}})
		return
	}

	measurement, ok := parseSelectAll(q)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": fmt.Sprintf("unsupported query: %s", q)})
		return
	}

	result := map[string]any{"statement_id": 0}
	if row, ok := s.series(measurement); ok {
		result["series"] = []models.Row{row}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": []any{result}})
}

func (s *Server) series(measurement string) (models.Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := map[string]struct{}{}
	var matched []point
	for _, p := range s.points {
		if p.measurement != measurement {
			continue
		}
		matched = append(matched, p)
		for k := range p.fields {
			keys[k] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return models.Row{}, false
	}

	columns := make([]string, 0, len(keys))
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	columns = append([]string{"time"}, columns...)

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].time.Before(matched[j].time) })

	row := models.Row{Name: measurement, Columns: columns}
	for _, p := range matched {
		values := make([]interface{}, len(columns))
		values[0] = p.time.UTC().Format(time.RFC3339Nano)
		for i, col := range columns[1:] {
			values[i+1] = p.fields[col]
		}
		row.Values = append(row.Values, values)
	}
	return row, true
}

func parseSelectAll(q string) (string, bool) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(q), ";"))
	if len(fields) != 4 ||
		!strings.EqualFold(fields[0], "SELECT") ||
		fields[1] != "*" ||
		!strings.EqualFold(fields[2], "FROM") {
		return "", false
	}
	return strings.Trim(fields[3], `"`), true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Influxdb-Version", version)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
