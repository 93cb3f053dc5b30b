package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Date,Hour,Route,TotalCount\n2024-03-01,8,12,40\n2024-03-01,9,12,20\n"

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p := NewParser(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(p.Close)
	return p
}

func waitResponse(t *testing.T, p *Parser) Response {
	t.Helper()
	select {
	case resp := <-p.Results():
		return resp
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for parser response")
		return Response{}
	}
}

func TestParserSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, sampleCSV)
	}))
	defer srv.Close()

	p := newTestParser(t)
	p.Submit(Request{Type: TypeParseCSV, CSVURL: srv.URL})

	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseSuccess, resp.Type)
	require.NotNil(t, resp.Payload)
	assert.Len(t, resp.Payload.Rows, 2)
	assert.Equal(t, "Hour", resp.Payload.FirstMetricField)
}

func TestParserFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := newTestParser(t)
	p.Submit(Request{Type: TypeParseCSV, CSVURL: srv.URL})

	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseError, resp.Type)
	assert.Nil(t, resp.Payload)
	assert.Contains(t, resp.Message, "HTTP 502")
}

func TestParserParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "A,B\n\"unclosed,1\n")
	}))
	defer srv.Close()

	p := newTestParser(t)
	p.Submit(Request{Type: TypeParseCSV, CSVURL: srv.URL})

	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseError, resp.Type)
	assert.NotEmpty(t, resp.Message)
}

func TestParserUnknownRequestType(t *testing.T) {
	p := newTestParser(t)
	p.Submit(Request{Type: "reticulate-splines"})

	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseError, resp.Type)
	assert.Contains(t, resp.Message, "unknown request type")
}

func TestParserInvalidateDropsInFlightResult(t *testing.T) {
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-gate
		_, _ = io.WriteString(w, sampleCSV)
	}))
	defer srv.Close()

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, sampleCSV)
	}))
	defer fast.Close()

	p := newTestParser(t)
	p.Submit(Request{Type: TypeParseCSV, CSVURL: srv.URL})
	p.Invalidate()
	close(gate)

	// The superseded completion must never surface; the next submit's must.
	p.Submit(Request{Type: TypeParseCSV, CSVURL: fast.URL})
	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseSuccess, resp.Type)

	select {
	case extra := <-p.Results():
		t.Fatalf("unexpected extra response: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestParserNewerSubmitSupersedesOlder(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = io.WriteString(w, "A\n1\n")
	}))
	defer slow.Close()
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "B\n2\n")
	}))
	defer fast.Close()

	p := newTestParser(t)
	p.Submit(Request{Type: TypeParseCSV, CSVURL: slow.URL})
	p.Submit(Request{Type: TypeParseCSV, CSVURL: fast.URL})

	resp := waitResponse(t, p)
	assert.Equal(t, TypeParseSuccess, resp.Type)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, []string{"B"}, resp.Payload.Fields)
}
