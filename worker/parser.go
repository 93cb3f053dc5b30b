package worker

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/senan-sh/ayna-analytics/checkin"
)

// Message types carried on the parser channels.
const (
	TypeParseCSV     = "parse-csv"
	TypeParseSuccess = "parse-success"
	TypeParseError   = "parse-error"
)

// Request asks the parser to fetch and normalize one CSV.
type Request struct {
	Type   string `json:"type"`
	CSVURL string `json:"csvUrl"`
}

// Response is the outcome of one request. Payload is set on success, Message
// on failure.
type Response struct {
	Type    string           `json:"type"`
	Payload *checkin.Dataset `json:"payload,omitempty"`
	Message string           `json:"message,omitempty"`
}

type job struct {
	gen uint64
	req Request
}

// Parser fetches and normalizes CSVs on a single background goroutine.
// Each Submit advances a generation counter; when a parse finishes, its
// result is delivered only if no newer Submit or Invalidate happened in the
// meantime. Stale results are dropped silently.
type Parser struct {
	client  *http.Client
	logger  *slog.Logger
	gen     atomic.Uint64
	jobs    chan job
	results chan Response
	done    chan struct{}
}

const jobBuffer = 8

// NewParser starts the background goroutine. A nil client uses
// http.DefaultClient.
func NewParser(client *http.Client, logger *slog.Logger) *Parser {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{
		client:  client,
		logger:  logger,
		jobs:    make(chan job, jobBuffer),
		results: make(chan Response, jobBuffer),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Submit enqueues one parse request and supersedes any in-flight work.
func (p *Parser) Submit(req Request) {
	gen := p.gen.Add(1)
	select {
	case p.jobs <- job{gen: gen, req: req}:
	case <-p.done:
	}
}

// Invalidate supersedes all in-flight work without queueing anything new.
// Completions from before the call are dropped.
func (p *Parser) Invalidate() {
	p.gen.Add(1)
}

// Results delivers one response per non-superseded request.
func (p *Parser) Results() <-chan Response {
	return p.results
}

// Close stops the background goroutine. Pending jobs are abandoned.
func (p *Parser) Close() {
	close(p.done)
}

func (p *Parser) run() {
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			resp := p.process(j.req)
			if p.gen.Load() != j.gen {
				p.logger.Debug("parse worker: dropping stale result",
					"url", j.req.CSVURL, "generation", j.gen)
				continue
			}
			select {
			case p.results <- resp:
			case <-p.done:
				return
			}
		}
	}
}

func (p *Parser) process(req Request) Response {
	if req.Type != TypeParseCSV {
		return Response{Type: TypeParseError, Message: "unknown request type: " + req.Type}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	text, err := checkin.FetchCSV(ctx, p.client, req.CSVURL)
	if err != nil {
		p.logger.Warn("parse worker: fetch failed", "url", req.CSVURL, "error", err.Error())
		return Response{Type: TypeParseError, Message: err.Error()}
	}
	ds, err := checkin.Normalize(text)
	if err != nil {
		p.logger.Warn("parse worker: normalize failed", "url", req.CSVURL, "error", err.Error())
		return Response{Type: TypeParseError, Message: err.Error()}
	}
	return Response{Type: TypeParseSuccess, Payload: ds}
}
