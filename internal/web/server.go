package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/venantvr/go-trading-objects/internal/storage/positions"
)

const recordPollInterval = 2 * time.Second

type positionReader interface {
	RecordsAfter(index uint64) ([]positions.Entry, error)
}

// Server exposes HTTP endpoints serving the HTML dashboard and an SSE
// stream of position snapshots.
type Server struct {
	Addr  string
	Store positionReader
}

// NewServer creates a new web server instance.
func NewServer(addr string, store positionReader) *Server {
	return &Server{Addr: addr, Store: store}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/positions/stream", s.handlePositionStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handlePositionStream(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "position store not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(recordPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendRecords := func() error {
		entries, err := s.Store.RecordsAfter(lastIndex)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for _, entry := range entries {
			payload, err := json.Marshal(entry.Record)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "event: position\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			lastIndex = entry.Index
		}
		return nil
	}

	if err := sendRecords(); err != nil {
		http.Error(w, "failed to load positions", http.StatusInternalServerError)
		log.Printf("position stream initial load: %v", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendRecords(); err != nil {
				log.Printf("position stream poll err: %v", err)
			}
		}
	}
}

// Single-page dashboard: latest snapshot per position id, grouped by pair.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Portfolio</title>
  <link href="https://fonts.googleapis.com/css2?family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --grid:rgba(0,0,0,0.1);
      --gain:#0a7a3d;
      --loss:#b8123e;
    }
    body {
      margin:0; padding:24px;
      background:var(--bg); color:var(--ink);
      font-family:'Space Mono', monospace;
    }
    h1 { font-size:18px; letter-spacing:2px; }
    .pair { margin-top:24px; }
    .pair h2 {
      font-size:14px; color:var(--ink-mid);
      border-bottom:1px solid var(--grid); padding-bottom:6px;
    }
    table { width:100%; border-collapse:collapse; font-size:13px; }
    th {
      text-align:left; color:var(--ink-soft); font-weight:400;
      padding:6px 12px 6px 0;
    }
    td { padding:6px 12px 6px 0; border-top:1px solid var(--grid); }
    td.id { color:var(--ink-soft); }
    .empty { color:var(--ink-soft); margin-top:16px; }
  </style>
</head>
<body>
  <h1>PORTFOLIO</h1>
  <div id="pairs"></div>
  <div id="empty" class="empty">waiting for positions...</div>
  <script>
    const latest = new Map();

    function render() {
      const byPair = new Map();
      for (const rec of latest.values()) {
        if (!byPair.has(rec.pair)) byPair.set(rec.pair, []);
        byPair.get(rec.pair).push(rec);
      }
      const root = document.getElementById('pairs');
      root.innerHTML = '';
      document.getElementById('empty').style.display = latest.size ? 'none' : 'block';

      for (const [pair, recs] of byPair) {
        const section = document.createElement('div');
        section.className = 'pair';
        const rows = recs.map(r => '<tr>' +
          '<td class="id">' + r.id.slice(0, 8) + '</td>' +
          '<td>' + r.number_of_tokens + '</td>' +
          '<td>' + r.purchase_price + '</td>' +
          '<td>' + r.expected_sale_price + '</td>' +
          '<td>' + r.next_purchase_price + '</td>' +
          '<td>' + (r.strategy_tag || '') + '</td>' +
          '</tr>').join('');
        section.innerHTML = '<h2>' + pair + '</h2>' +
          '<table><tr>' +
          '<th>id</th><th>tokens</th><th>entry</th><th>target</th><th>dca</th><th>tag</th>' +
          '</tr>' + rows + '</table>';
        root.appendChild(section);
      }
    }

    const source = new EventSource('/positions/stream');
    source.addEventListener('position', ev => {
      const rec = JSON.parse(ev.data);
      latest.set(rec.id, rec);
      render();
    });
  </script>
</body>
</html>
`
