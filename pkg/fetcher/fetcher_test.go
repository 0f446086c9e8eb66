package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetHtmlBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			if r.Header.Get("User-Agent") == "" {
				t.Error("missing User-Agent")
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
		case "/redirect":
			http.Redirect(w, r, "/page", http.StatusFound)
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name      string
		path      string
		wantErr   string
		wantFinal string
	}{
		{name: "html page", path: "/page", wantFinal: "/page"},
		{name: "follows redirects", path: "/redirect", wantFinal: "/page"},
		{name: "not found", path: "/missing", wantErr: "status code: 404"},
		{name: "not html", path: "/json", wantErr: "unsupported content type"},
	}

	f := NewFetcher(5 * time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.GetHtmlBytes(context.Background(), srv.URL+tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("GetHtmlBytes() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetHtmlBytes() error = %v", err)
			}
			if !strings.Contains(string(resp.Body), "hello") {
				t.Errorf("body = %q", resp.Body)
			}
			if !strings.HasSuffix(resp.FinalURL, tt.wantFinal) {
				t.Errorf("FinalURL = %q, want suffix %q", resp.FinalURL, tt.wantFinal)
			}
		})
	}
}

func TestGetHtmlBytes_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>late</p>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFetcher(0).GetHtmlBytes(ctx, srv.URL); err == nil {
		t.Error("GetHtmlBytes() with cancelled context should fail")
	}
}
