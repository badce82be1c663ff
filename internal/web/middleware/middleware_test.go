package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		realIP     string
		forwarded  string
		wantAddr   string
	}{
		{
			name:       "trusted proxy with real ip header",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4567",
			realIP:     "203.0.113.7",
			wantAddr:   "203.0.113.7",
		},
		{
			name:       "trusted proxy with forwarded chain takes first hop",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4567",
			forwarded:  "203.0.113.7, 10.1.2.3",
			wantAddr:   "203.0.113.7",
		},
		{
			name:       "untrusted client cannot spoof",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "198.51.100.9:4567",
			realIP:     "203.0.113.7",
			wantAddr:   "198.51.100.9:4567",
		},
		{
			name:       "no trusted proxies keeps remote addr",
			trusted:    nil,
			remoteAddr: "10.1.2.3:4567",
			realIP:     "203.0.113.7",
			wantAddr:   "10.1.2.3:4567",
		},
		{
			name:       "single ip entry acts as trusted",
			trusted:    []string{"10.1.2.3"},
			remoteAddr: "10.1.2.3:4567",
			realIP:     "203.0.113.7",
			wantAddr:   "203.0.113.7",
		},
		{
			name:       "invalid header value is ignored",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4567",
			realIP:     "not-an-ip",
			wantAddr:   "10.1.2.3:4567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAddr string
			handler := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAddr = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotAddr != tt.wantAddr {
				t.Errorf("RemoteAddr = %q, want %q", gotAddr, tt.wantAddr)
			}
		})
	}
}

func TestStatusWriterCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	ww.WriteHeader(http.StatusTeapot)
	ww.WriteHeader(http.StatusOK) // second call must be ignored

	if ww.status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", ww.status, http.StatusTeapot)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("recorded code = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestStatusWriterDefaultsOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec, status: 0}

	if _, err := ww.Write([]byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ww.status != http.StatusOK {
		t.Errorf("status = %d, want %d", ww.status, http.StatusOK)
	}
}
