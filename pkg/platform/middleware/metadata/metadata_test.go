package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vetgate/pkg/requestcontext"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))
}

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "upstream-42", seen)
}

func TestClientMetadata_PopulatesContext(t *testing.T) {
	var ip, ua string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:130.0) Gecko/20100101 Firefox/130.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", ip)
	assert.Contains(t, ua, "Firefox")
	assert.Contains(t, ua, "Linux")
}

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{name: "forwarded-for wins", forwarded: "203.0.113.9", realIP: "10.0.0.1", remoteAddr: "127.0.0.1:1234", want: "203.0.113.9"},
		{name: "first forwarded entry", forwarded: "203.0.113.9, 10.0.0.1", want: "203.0.113.9"},
		{name: "real-ip fallback", realIP: "10.0.0.1", remoteAddr: "127.0.0.1:1234", want: "10.0.0.1"},
		{name: "remote addr strips port", remoteAddr: "127.0.0.1:1234", want: "127.0.0.1"},
		{name: "ipv6 remote addr", remoteAddr: "[::1]:1234", want: "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			req.RemoteAddr = tt.remoteAddr
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	assert.Equal(t, "", NormalizeUserAgent(""))

	got := NormalizeUserAgent("Mozilla/5.0 (X11; Linux x86_64; rv:130.0) Gecko/20100101 Firefox/130.0")
	assert.Contains(t, got, "Firefox")

	assert.NotEmpty(t, NormalizeUserAgent("custom-client/1.0"))
}
