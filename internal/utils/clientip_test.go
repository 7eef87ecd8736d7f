package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:   "remote addr only",
			remote: "10.0.0.5:4242",
			want:   "10.0.0.5",
		},
		{
			name:    "proxy headers ignored when untrusted",
			remote:  "10.0.0.5:4242",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4"},
			want:    "10.0.0.5",
		},
		{
			name:       "first forwarded hop",
			remote:     "127.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"},
			trustProxy: true,
			want:       "1.2.3.4",
		},
		{
			name:   "cloudflare header wins",
			remote: "127.0.0.1:1",
			headers: map[string]string{
				"CF-Connecting-IP": "9.9.9.9",
				"X-Forwarded-For":  "1.2.3.4",
			},
			trustProxy: true,
			want:       "9.9.9.9",
		},
		{
			name:       "real ip fallback",
			remote:     "127.0.0.1:1",
			headers:    map[string]string{"X-Real-IP": "8.8.4.4"},
			trustProxy: true,
			want:       "8.8.4.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r, tt.trustProxy))
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"192.168.1.0/24", " 10.0.0.1 ", "garbage", ""})

	require.False(t, m.IsEmpty())

	cases := map[string]bool{
		"192.168.1.42":    true,
		"10.0.0.1":        true,
		"::ffff:10.0.0.1": true,
		"10.0.0.2":        false,
		"192.168.2.1":     false,
		"not-an-ip":       false,
	}
	for ip, want := range cases {
		assert.Equal(t, want, m.Allow(ip), "Allow(%q)", ip)
	}

	assert.True(t, NewIPMatcher(nil).IsEmpty())
}
