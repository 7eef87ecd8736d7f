package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/utils"
)

// EnforceHost allows requests only if r.Host matches one of the allowed hosts.
// Supports wildcard patterns like "*.example.com". Ports are ignored unless the
// pattern carries one. If allowedHosts is empty, it acts as a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost: empty allowedHosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(h))
	}
	log.Debugf("EnforceHost: initialized with hosts=%v", patterns)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debugf("EnforceHost: Host %s REJECTED", host)
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

// matchHost checks if host matches pattern (supports wildcard *.example.com)
func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}

	bare := utils.HostOnly(host)
	if bare == pattern {
		return true
	}

	// Wildcard match: *.example.com matches sub.example.com but not example.com
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(bare, pattern[1:])
	}

	return false
}
