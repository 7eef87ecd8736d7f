package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// HostOnly strips an optional port from "ip:port", "[v6]:port" or a bare ip.
func HostOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// firstHop returns the left-most address of an X-Forwarded-For chain.
func firstHop(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// ClientIP resolves the caller address.
//
// With trustProxy it checks CF-Connecting-IP, the first X-Forwarded-For hop
// and X-Real-IP in that order before falling back to RemoteAddr. Only enable
// it when the server is reachable exclusively through a trusted proxy.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		candidates := []string{
			r.Header.Get("CF-Connecting-IP"),
			firstHop(r.Header.Get("X-Forwarded-For")),
			r.Header.Get("X-Real-IP"),
		}
		for _, c := range candidates {
			if ip := HostOnly(c); ip != "" {
				return ip
			}
		}
	}
	return HostOnly(r.RemoteAddr)
}

// IPMatcher matches single addresses and CIDR prefixes.
type IPMatcher struct {
	addrs    []netip.Addr
	prefixes []netip.Prefix
}

// NewIPMatcher parses a mixed list of IPs and CIDRs. Invalid items are skipped.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			m.addrs = append(m.addrs, a.Unmap())
		}
	}
	return m
}

func (m *IPMatcher) IsEmpty() bool {
	return len(m.addrs) == 0 && len(m.prefixes) == 0
}

func (m *IPMatcher) Allow(ipStr string) bool {
	ip, err := netip.ParseAddr(ipStr)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	for _, a := range m.addrs {
		if a == ip {
			return true
		}
	}
	for _, p := range m.prefixes {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}
