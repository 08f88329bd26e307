package transport

import (
	"context"
	"net"
	"strconv"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535

	maxHostLen = 253
)

// Server is a long-running listener managed by app.Application.
type Server interface {
	// Run blocks until the server stops.
	Run() error
	// Shutdown stops accepting connections and drains in-flight requests.
	Shutdown(context.Context) error
}

// ValidateAddress reports whether addr is a host:port pair with a usable
// port. The host may be empty, an IP literal or a hostname.
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}

	p, err := strconv.Atoi(port)
	if err != nil || p < MinPort || p > MaxPort {
		return false
	}

	return host == "" || net.ParseIP(host) != nil || isHostname(host)
}

func isHostname(host string) bool {
	if len(host) > maxHostLen || strings.HasPrefix(host, "-") || strings.HasSuffix(host, "-") {
		return false
	}

	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}
