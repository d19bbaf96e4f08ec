// Package connectivity supplies the injected network-availability signal.
// The core polls it and never owns it.
package connectivity

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"
)

// Probe reports whether the network is currently usable.
type Probe interface {
	Available(ctx context.Context) bool
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func(ctx context.Context) bool

func (f ProbeFunc) Available(ctx context.Context) bool { return f(ctx) }

// DialProbe checks reachability of one host by opening a TCP connection.
// Results are cached briefly so concurrent requests don't stampede.
type DialProbe struct {
	host    string
	timeout time.Duration
	ttl     time.Duration

	mu        sync.Mutex
	lastCheck time.Time
	lastOK    bool
}

// NewDialProbe creates a probe against the host of the given URL.
func NewDialProbe(rawURL string, timeout time.Duration) *DialProbe {
	host := "1.1.1.1:443"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
		if u.Port() == "" {
			if u.Scheme == "http" {
				host += ":80"
			} else {
				host += ":443"
			}
		}
	}
	return &DialProbe{
		host:    host,
		timeout: timeout,
		ttl:     5 * time.Second,
	}
}

// Available dials the host, reusing a recent verdict within the TTL.
func (p *DialProbe) Available(ctx context.Context) bool {
	p.mu.Lock()
	if time.Since(p.lastCheck) < p.ttl {
		ok := p.lastOK
		p.mu.Unlock()
		return ok
	}
	p.mu.Unlock()

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.host)
	ok := err == nil
	if conn != nil {
		conn.Close()
	}

	p.mu.Lock()
	p.lastCheck = time.Now()
	p.lastOK = ok
	p.mu.Unlock()
	return ok
}
