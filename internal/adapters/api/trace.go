package api

import (
	"crypto/tls"
	"net/http/httptrace"
	"time"

	"speedprobe/internal/core/domain"
)

// phaseClock records connection phase timestamps for a single request.
// Times are zero for phases that did not occur (reused connections skip
// DNS and connect, plain HTTP skips TLS).
type phaseClock struct {
	start     time.Time
	dnsStart  time.Time
	dnsDone   time.Time
	connDone  time.Time
	gotConn   time.Time
	tlsStart  time.Time
	tlsDone   time.Time
	firstByte time.Time
}

// newPhaseClock returns a clock and the httptrace hooks that drive it.
func newPhaseClock() (*phaseClock, *httptrace.ClientTrace) {
	c := &phaseClock{start: time.Now()}
	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) { c.dnsStart = time.Now() },
		DNSDone:  func(httptrace.DNSDoneInfo) { c.dnsDone = time.Now() },
		ConnectDone: func(_, _ string, err error) {
			if err == nil {
				c.connDone = time.Now()
			}
		},
		GotConn:              func(httptrace.GotConnInfo) { c.gotConn = time.Now() },
		GotFirstResponseByte: func() { c.firstByte = time.Now() },
		TLSHandshakeStart:    func() { c.tlsStart = time.Now() },
		TLSHandshakeDone:     func(tls.ConnectionState, error) { c.tlsDone = time.Now() },
	}
	return c, trace
}

// sample converts the recorded timestamps into a PingSample ending now.
func (c *phaseClock) sample() domain.PingSample {
	s := domain.PingSample{RTT: time.Since(c.start)}
	if !c.dnsStart.IsZero() && !c.dnsDone.IsZero() {
		s.DNSLookup = c.dnsDone.Sub(c.dnsStart)
	}
	if !c.connDone.IsZero() {
		from := c.dnsDone
		if from.IsZero() {
			from = c.start
		}
		s.Connect = c.connDone.Sub(from)
	}
	if !c.tlsStart.IsZero() && !c.tlsDone.IsZero() {
		s.TLS = c.tlsDone.Sub(c.tlsStart)
	}
	if !c.gotConn.IsZero() && !c.firstByte.IsZero() {
		s.ServerWait = c.firstByte.Sub(c.gotConn)
	}
	return s
}
