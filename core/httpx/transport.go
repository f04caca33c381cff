package httpx

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeoutSeconds is used when a driver config leaves the timeout at zero.
const DefaultTimeoutSeconds = 30

// NewTransport builds an HTTP transport with strict connection timeouts. It is shared by
// the blob and queue drivers so both SDKs dial with the same limits.
func NewTransport(timeoutSeconds int) *http.Transport {
	timeout := timeoutSeconds
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
}

// NewClient wraps NewTransport in an *http.Client, the shape the Azure SDK expects.
func NewClient(timeoutSeconds int) *http.Client {
	return &http.Client{Transport: NewTransport(timeoutSeconds)}
}
