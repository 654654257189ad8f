package clients

import (
	"net/http"
	"time"
)

// HTTP talks to the sidecar services (ASR, report renderer).
type HTTP struct{ c *http.Client }

func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 60 * time.Second}} }

func NewHTTPWithTimeout(d time.Duration) *HTTP {
	if d <= 0 {
		return NewHTTP()
	}
	return &HTTP{c: &http.Client{Timeout: d}}
}
