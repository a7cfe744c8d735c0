package galleryapi

import (
	"net/http"
	"time"
)

type Option func(*Client)

func HTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// Timeout bounds every request and the stream handshake. Zero disables it.
func Timeout(timeout time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = timeout
	}
}
