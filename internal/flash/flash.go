// Package flash carries one-time notifications from a write request to the
// next page the same browser renders.
package flash

import (
	"net/http"
)

const (
	Success = "success"
	Danger  = "danger"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store queues messages for a browser and hands them out exactly once.
type Store interface {
	Add(w http.ResponseWriter, r *http.Request, msg Message) error
	// Pop returns and forgets every queued message.
	Pop(w http.ResponseWriter, r *http.Request) ([]Message, error)
}

// lastCookie returns the most recent cookie named name, so values added to
// the request by an earlier Add win over what the browser sent.
func lastCookie(r *http.Request, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range r.Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
