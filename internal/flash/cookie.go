package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "showcase_flash"

// CookieStore keeps queued messages in the browser itself. Used when Redis
// is disabled.
type CookieStore struct{}

func (CookieStore) read(r *http.Request) []Message {
	c := lastCookie(r, flashCookie)
	if c == nil {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}

func (s CookieStore) Add(w http.ResponseWriter, r *http.Request, msg Message) error {
	messages := append(s.read(r), msg)
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	value := base64.RawURLEncoding.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.AddCookie(&http.Cookie{Name: flashCookie, Value: value})
	return nil
}

func (s CookieStore) Pop(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	messages := s.read(r)
	if messages == nil {
		return nil, nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return messages, nil
}
