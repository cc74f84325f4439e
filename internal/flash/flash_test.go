package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-showcase/internal/flash"
)

func newRedisStore(t *testing.T) (*flash.RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return flash.NewRedisStore(client, time.Minute), mr
}

// carry copies the Set-Cookie headers of a response onto a new request,
// the way a browser follows a redirect.
func carry(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/venues/1/edit", nil)
	require.NoError(t, store.Add(rec, req, flash.Message{Category: flash.Success, Text: "Venue Hop was successfully edited!"}))
	require.NoError(t, store.Add(rec, req, flash.Message{Category: flash.Danger, Text: "second"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flash.SessionCookie, cookies[0].Name)
	assert.True(t, mr.Exists("flash:"+cookies[0].Value))
	assert.Equal(t, time.Minute, mr.TTL("flash:"+cookies[0].Value))

	next := carry(rec, "/venues/1")
	messages, err := store.Pop(httptest.NewRecorder(), next)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Venue Hop was successfully edited!", messages[0].Text)
	assert.Equal(t, flash.Danger, messages[1].Category)

	messages, err = store.Pop(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRedisStorePopWithoutSession(t *testing.T) {
	store, _ := newRedisStore(t)

	rec := httptest.NewRecorder()
	messages, err := store.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, messages)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRedisStoreMessagesExpire(t *testing.T) {
	store, mr := newRedisStore(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.Add(rec, req, flash.Message{Category: flash.Success, Text: "stale"}))

	mr.FastForward(2 * time.Minute)

	messages, err := store.Pop(httptest.NewRecorder(), carry(rec, "/"))
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := flash.CookieStore{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/artists/create", nil)
	require.NoError(t, store.Add(rec, req, flash.Message{Category: flash.Success, Text: "one"}))
	require.NoError(t, store.Add(rec, req, flash.Message{Category: flash.Success, Text: "two"}))

	cookies := rec.Result().Cookies()
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[len(cookies)-1])

	popRec := httptest.NewRecorder()
	messages, err := store.Pop(popRec, next)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, "two", messages[1].Text)

	cleared := popRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestCookieStoreIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "showcase_flash", Value: "%%%not-base64"})

	messages, err := flash.CookieStore{}.Pop(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Nil(t, messages)
}
