package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"ms-showcase/internal/logger"
)

const (
	SessionCookie = "showcase_session"
	keyPrefix     = "flash:"
)

// RedisStore keeps queued messages in a Redis list keyed by a random
// session id stored in a cookie.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{Client: client, TTL: ttl}
}

// Connect opens a Redis client and checks it answers PING.
func Connect(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error("REDIS", fmt.Sprintf("Failed to connect to Redis at %s: %v", addr, err))
		client.Close()
		return nil, err
	}

	log.Info("REDIS", fmt.Sprintf("Connected to Redis at %s for flash messages", addr))
	return client, nil
}

func (s *RedisStore) sessionID(w http.ResponseWriter, r *http.Request, create bool) string {
	if c := lastCookie(r, SessionCookie); c != nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	if !create {
		return ""
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// later reads in this request see the new session
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	return id
}

func (s *RedisStore) Add(w http.ResponseWriter, r *http.Request, msg Message) error {
	id := s.sessionID(w, r, true)
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := keyPrefix + id
	ctx := r.Context()
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, s.TTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("queue flash message: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	id := s.sessionID(w, r, false)
	if id == "" {
		return nil, nil
	}

	key := keyPrefix + id
	ctx := r.Context()
	var items *redis.StringSliceCmd
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read flash messages: %w", err)
	}

	var messages []Message
	for _, raw := range items.Val() {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
