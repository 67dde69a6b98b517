package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"

	"voyago/config"
	"voyago/models"
)

// ErrNotFound is returned when an itinerary id is unknown or expired.
var ErrNotFound = errors.New("itinerary not found")

// Store keeps finished artifacts around long enough for the calendar
// download and the result page to re-fetch them. Entries expire after the
// configured TTL; artifacts are never mutated in place.
type Store interface {
	Put(ctx context.Context, a *models.ItineraryArtifact) error
	Get(ctx context.Context, id string) (*models.ItineraryArtifact, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the single-process default.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, ttl)}
}

func (s *MemoryStore) Put(_ context.Context, a *models.ItineraryArtifact) error {
	s.cache.SetDefault(a.ID, a)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.ItineraryArtifact, error) {
	if v, ok := s.cache.Get(id); ok {
		return v.(*models.ItineraryArtifact), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// RedisStore shares artifacts across replicas. Selected when REDIS_ADDR is
// configured.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, ttl: cfg.ItineraryTTL()}, nil
}

func redisKey(id string) string { return "itinerary:" + id }

func (s *RedisStore) Put(ctx context.Context, a *models.ItineraryArtifact) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey(a.ID), payload, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.ItineraryArtifact, error) {
	payload, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var artifact models.ItineraryArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

// Ping reports store reachability for the health endpoint.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
