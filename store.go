package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// PatientStore owns the persisted collection. The whole collection is
// one serialized value, loaded and re-saved on every mutation; the view
// pipeline never touches storage itself.
type PatientStore interface {
	Load(ctx context.Context) ([]Patient, error)
	Save(ctx context.Context, patients []Patient) error
}

// RedisPatientStore keeps the serialized collection under a single key.
type RedisPatientStore struct {
	client *redis.Client
	key    string
}

func NewRedisPatientStore(client *redis.Client, key string) *RedisPatientStore {
	return &RedisPatientStore{client: client, key: key}
}

func (s *RedisPatientStore) Load(ctx context.Context) ([]Patient, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		// An absent key is an empty collection, not an error
		if err == redis.Nil {
			return []Patient{}, nil
		}
		return nil, fmt.Errorf("error loading patients: %v", err)
	}

	var patients []Patient
	if err := json.Unmarshal([]byte(val), &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %v", err)
	}

	return patients, nil
}

func (s *RedisPatientStore) Save(ctx context.Context, patients []Patient) error {
	payload, err := json.Marshal(patients)
	if err != nil {
		return fmt.Errorf("error encoding patients: %v", err)
	}

	if err := s.client.Set(ctx, s.key, string(payload), 0).Err(); err != nil {
		return fmt.Errorf("error saving patients: %v", err)
	}

	return nil
}

func newRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
