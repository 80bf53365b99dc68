package catalogstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// ValkeyStore caches the catalog in a Valkey-compatible database so several
// console replicas share one upstream fetch.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "shelter"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context) (forecast.Catalog, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key()).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return forecast.Catalog{}, false, nil
		}
		return forecast.Catalog{}, false, err
	}
	var c forecast.Catalog
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return forecast.Catalog{}, false, err
	}
	return c, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, c forecast.Catalog, ttl time.Duration) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key() string {
	return s.prefix + ":catalog"
}

var _ catalog.Store = (*ValkeyStore)(nil)
