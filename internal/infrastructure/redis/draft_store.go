package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
)

var _ ports.DraftStore = (*DraftStore)(nil)

// DraftStore guarda los borradores como JSON con TTL. Cada tienda mantiene un
// set con los IDs de sus borradores para poder listarlos.
type DraftStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewDraftStore construye el almacén de borradores; ttl se renueva en cada Save.
func NewDraftStore(rdb goredis.UniversalClient, ttl time.Duration) *DraftStore {
	return &DraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(storeID, id string) string { return "draft:" + storeID + ":" + id }
func indexKey(storeID string) string     { return "drafts:" + storeID }

func (s *DraftStore) Save(ctx context.Context, d *form.Draft) error {
	if d == nil {
		return errors.New("draft nil")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, draftKey(d.StoreID, d.ID), raw, s.ttl)
	pipe.SAdd(ctx, indexKey(d.StoreID), d.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Get(ctx context.Context, storeID, id string) (*form.Draft, error) {
	raw, err := s.rdb.Get(ctx, draftKey(storeID, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d form.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (s *DraftStore) List(ctx context.Context, storeID string) ([]*form.Draft, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey(storeID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	out := []*form.Draft{}
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = draftKey(storeID, id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	var expired []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var d form.Draft
		if err := json.Unmarshal([]byte(str), &d); err != nil {
			return nil, fmt.Errorf("decode draft %s: %w", ids[i], err)
		}
		out = append(out, &d)
	}
	// El índice no expira con las claves: se limpia al listar.
	if len(expired) > 0 {
		_ = s.rdb.SRem(ctx, indexKey(storeID), expired...).Err()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *DraftStore) Delete(ctx context.Context, storeID, id string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, draftKey(storeID, id))
	pipe.SRem(ctx, indexKey(storeID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
