package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memDraftStore guarda copias JSON, igual que el store de Redis.
type memDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
	saves  int
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{drafts: map[string][]byte{}}
}

func (s *memDraftStore) Save(_ context.Context, d *form.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.drafts[d.StoreID+"/"+d.ID] = raw
	s.saves++
	return nil
}

func (s *memDraftStore) Get(_ context.Context, storeID, id string) (*form.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.drafts[storeID+"/"+id]
	if !ok {
		return nil, nil
	}
	var d form.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *memDraftStore) List(ctx context.Context, storeID string) ([]*form.Draft, error) {
	s.mu.Lock()
	var keys []string
	for k := range s.drafts {
		keys = append(keys, k)
	}
	s.mu.Unlock()
	sort.Strings(keys)
	var out []*form.Draft
	for _, k := range keys {
		var d form.Draft
		s.mu.Lock()
		err := json.Unmarshal(s.drafts[k], &d)
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if d.StoreID == storeID {
			out = append(out, &d)
		}
	}
	return out, nil
}

func (s *memDraftStore) Delete(_ context.Context, storeID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, storeID+"/"+id)
	return nil
}

// memCache caché de referencia en memoria; failWith simula Redis caído.
type memCache struct {
	data     map[string][]byte
	failWith error
	deletes  int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if c.failWith != nil {
		return false, c.failWith
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any) error {
	if c.failWith != nil {
		return c.failWith
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.deletes++
	if c.failWith != nil {
		return c.failWith
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

var errRedisDown = errors.New("redis: connection refused")

// memCategoryRepo
type memCategoryRepo struct {
	items []*entity.Category
	lists int
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.items = append(r.items, c)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) GetByStoreAndCode(_ context.Context, storeID, code string) (*entity.Category, error) {
	for _, c := range r.items {
		if c.StoreID == storeID && c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Category, error) {
	r.lists++
	var out []*entity.Category
	for _, c := range r.items {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	return out, nil
}

// memSupplierRepo
type memSupplierRepo struct {
	items []*entity.Supplier
}

func (r *memSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.items = append(r.items, s)
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memSupplierRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.items {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	return out, nil
}

// memProductRepo
type memProductRepo struct {
	items     map[string]*entity.Product
	failWrite error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.items[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.items[id], nil
}

func (r *memProductRepo) GetByStoreAndSKU(_ context.Context, storeID, sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.StoreID == storeID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *memProductRepo) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// memTx ejecuta fn sobre el mismo repo (sin transacción real).
type memTx struct {
	repo repository.ProductRepository
	runs int
}

func (t *memTx) Run(_ context.Context, fn func(repository.ProductRepository) error) error {
	t.runs++
	return fn(t.repo)
}

// memStoreRepo
type memStoreRepo struct {
	items []*entity.Store
}

func (r *memStoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.items = append(r.items, s)
	return nil
}

func (r *memStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memStoreRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Store, error) {
	for _, s := range r.items {
		if s.TaxID == taxID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memStoreRepo) List(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	if offset >= len(r.items) {
		return nil, nil
	}
	out := r.items[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
