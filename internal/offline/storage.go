package offline

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/sadopc/mastery/internal/store"
)

// Response is a captured resource response, small enough to hold in memory
// and serialize whole.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
	Source Source      `json:"-"`
}

// Source records where a response was served from.
type Source string

const (
	SourceNetwork  Source = "network"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Cache is one named resource cache keyed by URL.
type Cache interface {
	Match(key string) (*Response, bool, error)
	Put(key string, resp *Response) error
}

// Storage manages the set of named caches, so stale versions can be
// enumerated and purged on activation.
type Storage interface {
	Open(name string) (Cache, error)
	Names() ([]string, error)
	Delete(name string) error
}

// ------------------------------------------------------------
// In-memory storage
// ------------------------------------------------------------

// MemoryStorage keeps caches in process memory. Used in tests and for
// ephemeral gateway runs.
type MemoryStorage struct {
	mu     sync.Mutex
	caches map[string]*memoryCache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{caches: make(map[string]*memoryCache)}
}

func (s *MemoryStorage) Open(name string) (Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = &memoryCache{entries: make(map[string]*Response)}
		s.caches[name] = c
	}
	return c, nil
}

func (s *MemoryStorage) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStorage) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caches, name)
	return nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*Response
}

func (c *memoryCache) Match(key string) (*Response, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := *resp
	cp.Source = SourceCache
	return &cp, true, nil
}

func (c *memoryCache) Put(key string, resp *Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *resp
	c.entries[key] = &cp
	return nil
}

// ------------------------------------------------------------
// Durable storage over the KV store
// ------------------------------------------------------------

// KVStorage persists each named cache as its own KV namespace under the
// resource-cache prefix, keeping resource caches apart from record data.
type KVStorage struct {
	store *store.Store
	mu    sync.Mutex
}

func NewKVStorage(s *store.Store) *KVStorage {
	return &KVStorage{store: s}
}

func (s *KVStorage) namespace(name string) string {
	return store.ResourceCachePrefix + name
}

func (s *KVStorage) Open(name string) (Cache, error) {
	return &kvCache{storage: s, ns: s.namespace(name)}, nil
}

func (s *KVStorage) Names() ([]string, error) {
	namespaces, err := s.store.Namespaces(store.ResourceCachePrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		names = append(names, strings.TrimPrefix(ns, store.ResourceCachePrefix))
	}
	return names, nil
}

func (s *KVStorage) Delete(name string) error {
	return s.store.RemoveNamespace(s.namespace(name))
}

type kvCache struct {
	storage *KVStorage
	ns      string
}

func (c *kvCache) Match(key string) (*Response, bool, error) {
	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	data, err := c.storage.store.Get(c.ns, key)
	if err != nil || data == nil {
		return nil, false, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, nil
	}
	resp.Source = SourceCache
	return &resp, true, nil
}

func (c *kvCache) Put(key string, resp *Response) error {
	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.storage.store.Set(c.ns, key, data)
}
