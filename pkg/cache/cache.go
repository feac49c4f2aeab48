package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a read-through query cache with a single centralized
// entity-to-key invalidation table. Repositories cache list and detail
// query results under keys built with ListKey/DetailKey; every mutation
// calls InvalidateEntity so a subsequent read never sees a stale entry.
type Store struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *Store {
	return &Store{c: gocache.New(ttl, 2*ttl)}
}

// dependents names the cached queries, beyond an entity's own collection
// and detail entries, that a mutation on that entity can affect.
var dependents = map[string][]string{
	"clients":        {"vehicles", "dashboard"},
	"vehicles":       {"dashboard", "reports"},
	"vehicle_photos": {},
	"profiles":       {"users"},
	"user_roles":     {"users"},
}

// ListKey builds a cache key for a collection query. The filter suffix
// distinguishes filtered variants; all of them share the entity prefix
// so one invalidation clears every variant.
func ListKey(entity, filter string) string {
	if filter == "" {
		return entity
	}
	return entity + "?" + filter
}

func DetailKey(entity, id string) string {
	return entity + ":" + id
}

func (s *Store) Get(key string) (any, bool) {
	return s.c.Get(key)
}

func (s *Store) Set(key string, v any) {
	s.c.SetDefault(key, v)
}

// InvalidateEntity drops every cached query that a mutation on
// (entity, id) could have affected: all collection variants, the detail
// entry, and the dependent query families from the table above.
func (s *Store) InvalidateEntity(entity, id string) {
	prefixes := append([]string{entity}, dependents[entity]...)
	for key := range s.c.Items() {
		for _, p := range prefixes {
			if key == p || strings.HasPrefix(key, p+"?") || strings.HasPrefix(key, p+":") {
				s.c.Delete(key)
				break
			}
		}
	}
	s.c.Delete(DetailKey(entity, id))
}
