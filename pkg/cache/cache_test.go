package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidateEntityClearsCollectionAndDetail(t *testing.T) {
	s := New(time.Minute)
	s.Set(ListKey("vehicles", ""), []string{"a"})
	s.Set(ListKey("vehicles", "client=c1"), []string{"a"})
	s.Set(DetailKey("vehicles", "v1"), "vehicle")
	s.Set(DetailKey("vehicles", "v2"), "other")

	s.InvalidateEntity("vehicles", "v1")

	_, found := s.Get(ListKey("vehicles", ""))
	assert.False(t, found)
	_, found = s.Get(ListKey("vehicles", "client=c1"))
	assert.False(t, found)
	_, found = s.Get(DetailKey("vehicles", "v1"))
	assert.False(t, found)

	// InvalidateEntity clears the whole detail family via the prefix
	// sweep, so a sibling detail entry is gone too.
	_, found = s.Get(DetailKey("vehicles", "v2"))
	assert.False(t, found)
}

func TestInvalidateEntityClearsDependents(t *testing.T) {
	s := New(time.Minute)
	s.Set("dashboard", "counts")
	s.Set(ListKey("reports", "user=u1"), "agg")
	s.Set("users", "unrelated")

	s.InvalidateEntity("vehicles", "v1")

	_, found := s.Get("dashboard")
	assert.False(t, found)
	_, found = s.Get(ListKey("reports", "user=u1"))
	assert.False(t, found)

	// Users are not dependent on vehicles.
	_, found = s.Get("users")
	assert.True(t, found)
}

func TestPrefixMatchingDoesNotOvershoot(t *testing.T) {
	s := New(time.Minute)
	s.Set("vehicle_photos:p1", "photo")

	// "vehicles" must not sweep "vehicle_photos" keys.
	s.InvalidateEntity("vehicles", "v1")
	_, found := s.Get("vehicle_photos:p1")
	assert.True(t, found)
}
