package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	store := NewSessionStore()

	token := store.Start("customer-1")
	id, ok := store.Lookup(token)
	assert.True(t, ok)
	assert.Equal(t, "customer-1", id)

	store.End(token)
	_, ok = store.Lookup(token)
	assert.False(t, ok)

	store.End("unknown")
}

func TestSessionStore_Concurrent(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	tokens := make([]string, 20)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = store.Start("customer")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, token := range tokens {
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
		_, ok := store.Lookup(token)
		assert.True(t, ok)
	}
}
