package store

import (
	"context"
	"sort"
)

// Persisted keys.
const (
	KeyProfile       = "profile"
	KeyTravelRecords = "travelRecords"
	KeyTasks         = "tasks"
)

// Store is a durable key-value store of JSON documents. Commit replaces
// every given key at once: either all entries become visible or none do.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Commit(ctx context.Context, entries map[string][]byte) error
}

// Layered is implemented by stores that front an authoritative store.
type Layered interface {
	Authoritative() Store
}

// Authoritative unwraps every layer in front of s.
func Authoritative(s Store) Store {
	for {
		l, ok := s.(Layered)
		if !ok {
			return s
		}
		s = l.Authoritative()
	}
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
