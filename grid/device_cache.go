package grid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/notargets/gobem/types"
)

// DeviceKey identifies a serialized grid representation on a device context
type DeviceKey struct {
	Context   uuid.UUID
	Precision types.Precision
}

func (dk DeviceKey) String() string { return fmt.Sprintf("%s/%s", dk.Context, dk.Precision) }

/*
DeviceCache holds at most one device representation per (context, precision). The first representation
stored for a key wins, later inserts for the same key are discarded.
*/
type DeviceCache struct {
	mu      sync.Mutex
	entries map[DeviceKey]any
	group   singleflight.Group
}

func NewDeviceCache() *DeviceCache {
	return &DeviceCache{entries: make(map[DeviceKey]any)}
}

func (dc *DeviceCache) Get(key DeviceKey) (v any, ok bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	v, ok = dc.entries[key]
	return
}

// Insert stores v under key unless the key is present, and returns the stored value
func (dc *DeviceCache) Insert(key DeviceKey, v any) (stored any, inserted bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if stored, ok := dc.entries[key]; ok {
		return stored, false
	}
	dc.entries[key] = v
	return v, true
}

/*
GetOrCreate returns the value cached for key, calling create when there is none. Concurrent misses on the same
key share a single call to create. Failed creations are not cached.
*/
func (dc *DeviceCache) GetOrCreate(key DeviceKey, create func() (any, error)) (v any, err error) {
	var ok bool
	if v, ok = dc.Get(key); ok {
		return
	}
	v, err, _ = dc.group.Do(key.String(), func() (any, error) {
		if cached, ok := dc.Get(key); ok {
			return cached, nil
		}
		created, err := create()
		if err != nil {
			return nil, err
		}
		stored, _ := dc.Insert(key, created)
		return stored, nil
	})
	if err != nil {
		v = nil
	}
	return
}

func (dc *DeviceCache) Len() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return len(dc.entries)
}
