package memory

import (
	"maps"
	"sync"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/config/values"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Nothing is persisted, so Save and
// Load never fail.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates a ConfigStore seeded with a copy of initial,
// which may be nil.
func NewConfigStore(initial ...map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any)}
	for _, m := range initial {
		maps.Copy(s.values, m)
	}
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) value(key string) any {
	v, _ := s.Get(key)
	return v
}

func (s *ConfigStore) GetString(key string) string { return values.String(s.value(key)) }

func (s *ConfigStore) GetInt(key string) int { return values.Int(s.value(key)) }

func (s *ConfigStore) GetFloat(key string) float64 { return values.Float(s.value(key)) }

func (s *ConfigStore) GetBool(key string) bool { return values.Bool(s.value(key)) }

func (s *ConfigStore) GetDuration(key string) time.Duration { return values.Duration(s.value(key)) }

func (s *ConfigStore) GetStringSlice(key string) []string {
	return values.StringSlice(s.value(key))
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" in place of a file path.
func (s *ConfigStore) Path() string { return ":memory:" }
