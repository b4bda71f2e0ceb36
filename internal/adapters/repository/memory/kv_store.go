package memory

import (
	"context"
	"sort"
	"sync"
)

// KVStore はプロセス内で完結するキーバリューストアです。再起動で内容は失われます。
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore は空の KVStore を生成します。
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get はキーの値を返します。存在しない場合は ok=false です。
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set はキーの値を上書きします。
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove はキーを削除します。存在しないキーは無視します。
func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys は保存されているキーを昇順で返します。
func (s *KVStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
