package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL — потокобезопасный map-кэш с истечением записей по времени.
// Просроченные записи удаляет фоновая горутина-уборщик.
type TTL[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	done       chan struct{}
	stopOnce   sync.Once
}

// New создаёт кэш с TTL по умолчанию defaultTTL и интервалом уборки cleanup.
// При cleanup <= 0 уборщик не запускается и записи удаляются лениво при чтении.
func New[V any](defaultTTL, cleanup time.Duration) *TTL[V] {
	c := &TTL[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		done:       make(chan struct{}),
	}
	if cleanup > 0 {
		go c.janitor(cleanup)
	}
	return c
}

// Get возвращает значение по ключу, если запись существует и не просрочена.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set сохраняет значение с TTL по умолчанию.
func (c *TTL[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL сохраняет значение с индивидуальным TTL.
func (c *TTL[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Delete удаляет запись по ключу.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len возвращает количество записей, включая ещё не убранные просроченные.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop останавливает горутину-уборщика. Повторные вызовы безопасны.
func (c *TTL[V]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *TTL[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
