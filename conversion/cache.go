package conversion

import (
	"sync"

	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/golang/geo/s2"
)

// Cache memoizes the points of codes. It is safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	points map[pointcode.Code]s2.Point
}

func NewCache() *Cache {
	return &Cache{points: make(map[pointcode.Code]s2.Point)}
}

func (c *Cache) Get(code pointcode.Code) (s2.Point, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.points[code]
	return p, ok
}

func (c *Cache) Put(code pointcode.Code, p s2.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points[code] = p
}

// Len returns the number of cached points.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.points)
}
