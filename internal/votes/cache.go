package votes

import (
	"errors"
	"sync"
)

// Cache loads the vote file once and hands the same records to every
// caller afterwards. A missing file is retried on the next Get.
type Cache struct {
	path string
	opts Options

	mu      sync.Mutex
	loaded  bool
	records []Record
	err     error
}

func NewCache(path string, opts Options) *Cache {
	return &Cache{path: path, opts: opts}
}

func (c *Cache) Path() string { return c.path }

func (c *Cache) Get() ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.records, c.err
	}

	records, err := Load(c.path, c.opts)
	if errors.Is(err, ErrMissingDataFile) {
		return nil, err
	}
	c.loaded = true
	c.records = records
	c.err = err
	return records, err
}
