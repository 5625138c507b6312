package catalog

import (
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedDoc struct {
	modTime time.Time
	size    int64
	doc     any
	err     error
}

// docCache memoizes parsed documents by file name. An entry is only served
// while the file's modification time and size are unchanged, so a same-size
// rewrite within the filesystem's timestamp granularity is not detected.
type docCache struct {
	entries *lru.Cache[string, cachedDoc]
}

func newDocCache(size int) (*docCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, cachedDoc](size)
	if err != nil {
		return nil, err
	}
	return &docCache{entries: entries}, nil
}

func (c *docCache) get(name string, info fs.FileInfo) (cachedDoc, bool) {
	if c == nil {
		return cachedDoc{}, false
	}
	ent, ok := c.entries.Get(name)
	if !ok {
		return cachedDoc{}, false
	}
	if !ent.modTime.Equal(info.ModTime()) || ent.size != info.Size() {
		c.entries.Remove(name)
		return cachedDoc{}, false
	}
	return ent, true
}

func (c *docCache) put(name string, info fs.FileInfo, doc any, err error) {
	if c == nil {
		return
	}
	c.entries.Add(name, cachedDoc{
		modTime: info.ModTime(),
		size:    info.Size(),
		doc:     doc,
		err:     err,
	})
}

func (c *docCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
