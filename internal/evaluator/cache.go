package evaluator

import (
	"sync"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/ast"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/parser"
)

// parseCacheLimit caps the number of distinct expression texts cached
// before the whole cache is dropped, matching afeval.cpp's tokenCache,
// which clears itself in one shot once it holds more than 100 entries
// rather than evicting individual least-recently-used entries.
const parseCacheLimit = 100

// parseCache memoizes Parse results keyed on exact source text, shared
// across repeated Evaluate calls against the same Evaluator instance.
type parseCache struct {
	mu      sync.Mutex
	entries map[string]ast.Node
}

func newParseCache() *parseCache {
	return &parseCache{entries: make(map[string]ast.Node)}
}

// parse returns the cached AST for source, parsing and caching it on a
// miss. A parse error is never cached — only successfully parsed trees are
// worth remembering.
func (c *parseCache) parse(source string) (ast.Node, error) {
	c.mu.Lock()
	if node, ok := c.entries[source]; ok {
		c.mu.Unlock()
		return node, nil
	}
	c.mu.Unlock()

	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) >= parseCacheLimit {
		c.entries = make(map[string]ast.Node)
	}
	c.entries[source] = node
	c.mu.Unlock()

	return node, nil
}

// clear empties the cache, used by Evaluator.Clear.
func (c *parseCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]ast.Node)
	c.mu.Unlock()
}
