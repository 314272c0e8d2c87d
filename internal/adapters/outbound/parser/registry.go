package parser

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/aiready/aiready/internal/domain"
)

// DefaultCacheSize is the number of parsed files kept by the registry.
const DefaultCacheSize = 512

// Registry resolves parsers by file extension and memoizes parse results
// keyed by content hash and path.
type Registry struct {
	byExt map[string]domain.SourceParser
	cache *lru.Cache[string, *domain.ParsedFile]
}

// NewRegistry registers parsers in order. A later parser claiming an
// extension replaces the earlier one. cacheSize <= 0 disables caching.
func NewRegistry(cacheSize int, parsers ...domain.SourceParser) (*Registry, error) {
	r := &Registry{byExt: make(map[string]domain.SourceParser)}
	for _, p := range parsers {
		for _, ext := range p.Extensions() {
			r.byExt[strings.ToLower(ext)] = p
		}
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, *domain.ParsedFile](cacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}
	return r, nil
}

// DefaultRegistry registers every built-in parser.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(DefaultCacheSize,
		NewGoParser(),
		NewPythonParser(),
		NewJavaScriptParser(),
		NewTypeScriptParser(),
	)
	return r
}

func (r *Registry) Lookup(path string) (domain.SourceParser, bool) {
	p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	if r.cache == nil {
		return p, true
	}
	return &cachedParser{SourceParser: p, cache: r.cache}, true
}

func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Len reports how many parse results are cached.
func (r *Registry) Len() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

type cachedParser struct {
	domain.SourceParser
	cache *lru.Cache[string, *domain.ParsedFile]
}

func (c *cachedParser) Parse(ctx context.Context, src []byte, path string) (*domain.ParsedFile, error) {
	sum := blake3.Sum256(src)
	key := hex.EncodeToString(sum[:]) + ":" + path
	if pf, ok := c.cache.Get(key); ok {
		out := *pf
		return &out, nil
	}
	pf, err := c.SourceParser.Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}
	stored := *pf
	c.cache.Add(key, &stored)
	return pf, nil
}
