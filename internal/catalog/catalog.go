// Package catalog answers package searches for the packages pane.
package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/codepad/internal/workspace/project"
)

// DefaultLimit caps the number of results returned by Search.
const DefaultLimit = 20

// WatchInterval is how often Watch polls the store for outside writes.
const WatchInterval = 2 * time.Second

// Store is the persistence the catalog reads from and writes to.
type Store interface {
	List(ctx context.Context) ([]project.Package, error)
	Upsert(ctx context.Context, p project.Package) error
	// Version changes whenever the stored set of packages does.
	Version(ctx context.Context) (string, error)
}

// Catalog ranks packages against a query and tells subscribers when the set
// of packages changes.
type Catalog struct {
	store Store
	limit int

	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func New(store Store) *Catalog {
	return &Catalog{store: store, limit: DefaultLimit, subs: make(map[chan struct{}]struct{})}
}

type scored struct {
	pkg   project.Package
	tier  int
	score int
}

// Search returns packages matching query, best first. Exact names rank
// first, then prefix and substring matches, then near misses by edit distance.
func (c *Catalog) Search(ctx context.Context, query string) ([]project.Package, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	all, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var hits []scored
	for _, p := range all {
		if tier, score, ok := rank(q, p); ok {
			hits = append(hits, scored{pkg: p, tier: tier, score: score})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		if a.tier != b.tier {
			return a.tier - b.tier
		}
		if a.score != b.score {
			return a.score - b.score
		}
		return strings.Compare(a.pkg.Name, b.pkg.Name)
	})

	out := make([]project.Package, 0, min(len(hits), c.limit))
	for _, h := range hits {
		if len(out) == c.limit {
			break
		}
		out = append(out, h.pkg)
	}
	return out, nil
}

// rank scores p against a lowercased query. Lower is better.
func rank(q string, p project.Package) (tier, score int, ok bool) {
	name := strings.ToLower(p.Name)
	short := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		short = name[i+1:]
	}
	switch {
	case name == q || short == q:
		return 0, 0, true
	case strings.HasPrefix(short, q) || strings.HasPrefix(name, q):
		return 1, len(short) - len(q), true
	case strings.Contains(name, q):
		return 2, strings.Index(name, q), true
	case strings.Contains(strings.ToLower(p.Summary), q):
		return 3, 0, true
	}
	d := levenshtein.ComputeDistance(q, short)
	// allow roughly one typo per four characters
	if d <= max(1, len(q)/4) {
		return 4, d, true
	}
	return 0, 0, false
}

// Add inserts or updates a package and notifies subscribers.
func (c *Catalog) Add(ctx context.Context, p project.Package) error {
	if err := c.store.Upsert(ctx, p); err != nil {
		return err
	}
	c.publish()
	return nil
}

// Watch polls the store every interval until ctx is done and notifies
// subscribers when the catalog changed underneath it, as it does when
// `codepad packages add` runs in another process. Failed polls are skipped.
func (c *Catalog) Watch(ctx context.Context, every time.Duration) {
	last, _ := c.store.Version(ctx)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		v, err := c.store.Version(ctx)
		if err != nil || v == last {
			continue
		}
		last = v
		c.publish()
	}
}

// Subscribe returns a channel that receives a value after every change. The
// channel is buffered by one so bursts collapse into a single notification.
// Call cancel to unsubscribe.
func (c *Catalog) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()
	return ch, func() {
		c.mu.Lock()
		delete(c.subs, ch)
		c.mu.Unlock()
	}
}

func (c *Catalog) publish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
			// already pending
		}
	}
}
