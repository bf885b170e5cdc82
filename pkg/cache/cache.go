// Package cache is the request-keyed cache of GitHub reads. Entries are grouped by session scope,
// repository, branch and topic; mutations invalidate topics and notify subscribers so that clients
// refetch exactly the resources that changed.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"golang.org/x/sync/singleflight"
)

// Key identifies one logical resource. Branch is part of the key, so content cached for one branch
// can never be returned for another.
type Key struct {
	Scope  string
	Repo   string
	Branch string
	Topic  model.Topic
	Name   string
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Cache struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	scopeGen   map[string]uint64
	branchGen  map[string]uint64
	group      singleflight.Group
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	subMu   sync.RWMutex
	subs    map[int]*subscriber
	nextSub int
}

type subscriber struct {
	scope string
	ch    chan model.InvalidationEvent
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(options ...Option) *Cache {
	c := &Cache{
		entries:    make(map[Key]*entry),
		scopeGen:   make(map[string]uint64),
		branchGen:  make(map[string]uint64),
		subs:       make(map[int]*subscriber),
		ttl:        5 * time.Minute,
		maxEntries: 10000,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func branchKey(repo, branch string) string {
	return repo + "@" + branch
}

// Get returns a live entry.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *Cache) setLocked(key Key, value any) {
	c.entries[key] = &entry{value: value, expiresAt: c.now().Add(c.ttl)}
	if len(c.entries) > c.maxEntries {
		c.evictLocked()
	}
}

func (c *Cache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) <= c.maxEntries {
			break
		}
		delete(c.entries, k)
	}
}

func (c *Cache) generation(key Key) (uint64, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scopeGen[key.Scope], c.branchGen[branchKey(key.Repo, key.Branch)]
}

// storeIfCurrent stores value unless the key's scope or branch was invalidated after the fetch began.
func (c *Cache) storeIfCurrent(key Key, scopeGen, branchGen uint64, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scopeGen[key.Scope] != scopeGen || c.branchGen[branchKey(key.Repo, key.Branch)] != branchGen {
		return false
	}
	c.setLocked(key, value)
	return true
}

// Fetch returns the cached value for key or calls fn once for all concurrent callers of the same key.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	scopeGen, branchGen := c.generation(key)
	flightKey := fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d", key.Scope, key.Repo, key.Branch, key.Topic, key.Name, scopeGen, branchGen)

	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.storeIfCurrent(key, scopeGen, branchGen, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}

// Invalidate drops the scope's entries of the given topics and notifies the scope's subscribers.
// It returns the number of dropped entries.
func (c *Cache) Invalidate(scope string, topics []model.Topic, reason string) int {
	want := make(map[model.Topic]struct{}, len(topics))
	for _, t := range topics {
		want[t] = struct{}{}
	}

	c.mu.Lock()
	c.scopeGen[scope]++
	n := 0
	for k := range c.entries {
		if k.Scope != scope {
			continue
		}
		if _, ok := want[k.Topic]; ok {
			delete(c.entries, k)
			n++
		}
	}
	c.mu.Unlock()

	c.publish(model.InvalidationEvent{
		Scope:  scope,
		Topics: topics,
		Reason: reason,
	})
	return n
}

// InvalidateBranch drops the entries of repo@branch in all scopes, used when the branch changed
// outside of the dashboard. Only the given topics are dropped; nil means every topic. The repository's
// branch list is dropped as well since a push may create or delete the branch.
func (c *Cache) InvalidateBranch(repo, branch string, topics []model.Topic, reason string) int {
	if topics == nil {
		topics = model.BranchScopedTopics
	}
	want := make(map[model.Topic]struct{}, len(topics))
	for _, t := range topics {
		want[t] = struct{}{}
	}

	c.mu.Lock()
	c.branchGen[branchKey(repo, branch)]++
	c.branchGen[branchKey(repo, "")]++
	n := 0
	for k := range c.entries {
		if k.Repo != repo {
			continue
		}
		switch {
		case k.Topic == model.TopicBranches:
		case k.Branch != branch:
			continue
		default:
			if _, ok := want[k.Topic]; !ok {
				continue
			}
		}
		delete(c.entries, k)
		n++
	}
	c.mu.Unlock()

	c.publish(model.InvalidationEvent{
		Repo:   repo,
		Branch: branch,
		Topics: append([]model.Topic{model.TopicBranches}, topics...),
		Reason: reason,
	})
	return n
}

// Subscribe registers for invalidation events of scope; events without scope are delivered to every
// subscriber. The returned function unsubscribes and closes the channel.
func (c *Cache) Subscribe(scope string) (<-chan model.InvalidationEvent, func()) {
	sub := &subscriber{
		scope: scope,
		ch:    make(chan model.InvalidationEvent, 32),
	}

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = sub
	c.subMu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			close(sub.ch)
		})
	}
}

func (c *Cache) publish(ev model.InvalidationEvent) {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	for _, sub := range c.subs {
		if ev.Scope != "" && ev.Scope != sub.scope {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			logging.Default().Warn("drop invalidation event for slow subscriber",
				slog.String("scope", sub.scope),
				slog.Any("topics", ev.Topics),
			)
		}
	}
}

// Len is the number of stored entries, including expired ones not yet collected.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
