package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/astrodash/pkg/cache"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func key(scope, branch string, topic model.Topic, name string) cache.Key {
	return cache.Key{Scope: scope, Repo: "owner/blog", Branch: branch, Topic: topic, Name: name}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("second fetch is served from cache", func(t *testing.T) {
		c := cache.New()
		var calls int32
		fn := func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			return "hello", nil
		}

		v1 := gt.R1(cache.Fetch(ctx, c, key("s1", "main", model.TopicPosts, "a.md"), fn)).NoError(t)
		v2 := gt.R1(cache.Fetch(ctx, c, key("s1", "main", model.TopicPosts, "a.md"), fn)).NoError(t)
		gt.V(t, v1).Equal("hello")
		gt.V(t, v2).Equal("hello")
		gt.V(t, atomic.LoadInt32(&calls)).Equal(int32(1))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		c := cache.New()
		var calls int
		fn := func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("boom")
		}
		_, err := cache.Fetch(ctx, c, key("s1", "main", model.TopicPosts, "a.md"), fn)
		gt.Error(t, err)
		_, err = cache.Fetch(ctx, c, key("s1", "main", model.TopicPosts, "a.md"), fn)
		gt.Error(t, err)
		gt.V(t, calls).Equal(2)
		gt.V(t, c.Len()).Equal(0)
	})

	t.Run("branch is part of the key", func(t *testing.T) {
		c := cache.New()
		c.Set(key("s1", "main", model.TopicPosts, "a.md"), "from-main")

		v := gt.R1(cache.Fetch(ctx, c, key("s1", "site-example-com", model.TopicPosts, "a.md"), func(ctx context.Context) (string, error) {
			return "from-site", nil
		})).NoError(t)
		gt.V(t, v).Equal("from-site")
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		c := cache.New(cache.WithTTL(time.Minute), cache.WithClock(func() time.Time { return now }))
		k := key("s1", "main", model.TopicFiles, "x")
		c.Set(k, 1)

		_, ok := c.Get(k)
		gt.True(t, ok)

		now = now.Add(2 * time.Minute)
		_, ok = c.Get(k)
		gt.False(t, ok)
	})

	t.Run("concurrent fetches of one key call fn once", func(t *testing.T) {
		c := cache.New()
		var calls int32
		release := make(chan struct{})
		fn := func(ctx context.Context) (int, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return 42, nil
		}

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = cache.Fetch(ctx, c, key("s1", "main", model.TopicPosts, "list"), fn)
			}(i)
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		gt.V(t, atomic.LoadInt32(&calls)).Equal(int32(1))
		for _, r := range results {
			gt.V(t, r).Equal(42)
		}
	})

	t.Run("fetch started before invalidation does not store its result", func(t *testing.T) {
		c := cache.New()
		k := key("s1", "main", model.TopicPosts, "a.md")

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = cache.Fetch(ctx, c, k, func(ctx context.Context) (string, error) {
				close(started)
				<-release
				return "stale", nil
			})
		}()

		<-started
		c.Invalidate("s1", []model.Topic{model.TopicPosts}, "write")
		close(release)
		<-done

		_, ok := c.Get(k)
		gt.False(t, ok)
	})
}

func TestInvalidate(t *testing.T) {
	t.Run("drops only matching scope and topics", func(t *testing.T) {
		c := cache.New()
		c.Set(key("s1", "main", model.TopicPosts, "a"), 1)
		c.Set(key("s1", "main", model.TopicTheme, "theme"), 2)
		c.Set(key("s2", "main", model.TopicPosts, "a"), 3)

		n := c.Invalidate("s1", []model.Topic{model.TopicPosts}, "test")
		gt.V(t, n).Equal(1)

		_, ok := c.Get(key("s1", "main", model.TopicPosts, "a"))
		gt.False(t, ok)
		_, ok = c.Get(key("s1", "main", model.TopicTheme, "theme"))
		gt.True(t, ok)
		_, ok = c.Get(key("s2", "main", model.TopicPosts, "a"))
		gt.True(t, ok)
	})

	t.Run("branch invalidation crosses scopes", func(t *testing.T) {
		c := cache.New()
		c.Set(key("s1", "main", model.TopicPosts, "a"), 1)
		c.Set(key("s2", "main", model.TopicFiles, "b"), 2)
		c.Set(key("s2", "dev", model.TopicFiles, "b"), 3)

		n := c.InvalidateBranch("owner/blog", "main", nil, "push")
		gt.V(t, n).Equal(2)
		gt.V(t, c.Len()).Equal(1)
	})

	t.Run("branch invalidation drops the repository branch list", func(t *testing.T) {
		c := cache.New()
		c.Set(key("s1", "", model.TopicBranches, "list"), 1)
		c.Set(key("s2", "", model.TopicBranches, "list"), 2)
		c.Set(cache.Key{Scope: "s1", Repo: "owner/other", Topic: model.TopicBranches, Name: "list"}, 3)

		n := c.InvalidateBranch("owner/blog", "feature", nil, "push")
		gt.V(t, n).Equal(2)
		_, ok := c.Get(key("s1", "", model.TopicBranches, "list"))
		gt.False(t, ok)
		_, ok = c.Get(cache.Key{Scope: "s1", Repo: "owner/other", Topic: model.TopicBranches, Name: "list"})
		gt.True(t, ok)
	})

	t.Run("branch invalidation limited to topics", func(t *testing.T) {
		c := cache.New()
		c.Set(key("s1", "main", model.TopicPosts, "a"), 1)
		c.Set(key("s1", "main", model.TopicTheme, "theme"), 2)
		c.Set(key("s2", "main", model.TopicFiles, "tree"), 3)
		ch, cancel := c.Subscribe("s1")
		defer cancel()

		n := c.InvalidateBranch("owner/blog", "main", []model.Topic{model.TopicPosts, model.TopicFiles}, "push")
		gt.V(t, n).Equal(2)
		_, ok := c.Get(key("s1", "main", model.TopicTheme, "theme"))
		gt.True(t, ok)

		ev := <-ch
		gt.V(t, ev.Topics).Equal([]model.Topic{model.TopicBranches, model.TopicPosts, model.TopicFiles})
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("subscriber receives events of its scope and broadcasts", func(t *testing.T) {
		c := cache.New()
		ch, cancel := c.Subscribe("s1")
		defer cancel()

		c.Invalidate("s2", []model.Topic{model.TopicPosts}, "other")
		c.Invalidate("s1", []model.Topic{model.TopicTheme}, "mine")
		c.InvalidateBranch("owner/blog", "main", nil, "push")

		ev := <-ch
		gt.V(t, ev.Reason).Equal("mine")
		gt.V(t, ev.Topics).Equal([]model.Topic{model.TopicTheme})

		ev = <-ch
		gt.V(t, ev.Reason).Equal("push")
		gt.V(t, ev.Branch).Equal("main")

		select {
		case ev := <-ch:
			t.Fatalf("unexpected event: %+v", ev)
		default:
		}
	})

	t.Run("cancel closes the channel and is idempotent", func(t *testing.T) {
		c := cache.New()
		ch, cancel := c.Subscribe("s1")
		cancel()
		cancel()

		_, ok := <-ch
		gt.False(t, ok)

		c.Invalidate("s1", model.AllTopics, "after cancel")
	})
}

func TestMaxEntries(t *testing.T) {
	c := cache.New(cache.WithMaxEntries(3))
	for i := 0; i < 10; i++ {
		c.Set(key("s1", "main", model.TopicFiles, string(rune('a'+i))), i)
	}
	gt.True(t, c.Len() <= 3)
}
