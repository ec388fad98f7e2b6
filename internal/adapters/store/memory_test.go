package store_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/valeko/scoreline/internal/adapters/store"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory store with a controllable clock", t, func() {
		now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
		mem := store.NewMemory(store.WithClock(func() time.Time { return now }))
		ctx := context.Background()

		Convey("Get on a missing key fails with ErrNotFound", func() {
			_, err := mem.Get(ctx, "uid:missing")
			So(err, ShouldWrap, store.ErrNotFound)
		})

		Convey("Seeded keys read back through both access paths", func() {
			mem.Set("i:1", `["books"]`)

			v, err := mem.Get(ctx, "i:1")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, `["books"]`)

			v, ok := mem.CacheGet(ctx, "i:1")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, `["books"]`)
		})

		Convey("CacheSet entries expire once the clock passes the TTL", func() {
			mem.CacheSet(ctx, "uid:abc", "3.5", time.Hour)

			_, ok := mem.CacheGet(ctx, "uid:abc")
			So(ok, ShouldBeTrue)

			ttl, ok := mem.TTL("uid:abc")
			So(ok, ShouldBeTrue)
			So(ttl, ShouldEqual, time.Hour)

			now = now.Add(time.Hour + time.Second)
			_, ok = mem.CacheGet(ctx, "uid:abc")
			So(ok, ShouldBeFalse)
			_, err := mem.Get(ctx, "uid:abc")
			So(err, ShouldWrap, store.ErrNotFound)
		})

		Convey("A zero TTL keeps the entry forever", func() {
			mem.CacheSet(ctx, "uid:abc", "3.5", 0)
			now = now.Add(24 * 365 * time.Hour)
			_, ok := mem.CacheGet(ctx, "uid:abc")
			So(ok, ShouldBeTrue)

			ttl, ok := mem.TTL("uid:abc")
			So(ok, ShouldBeTrue)
			So(ttl, ShouldEqual, time.Duration(0))
		})

		Convey("Delete and Len behave", func() {
			mem.Set("a", "1")
			mem.Set("b", "2")
			So(mem.Len(), ShouldEqual, 2)
			mem.Delete("a")
			So(mem.Len(), ShouldEqual, 1)
			_, err := mem.Get(ctx, "a")
			So(err, ShouldWrap, store.ErrNotFound)
		})
	})
}
