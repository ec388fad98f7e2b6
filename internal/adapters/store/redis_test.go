package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/valeko/scoreline/internal/adapters/store"
)

func TestRedisStore(t *testing.T) {
	Convey("Given a redis-backed store", t, func() {
		srv := miniredis.RunT(t)
		kv := store.NewRedis(srv.Addr(), store.WithMaxRetries(0))
		defer kv.Close()
		ctx := context.Background()

		Convey("Ping succeeds against a live backend", func() {
			So(kv.Ping(ctx), ShouldBeNil)
		})

		Convey("Get returns the stored value", func() {
			srv.Set("i:1", `["books","hi-tech"]`)
			v, err := kv.Get(ctx, "i:1")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, `["books","hi-tech"]`)
		})

		Convey("Get on a missing key fails with ErrNotFound", func() {
			_, err := kv.Get(ctx, "i:999")
			So(err, ShouldWrap, store.ErrNotFound)
		})

		Convey("CacheSet writes the value with its TTL", func() {
			kv.CacheSet(ctx, "uid:abc", "3.5", time.Hour)

			v, ok := kv.CacheGet(ctx, "uid:abc")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "3.5")
			So(srv.TTL("uid:abc"), ShouldEqual, time.Hour)

			srv.FastForward(time.Hour + time.Second)
			_, ok = kv.CacheGet(ctx, "uid:abc")
			So(ok, ShouldBeFalse)
		})

		Convey("CacheGet misses on an absent key", func() {
			_, ok := kv.CacheGet(ctx, "uid:absent")
			So(ok, ShouldBeFalse)
		})

		Convey("With the backend down", func() {
			srv.Close()

			Convey("Get fails with ErrUnavailable", func() {
				_, err := kv.Get(ctx, "i:1")
				So(err, ShouldWrap, store.ErrUnavailable)
			})

			Convey("Ping reports the outage", func() {
				So(kv.Ping(ctx), ShouldWrap, store.ErrUnavailable)
			})

			Convey("Cache reads degrade to a miss and writes are dropped", func() {
				_, ok := kv.CacheGet(ctx, "uid:abc")
				So(ok, ShouldBeFalse)
				So(func() { kv.CacheSet(ctx, "uid:abc", "3.5", time.Hour) }, ShouldNotPanic)
			})
		})
	})
}
