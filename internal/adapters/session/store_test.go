package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/skillcard/internal/adapters/session"
	"github.com/okian/skillcard/internal/domain/profileview"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryStore(t *testing.T) {
	Convey("Given a new session store", t, func() {
		ctx := context.Background()
		s := session.NewInMemoryStore()

		Convey("When a session is created", func() {
			sess := s.Create(ctx)

			Convey("Then it is retrievable and owns a profile view", func() {
				So(sess.ID, ShouldNotBeEmpty)
				So(sess.Profile, ShouldNotBeNil)
				got, ok := s.Get(ctx, sess.ID)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, sess)
				So(s.Size(), ShouldEqual, 1)
			})

			Convey("And its default profile view errors instead of panicking", func() {
				var snap profileview.Snapshot
				So(func() { snap = sess.Profile.Enter(ctx, "alice") }, ShouldNotPanic)
				So(snap.State, ShouldEqual, profileview.Error)
				So(snap.Err, ShouldEqual, profileview.MsgLoadFailed)
			})

			Convey("And it is deleted", func() {
				s.Delete(ctx, sess.ID)

				Convey("Then it is gone", func() {
					_, ok := s.Get(ctx, sess.ID)
					So(ok, ShouldBeFalse)
					So(s.Size(), ShouldEqual, 0)
				})
			})
		})

		Convey("When sessions are created", func() {
			a := s.Create(ctx)
			b := s.Create(ctx)

			Convey("Then ids are unique", func() {
				So(a.ID, ShouldNotEqual, b.ID)
			})
		})

		Convey("When an unknown id is looked up", func() {
			_, ok := s.Get(ctx, "nope")
			So(ok, ShouldBeFalse)
			s.Delete(ctx, "nope")
			So(s.Size(), ShouldEqual, 0)
		})
	})
}

func TestStoreCapacity(t *testing.T) {
	Convey("Given a store bounded to two sessions", t, func() {
		ctx := context.Background()
		s := session.NewInMemoryStore(session.WithMaxSessions(2))

		a := s.Create(ctx)
		b := s.Create(ctx)

		Convey("When the oldest is touched and a third is created", func() {
			_, ok := s.Get(ctx, a.ID)
			So(ok, ShouldBeTrue)
			c := s.Create(ctx)

			Convey("Then the least recently used session is evicted", func() {
				So(s.Size(), ShouldEqual, 2)
				_, ok := s.Get(ctx, b.ID)
				So(ok, ShouldBeFalse)
				_, ok = s.Get(ctx, a.ID)
				So(ok, ShouldBeTrue)
				_, ok = s.Get(ctx, c.ID)
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestStoreIdleExpiry(t *testing.T) {
	Convey("Given a store with a one minute idle ttl", t, func() {
		ctx := context.Background()
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		s := session.NewInMemoryStore(
			session.WithIdleTTL(time.Minute),
			session.WithClock(clock.Now),
		)

		old := s.Create(ctx)
		clock.Advance(45 * time.Second)
		fresh := s.Create(ctx)

		Convey("When less than the ttl passes", func() {
			clock.Advance(30 * time.Second)

			Convey("Then Sweep removes only the idle session", func() {
				So(s.Sweep(ctx), ShouldEqual, 1)
				_, ok := s.Get(ctx, old.ID)
				So(ok, ShouldBeFalse)
				_, ok = s.Get(ctx, fresh.ID)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When an idle session is looked up", func() {
			clock.Advance(2 * time.Minute)

			Convey("Then it is reported missing and dropped", func() {
				_, ok := s.Get(ctx, fresh.ID)
				So(ok, ShouldBeFalse)
				So(s.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a session keeps being used", func() {
			for range 5 {
				clock.Advance(50 * time.Second)
				_, ok := s.Get(ctx, fresh.ID)
				So(ok, ShouldBeTrue)
			}

			Convey("Then it survives past its creation ttl", func() {
				_, ok := s.Get(ctx, fresh.ID)
				So(ok, ShouldBeTrue)
			})
		})
	})

	Convey("Given a store without ttl", t, func() {
		s := session.NewInMemoryStore(session.WithIdleTTL(0))
		s.Create(context.Background())

		Convey("Then Sweep is a no-op", func() {
			So(s.Sweep(context.Background()), ShouldEqual, 0)
			So(s.Size(), ShouldEqual, 1)
		})
	})
}

func TestSessionContext(t *testing.T) {
	Convey("Given a context carrying a session", t, func() {
		s := session.NewInMemoryStore()
		sess := s.Create(context.Background())
		ctx := session.NewContext(context.Background(), sess)

		Convey("Then FromContext returns it", func() {
			got, ok := session.FromContext(ctx)
			So(ok, ShouldBeTrue)
			So(got.ID, ShouldEqual, sess.ID)

			_, ok = session.FromContext(context.Background())
			So(ok, ShouldBeFalse)
		})
	})
}

func TestStoreConcurrentAccess(t *testing.T) {
	Convey("Given concurrent creates on a bounded store", t, func() {
		ctx := context.Background()
		s := session.NewInMemoryStore(session.WithMaxSessions(10))

		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess := s.Create(ctx)
				s.Get(ctx, sess.ID)
			}()
		}
		wg.Wait()

		Convey("Then the bound holds", func() {
			So(s.Size(), ShouldEqual, 10)
		})
	})
}
