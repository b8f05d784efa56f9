package timedmap

import (
	"time"

	"github.com/0xERR0R/timedmap/clock"
	"github.com/0xERR0R/timedmap/log"
	"github.com/0xERR0R/timedmap/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TimedMap", func() {
	var (
		c *clock.ManualClock
		m *TimedMap[int, string]
	)

	BeforeEach(func() {
		c = clock.NewManualClock(1_000)
		m = New(WithClock[int, string](c))
	})

	Describe("Basic operations", func() {
		When("map was created", func() {
			It("should be empty", func() {
				Expect(m.Len()).Should(Equal(0))

				_, ok := m.Get(1)
				Expect(ok).Should(BeFalse())
			})
		})

		When("an expirable entry was inserted", func() {
			It("should be returned before it expires", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				val, ok := m.Get(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))

				remaining, ok := m.GetRemainingDuration(1)
				Expect(ok).Should(BeTrue())
				Expect(remaining).Should(And(
					BeNumerically(">", 0),
					BeNumerically("<=", 30*time.Second)))
			})
			It("should disappear from reads once its time has passed", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				c.Advance(31 * time.Second)

				_, ok := m.Get(1)
				Expect(ok).Should(BeFalse())

				_, ok = m.GetRemainingDuration(1)
				Expect(ok).Should(BeFalse())

				Expect(m.ContainsKey(1)).Should(BeFalse())
			})
			It("should not be physically removed by reads", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				c.Advance(31 * time.Second)

				_, ok := m.Get(1)
				Expect(ok).Should(BeFalse())

				// still stored until a sweep runs
				val, ok := m.GetUnchecked(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))
				Expect(m.Len()).Should(Equal(1))
			})
		})

		When("a constant entry was inserted", func() {
			It("should never expire", func() {
				m.InsertConstant(1, "a")

				c.Advance(1_000_000 * time.Second)
				m.DropExpiredEntries()

				val, ok := m.Get(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))
			})
			It("should not report a remaining duration", func() {
				m.InsertConstant(1, "a")

				_, ok := m.GetRemainingDuration(1)
				Expect(ok).Should(BeFalse())

				c.Advance(time.Hour)

				_, ok = m.GetRemainingDuration(1)
				Expect(ok).Should(BeFalse())
			})
		})

		When("an entry was inserted with zero duration", func() {
			It("should be logically expired but readable unchecked until a sweep", func() {
				m.InsertExpirable(1, "a", 0)

				c.Advance(time.Second)

				_, ok := m.Get(1)
				Expect(ok).Should(BeFalse())

				val, ok := m.GetUnchecked(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))

				m.DropExpiredEntries()

				_, ok = m.GetUnchecked(1)
				Expect(ok).Should(BeFalse())
			})
		})

		When("a key is overwritten", func() {
			It("should return the previous value", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				prev, ok := m.InsertConstant(1, "b")
				Expect(ok).Should(BeTrue())
				Expect(prev).Should(Equal("a"))

				val, _ := m.Get(1)
				Expect(val).Should(Equal("b"))
				Expect(m.Len()).Should(Equal(1))
			})
			It("should leave no stale expiry-index pairing on expirable to constant", func() {
				m.InsertExpirable(1, "a", 30*time.Second)
				Expect(m.expiries.len()).Should(Equal(1))

				m.InsertConstant(1, "b")
				Expect(m.expiries.len()).Should(Equal(0))

				c.Advance(time.Hour)
				m.DropExpiredEntries()

				val, ok := m.Get(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("b"))
			})
			It("should replace the expiry-index pairing on expirable to expirable", func() {
				m.InsertExpirable(1, "a", 30*time.Second)
				m.InsertExpirable(1, "b", 60*time.Second)

				Expect(m.expiries.len()).Should(Equal(1))

				c.Advance(45 * time.Second)

				val, ok := m.Get(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("b"))
			})
		})

		When("an entry is removed", func() {
			It("should return the value", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				val, ok := m.Remove(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))

				Expect(m.Len()).Should(Equal(0))
				Expect(m.expiries.len()).Should(Equal(0))
			})
			It("should return the value even when logically expired", func() {
				m.InsertExpirable(1, "a", 30*time.Second)

				c.Advance(time.Hour)

				val, ok := m.Remove(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("a"))
			})
			It("should report absent keys", func() {
				_, ok := m.Remove(42)
				Expect(ok).Should(BeFalse())
			})
		})

		When("the map is cleared", func() {
			It("should drop all entries and index pairings", func() {
				m.InsertConstant(1, "a")
				m.InsertExpirable(2, "b", 30*time.Second)

				m.Clear()

				Expect(m.Len()).Should(Equal(0))
				Expect(m.expiries.len()).Should(Equal(0))
			})
		})
	})

	Describe("Sweeping", func() {
		When("entries expire at different readings", func() {
			It("should remove exactly the expired prefix", func() {
				for i, d := range []time.Duration{
					10 * time.Second,
					20 * time.Second,
					30 * time.Second,
					40 * time.Second,
					50 * time.Second,
				} {
					m.InsertExpirable(i+1, "v", d)
				}

				c.Advance(35 * time.Second)
				m.DropExpiredEntries()

				Expect(m.Len()).Should(Equal(2))

				for _, key := range []int{1, 2, 3} {
					_, ok := m.GetUnchecked(key)
					Expect(ok).Should(BeFalse())
				}

				for _, key := range []int{4, 5} {
					val, ok := m.Get(key)
					Expect(ok).Should(BeTrue())
					Expect(val).Should(Equal("v"))
				}
			})
		})

		When("nothing is expired", func() {
			It("should be idempotent", func() {
				m.InsertExpirable(1, "a", 10*time.Second)
				m.InsertExpirable(2, "b", 20*time.Second)

				c.Advance(15 * time.Second)

				m.DropExpiredEntries()
				Expect(m.Len()).Should(Equal(1))

				m.DropExpiredEntries()
				Expect(m.Len()).Should(Equal(1))
			})
		})

		When("entries share one expiration reading", func() {
			It("should remove all of them", func() {
				m.InsertExpirable(1, "a", 10*time.Second)
				m.InsertExpirable(2, "b", 10*time.Second)
				m.InsertExpirable(3, "c", 10*time.Second)

				c.Advance(11 * time.Second)
				m.DropExpiredEntries()

				Expect(m.Len()).Should(Equal(0))
			})
		})
	})

	Describe("Tick cap", func() {
		When("no cap is configured", func() {
			It("should never sweep automatically", func() {
				for i := 0; i < 100; i++ {
					m.InsertExpirable(i, "v", 0)
				}

				c.Advance(time.Second)

				Expect(m.Len()).Should(Equal(100))
			})
		})

		When("a cap is configured", func() {
			It("should sweep exactly on the nth checked insert", func() {
				m.ExpirationTickCap(3)

				m.InsertExpirable(1, "a", 0)
				m.InsertExpirable(2, "b", 0)

				// cap not reached yet, nothing swept
				Expect(m.Len()).Should(Equal(2))

				m.InsertExpirable(3, "c", 0)

				Expect(m.Len()).Should(Equal(0))
				Expect(m.tick).Should(Equal(uint(0)))
			})
			It("should not count unchecked inserts", func() {
				m.ExpirationTickCap(2)

				for i := 0; i < 10; i++ {
					m.InsertExpirableUnchecked(i, "v", 0)
				}

				Expect(m.Len()).Should(Equal(10))
			})
		})
	})

	Describe("Expiration refresh hook", func() {
		When("the callback requests a refresh", func() {
			It("should reinsert the entry with the new value and TTL", func() {
				refreshed := New(
					WithClock[int, string](c),
					WithOnExpiredFn[int, string](func(key int) (string, time.Duration, bool) {
						return "fresh", 60 * time.Second, true
					}),
				)

				refreshed.InsertExpirable(1, "stale", 10*time.Second)

				c.Advance(11 * time.Second)
				refreshed.DropExpiredEntries()

				val, ok := refreshed.Get(1)
				Expect(ok).Should(BeTrue())
				Expect(val).Should(Equal("fresh"))

				remaining, ok := refreshed.GetRemainingDuration(1)
				Expect(ok).Should(BeTrue())
				Expect(remaining).Should(Equal(60 * time.Second))
			})
		})

		When("the callback declines", func() {
			It("should drop the entry", func() {
				declined := New(
					WithClock[int, string](c),
					WithOnExpiredFn[int, string](func(key int) (string, time.Duration, bool) {
						return "", 0, false
					}),
				)

				declined.InsertExpirable(1, "stale", 10*time.Second)

				c.Advance(11 * time.Second)
				declined.DropExpiredEntries()

				Expect(declined.Len()).Should(Equal(0))
			})
		})
	})

	Describe("Store kinds", func() {
		for _, kind := range []store.Kind{store.KindBtree, store.KindHash, store.KindFastHash, store.KindLru} {
			kind := kind

			When("the "+kind.String()+" store is selected", func() {
				It("should expire entries the same way", func() {
					km := New(
						WithClock[string, int](c),
						WithStoreKind[string, int](kind),
					)

					km.InsertExpirable("short", 1, 10*time.Second)
					km.InsertExpirable("long", 2, 50*time.Second)
					km.InsertConstant("keep", 3)

					c.Advance(20 * time.Second)
					km.DropExpiredEntries()

					_, ok := km.GetUnchecked("short")
					Expect(ok).Should(BeFalse())

					val, ok := km.Get("long")
					Expect(ok).Should(BeTrue())
					Expect(val).Should(Equal(2))

					val, ok = km.Get("keep")
					Expect(ok).Should(BeTrue())
					Expect(val).Should(Equal(3))
				})
			})
		}

		When("the bounded store evicts on its own", func() {
			It("should keep the expiry index consistent", func() {
				bounded := New(
					WithClock[int, string](c),
					WithStoreKind[int, string](store.KindLru),
					WithMaxSize[int, string](2),
				)

				bounded.InsertExpirable(1, "a", 10*time.Second)
				bounded.InsertExpirable(2, "b", 20*time.Second)
				bounded.InsertExpirable(3, "c", 30*time.Second)

				// key 1 was evicted by the store, its pairing must be gone too
				Expect(bounded.Len()).Should(Equal(2))
				Expect(bounded.expiries.len()).Should(Equal(2))

				c.Advance(time.Hour)
				bounded.DropExpiredEntries()

				Expect(bounded.Len()).Should(Equal(0))
				Expect(bounded.expiries.len()).Should(Equal(0))
			})
		})
	})

	Describe("Sweep logging", func() {
		When("a sweep drops entries", func() {
			It("should report the count", func() {
				logger, hook := log.NewMockEntry()

				logged := New(
					WithClock[int, string](c),
					WithLogger[int, string](logger),
				)

				logged.InsertExpirable(1, "a", 10*time.Second)
				logged.InsertExpirable(2, "b", 10*time.Second)

				c.Advance(11 * time.Second)
				logged.DropExpiredEntries()

				Expect(hook.Messages).Should(ContainElement(HavePrefix("dropped 2 expired entries")))
			})
		})
	})
})
