package handle_test

import (
	"github.com/dogmatiq/tether/fixtures"
	. "github.com/dogmatiq/tether/handle"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// object is a registrable value with its own identity.
type object struct {
	name string
}

var _ = Describe("type Store", func() {
	var (
		store *Store
		obj   *object
	)

	BeforeEach(func() {
		store = &Store{}
		obj = &object{"<object>"}
	})

	Describe("func Intern()", func() {
		It("allocates handles monotonically starting at one", func() {
			Expect(store.Intern(obj)).To(Equal(Handle(1)))
			Expect(store.Intern(&object{"<other>"})).To(Equal(Handle(2)))
		})

		It("returns the existing handle when the same object is interned again", func() {
			h := store.Intern(obj)
			Expect(store.Intern(obj)).To(Equal(h))
		})

		It("allocates distinct handles for distinct objects with equal content", func() {
			h1 := store.Intern(&object{"<same>"})
			h2 := store.Intern(&object{"<same>"})
			Expect(h2).NotTo(Equal(h1))
		})

		It("allocates a strictly greater handle when an object is interned again after release", func() {
			h := store.Intern(obj)
			store.Reference(h)
			store.Dereference(h)

			Expect(store.Intern(obj)).To(BeNumerically(">", h))
		})

		It("allocates a fresh handle when the tag store contains a stale tag", func() {
			tags := &MemoryTagStore{}
			tags.Set(obj, 100)

			store.Tags = tags

			h := store.Intern(obj)
			Expect(h).To(Equal(Handle(1)))

			v, ok := tags.Get(obj)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(h))
		})
	})

	Describe("func Get()", func() {
		It("returns the interned object", func() {
			h := store.Intern(obj)

			v, ok := store.Get(h)
			Expect(ok).To(BeTrue())
			Expect(v).To(BeIdenticalTo(obj))
		})

		It("returns false for an unknown handle", func() {
			_, ok := store.Get(42)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("func Dereference()", func() {
		It("removes the entry when the count reaches zero", func() {
			h := store.Intern(obj)
			store.Reference(h)
			store.Reference(h)

			store.Dereference(h)
			_, ok := store.Get(h)
			Expect(ok).To(BeTrue())

			store.Dereference(h)
			_, ok = store.Get(h)
			Expect(ok).To(BeFalse())
		})

		It("clears the object's identity tag at the moment the entry is removed", func() {
			var cleared []interface{}

			store.Tags = &fixtures.TagStoreStub{
				TagStore: &MemoryTagStore{},
				ClearFunc: func(obj interface{}) {
					cleared = append(cleared, obj)
				},
			}

			h := store.Intern(obj)
			store.Reference(h)
			store.Dereference(h)

			Expect(cleared).To(ConsistOf(obj))
		})

		It("is a no-op for an unknown handle", func() {
			h := store.Intern(obj)
			store.Reference(h)
			store.Dereference(h)

			// A second release of the same handle must not panic, and must
			// not disturb unrelated entries.
			other := store.Intern(&object{"<other>"})
			store.Reference(other)

			store.Dereference(h)

			_, ok := store.Get(other)
			Expect(ok).To(BeTrue())
		})
	})

	Describe("func Reference()", func() {
		It("is a no-op for an unknown handle", func() {
			store.Reference(42)

			_, ok := store.Get(42)
			Expect(ok).To(BeFalse())
		})
	})
})
