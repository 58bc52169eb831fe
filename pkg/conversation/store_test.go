package conversation_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/basilio254/market-bot/pkg/conversation"
)

var _ = Describe("NewTurn", func() {
	It("assigns a unique ID and timestamp", func() {
		a := conversation.NewTurn(conversation.RoleUser, "hello")
		b := conversation.NewTurn(conversation.RoleUser, "hello")

		Expect(a.ID).NotTo(BeEmpty())
		Expect(b.ID).NotTo(BeEmpty())
		Expect(a.ID).NotTo(Equal(b.ID))
		Expect(a.CreatedAt).NotTo(BeZero())
	})

	It("carries the given role and text", func() {
		t := conversation.NewTurn(conversation.RoleAssistant, "hi there")
		Expect(t.Role).To(Equal(conversation.RoleAssistant))
		Expect(t.Text).To(Equal("hi there"))
		Expect(t.Sources).To(BeEmpty())
	})
})

var _ = Describe("NewAssistantTurn", func() {
	It("attaches sources to an assistant turn", func() {
		sources := []conversation.Source{
			{Title: "Example", URI: "https://example.com"},
		}
		t := conversation.NewAssistantTurn("answer", sources)

		Expect(t.Role).To(Equal(conversation.RoleAssistant))
		Expect(t.Text).To(Equal("answer"))
		Expect(t.Sources).To(Equal(sources))
	})
})

var _ = Describe("Store", func() {
	var store *conversation.Store

	BeforeEach(func() {
		store = conversation.NewStore()
	})

	Describe("Append and Turns", func() {
		It("starts empty", func() {
			Expect(store.Len()).To(Equal(0))
			Expect(store.Turns()).To(BeEmpty())
		})

		It("preserves append order", func() {
			store.Append(conversation.NewTurn(conversation.RoleUser, "first"))
			store.Append(conversation.NewTurn(conversation.RoleAssistant, "second"))
			store.Append(conversation.NewTurn(conversation.RoleUser, "third"))

			turns := store.Turns()
			Expect(turns).To(HaveLen(3))
			Expect(turns[0].Text).To(Equal("first"))
			Expect(turns[1].Text).To(Equal("second"))
			Expect(turns[2].Text).To(Equal("third"))
		})

		It("returns a copy that does not alias internal state", func() {
			store.Append(conversation.NewTurn(conversation.RoleUser, "original"))

			turns := store.Turns()
			turns[0].Text = "mutated"

			Expect(store.Turns()[0].Text).To(Equal("original"))
		})
	})

	Describe("Len", func() {
		It("counts system turns", func() {
			store.Append(conversation.NewTurn(conversation.RoleSystem, "persona"))
			store.Append(conversation.NewTurn(conversation.RoleUser, "hi"))

			Expect(store.Len()).To(Equal(2))
		})
	})

	Describe("RecentWindow", func() {
		It("returns everything when under the window size", func() {
			store.Append(conversation.NewTurn(conversation.RoleUser, "one"))
			store.Append(conversation.NewTurn(conversation.RoleAssistant, "two"))

			window := store.RecentWindow(10)
			Expect(window).To(HaveLen(2))
			Expect(window[0].Text).To(Equal("one"))
			Expect(window[1].Text).To(Equal("two"))
		})

		It("returns only the most recent n turns in chronological order", func() {
			for i := 0; i < 15; i++ {
				role := conversation.RoleUser
				if i%2 == 1 {
					role = conversation.RoleAssistant
				}
				store.Append(conversation.NewTurn(role, fmt.Sprintf("turn-%d", i)))
			}

			window := store.RecentWindow(10)
			Expect(window).To(HaveLen(10))
			Expect(window[0].Text).To(Equal("turn-5"))
			Expect(window[9].Text).To(Equal("turn-14"))
		})

		It("excludes system turns without counting them against n", func() {
			store.Append(conversation.NewTurn(conversation.RoleSystem, "persona"))
			for i := 0; i < 10; i++ {
				store.Append(conversation.NewTurn(conversation.RoleUser, fmt.Sprintf("turn-%d", i)))
			}

			window := store.RecentWindow(10)
			Expect(window).To(HaveLen(10))
			for _, turn := range window {
				Expect(turn.Role).NotTo(Equal(conversation.RoleSystem))
			}
			Expect(window[0].Text).To(Equal("turn-0"))
		})

		It("skips interleaved system turns", func() {
			store.Append(conversation.NewTurn(conversation.RoleUser, "a"))
			store.Append(conversation.NewTurn(conversation.RoleSystem, "note"))
			store.Append(conversation.NewTurn(conversation.RoleAssistant, "b"))

			window := store.RecentWindow(2)
			Expect(window).To(HaveLen(2))
			Expect(window[0].Text).To(Equal("a"))
			Expect(window[1].Text).To(Equal("b"))
		})

		It("returns nil for a non-positive window", func() {
			store.Append(conversation.NewTurn(conversation.RoleUser, "hi"))

			Expect(store.RecentWindow(0)).To(BeNil())
			Expect(store.RecentWindow(-1)).To(BeNil())
		})
	})

	Describe("concurrent access", func() {
		It("tolerates concurrent appends and reads", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						store.Append(conversation.NewTurn(conversation.RoleUser, fmt.Sprintf("w%d-%d", n, j)))
						_ = store.RecentWindow(10)
					}
				}(i)
			}
			wg.Wait()

			Expect(store.Len()).To(Equal(400))
		})
	})
})
