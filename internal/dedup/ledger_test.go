package dedup

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Admit_FirstSeenWins(t *testing.T) {
	l := NewLedger(10)

	ok, reason := l.Admit("Acme", "acme.com")
	assert.True(t, ok)
	assert.Equal(t, RejectNone, reason)

	// Normalized name key collides even with no domain.
	ok, reason = l.Admit("ACME", "")
	assert.False(t, ok)
	assert.Equal(t, RejectDuplicateName, reason)

	assert.Equal(t, 1, l.Count())
}

func TestLedger_Admit_DuplicateDomain(t *testing.T) {
	l := NewLedger(10)

	ok, _ := l.Admit("Acme", "acme.com")
	assert.True(t, ok)

	ok, reason := l.Admit("Acme Holdings", "www.acme.com")
	assert.False(t, ok)
	assert.Equal(t, RejectDuplicateDomain, reason)
}

func TestLedger_Admit_EmptyName(t *testing.T) {
	l := NewLedger(10)

	ok, reason := l.Admit("   ", "acme.com")
	assert.False(t, ok)
	assert.Equal(t, RejectEmptyName, reason)
	assert.Equal(t, 0, l.Count())
}

func TestLedger_Admit_NoDomainAccepted(t *testing.T) {
	l := NewLedger(10)

	ok, _ := l.Admit("Acme", "")
	assert.True(t, ok)

	// A later candidate with a fresh domain is still admitted.
	ok, _ = l.Admit("Widgets", "widgets.io")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Count())
}

func TestLedger_Admit_CapacityRejectionLeavesLedgerUntouched(t *testing.T) {
	l := NewLedger(1)

	ok, _ := l.Admit("Acme", "acme.com")
	assert.True(t, ok)
	assert.True(t, l.Full())

	ok, reason := l.Admit("Widgets", "widgets.io")
	assert.False(t, ok)
	assert.Equal(t, RejectAtCapacity, reason)

	// The rejected candidate's keys were not marked seen: replaying it
	// against a fresh ledger admits it.
	replay := NewLedger(1)
	ok, _ = replay.Admit("Widgets", "widgets.io")
	assert.True(t, ok)
}

func TestLedger_Admit_Concurrent(t *testing.T) {
	l := NewLedger(50)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Admit(fmt.Sprintf("Company %d", n), fmt.Sprintf("c%d.com", n))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, l.Count())
	assert.True(t, l.Full())
}

func TestNameKey_Normalization(t *testing.T) {
	assert.Equal(t, NameKey("Acme"), NameKey("  ACME  "))
	assert.Equal(t, "acme", NameKey("Acme"))
	// Composed and decomposed forms of the same accented name collide.
	assert.Equal(t, NameKey("Café"), NameKey("Café"))
}

func TestDomainKey_StripsWWW(t *testing.T) {
	assert.Equal(t, "acme.com", DomainKey("WWW.Acme.com"))
	assert.Equal(t, "acme.com", DomainKey("acme.com"))
	assert.Equal(t, "", DomainKey("  "))
}

func TestResultSet_FirstAcceptedWins(t *testing.T) {
	rs := NewResultSet[string](2)

	assert.True(t, rs.Add("a"))
	assert.True(t, rs.Add("b"))
	assert.True(t, rs.Full())
	assert.False(t, rs.Add("c"))

	assert.Equal(t, []string{"a", "b"}, rs.Items())
	assert.Equal(t, 2, rs.Len())
}
