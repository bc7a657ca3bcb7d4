// Package dedup owns the run-scoped deduplication state: the ledger of
// accepted name and domain keys, and the capacity-bounded result set.
package dedup

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// RejectReason explains why a candidate was not admitted.
type RejectReason string

const (
	RejectNone            RejectReason = ""
	RejectEmptyName       RejectReason = "empty_name"
	RejectDuplicateName   RejectReason = "duplicate_name"
	RejectDuplicateDomain RejectReason = "duplicate_domain"
	RejectAtCapacity      RejectReason = "at_capacity"
)

// Ledger is the single owner of dedup state for a run. Admit is the
// only mutation entry point and is serialized: candidate evaluations
// are order-dependent (first-seen wins), so no two read-modify-writes
// of the key sets may interleave.
type Ledger struct {
	mu      sync.Mutex
	names   map[string]struct{}
	domains map[string]struct{}
	target  int
	count   int
}

// NewLedger creates an empty ledger accepting up to target records.
func NewLedger(target int) *Ledger {
	return &Ledger{
		names:   make(map[string]struct{}),
		domains: make(map[string]struct{}),
		target:  target,
	}
}

// Admit evaluates a candidate's name and optional domain ("" means no
// domain) against the ledger atomically. Accepted candidates register
// both keys. Once the target count is reached all further candidates
// are rejected without ledger mutation, so a replay of a
// rejected-at-capacity candidate on a fresh ledger behaves identically.
func (l *Ledger) Admit(name, domain string) (bool, RejectReason) {
	nameKey := NameKey(name)
	if nameKey == "" {
		return false, RejectEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count >= l.target {
		return false, RejectAtCapacity
	}
	if _, dup := l.names[nameKey]; dup {
		return false, RejectDuplicateName
	}

	domainKey := DomainKey(domain)
	if domainKey != "" {
		if _, dup := l.domains[domainKey]; dup {
			return false, RejectDuplicateDomain
		}
		l.domains[domainKey] = struct{}{}
	}

	l.names[nameKey] = struct{}{}
	l.count++
	return true, RejectNone
}

// Count returns how many candidates have been accepted so far.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Target returns the ledger's capacity.
func (l *Ledger) Target() int {
	return l.target
}

// Full reports whether the ledger has reached its target count.
func (l *Ledger) Full() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count >= l.target
}

// NameKey normalizes a company name to its dedup key: NFC-normalized,
// trimmed, lowercased.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}

// DomainKey normalizes a domain to its dedup key: trimmed, lowercased,
// leading "www." stripped.
func DomainKey(domain string) string {
	key := strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(key, "www.")
}
