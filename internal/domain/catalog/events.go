package catalog

import (
	"strconv"
	"strings"
)

// EventNature follows the source system's encoding: 1 = earning,
// 2 = deduction, 3 = informational (bases, totals, employer-side values).
type EventNature int

const (
	NatureEarning       EventNature = 1
	NatureDeduction     EventNature = 2
	NatureInformational EventNature = 3
)

// EventIncidence declares which statutory bases a payroll event feeds.
type EventIncidence struct {
	SocialSecurity bool
	IncomeTax      bool
	SeveranceFund  bool
}

// EventEntry describes one payroll event code.
type EventEntry struct {
	Code        int
	Description string
	Nature      EventNature
	Incidence   EventIncidence
}

// EventCatalog is an immutable mapping from canonical event code to its
// entry. Loaded once per process.
type EventCatalog struct {
	entries map[int]EventEntry
}

func NewEventCatalog(entries []EventEntry) *EventCatalog {
	m := make(map[int]EventEntry, len(entries))
	for _, e := range entries {
		m[e.Code] = e
	}
	return &EventCatalog{entries: m}
}

// NormalizeCode converts a raw event code from the source system into the
// canonical integer key. The legacy system emits numeric strings with
// inconsistent leading zeros ("042", "42", " 42"); normalization happens
// once at ingestion, never at comparison sites.
func NormalizeCode(raw string) (int, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "0")
	if trimmed == "" {
		if strings.ContainsAny(raw, "0") {
			return 0, nil
		}
		return 0, ErrInvalidEventCode
	}
	code, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrInvalidEventCode
	}
	return code, nil
}

// Lookup resolves a canonical code to its catalog entry.
func (c *EventCatalog) Lookup(code int) (EventEntry, bool) {
	entry, ok := c.entries[code]
	return entry, ok
}

// LookupRaw normalizes a raw source code and resolves it.
func (c *EventCatalog) LookupRaw(raw string) (EventEntry, bool) {
	code, err := NormalizeCode(raw)
	if err != nil {
		return EventEntry{}, false
	}
	return c.Lookup(code)
}

// Len returns the number of configured event entries.
func (c *EventCatalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries (for the catalog listing endpoint).
func (c *EventCatalog) Entries() []EventEntry {
	result := make([]EventEntry, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, e)
	}
	return result
}
