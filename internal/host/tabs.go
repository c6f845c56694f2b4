package host

import (
	"errors"
	"sync"
)

// ErrTabGone reports that the host explicitly closed the tab.
var ErrTabGone = errors.New("tab no longer exists")

// ErrTabUnknown reports that the host has not mentioned the tab since
// process start. Unknown is not gone: records created before a restart,
// or by the CLI or MCP server, refer to tabs the daemon has never seen.
var ErrTabUnknown = errors.New("tab not reported by host")

// TabInfo is the live metadata the host reports for a tab.
type TabInfo struct {
	URL   string
	Title string
}

// TabRegistry tracks which tabs the host currently has. The daemon feeds
// it from lifecycle events; the reminder path consults it to decide
// whether a tab still exists at delivery time.
type TabRegistry interface {
	Get(tabID int) (TabInfo, error)
	Put(tabID int, info TabInfo)
	Remove(tabID int)
}

// TabTable is the in-memory TabRegistry. It holds only what the host has
// reported since process start; nothing is persisted. Removed tabs leave
// a tombstone so a later Get can distinguish a closed tab from one the
// daemon simply has no knowledge of.
type TabTable struct {
	mu   sync.RWMutex
	tabs map[int]TabInfo
	gone map[int]struct{}
}

// NewTabTable creates an empty table.
func NewTabTable() *TabTable {
	return &TabTable{
		tabs: make(map[int]TabInfo),
		gone: make(map[int]struct{}),
	}
}

// Get returns the live metadata for a tab. A tab the host removed yields
// ErrTabGone; a tab never reported since process start yields
// ErrTabUnknown.
func (t *TabTable) Get(tabID int) (TabInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if info, ok := t.tabs[tabID]; ok {
		return info, nil
	}
	if _, ok := t.gone[tabID]; ok {
		return TabInfo{}, ErrTabGone
	}
	return TabInfo{}, ErrTabUnknown
}

// Put records or refreshes a tab's metadata. Hosts reuse tab ids, so a
// Put clears any tombstone for the id.
func (t *TabTable) Put(tabID int, info TabInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tabs[tabID] = info
	delete(t.gone, tabID)
}

// Remove drops a tab after the host reports it closed, leaving a
// tombstone.
func (t *TabTable) Remove(tabID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tabs, tabID)
	t.gone[tabID] = struct{}{}
}
