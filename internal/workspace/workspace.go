// Package workspace holds the per-browser-session state of the web UI.
//
// A Workspace is created on the first request of a session, changed only
// through its methods and discarded on logout or after it has been idle for
// longer than the store's TTL. The engines never read a workspace; handlers
// copy what they need out of it and pass it explicitly.
package workspace

import (
	"slices"
	"sync"
	"time"

	"kwbrand/internal/merge"
	"kwbrand/internal/models"
)

// KeywordSet is the last keyword upload: its valid records plus the
// number of rows dropped for an invalid volume.
type KeywordSet struct {
	File    string
	Records []models.KeywordRecord
	Ranked  []models.RankedKeyword
	Dropped int
}

// BrandSet is the last brand-list upload.
type BrandSet struct {
	File   string
	Brands []models.Brand
}

// Workspace is the mutable state behind one browser session.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	lastSeen time.Time
	keywords *KeywordSet
	brands   *BrandSet
	rules    []models.ManualRule
	results  []models.MatchResult
	dedup    *models.DedupResult
	merged   *merge.Result
}

func newWorkspace(id string, now time.Time, presets []models.ManualRule) *Workspace {
	return &Workspace{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		rules:     slices.Clone(presets),
	}
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

// LastSeen returns when the workspace was last used.
func (w *Workspace) LastSeen() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastSeen
}

// SetKeywords replaces the keyword table. Previous match results are
// discarded since they no longer describe the inputs.
func (w *Workspace) SetKeywords(ks *KeywordSet) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keywords = ks
	w.results = nil
}

// Keywords returns the current keyword set, or nil.
func (w *Workspace) Keywords() *KeywordSet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keywords
}

// SetBrands replaces the brand list and discards previous match results.
func (w *Workspace) SetBrands(bs *BrandSet) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brands = bs
	w.results = nil
}

// Brands returns the current brand set, or nil.
func (w *Workspace) Brands() *BrandSet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.brands
}

// AddRule appends a manual rule. Rules without terms are ignored.
func (w *Workspace) AddRule(rule models.ManualRule) bool {
	if rule.BrandName == "" || len(rule.Terms) == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rules = append(w.rules, rule)
	return true
}

// ClearRules removes every manual rule, presets included.
func (w *Workspace) ClearRules() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rules = nil
}

// Rules returns a copy of the manual rules in insertion order.
func (w *Workspace) Rules() []models.ManualRule {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.rules)
}

// SetResults stores the output of the last match run.
func (w *Workspace) SetResults(results []models.MatchResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = results
}

// Results returns the last match results. The slice must not be modified.
func (w *Workspace) Results() []models.MatchResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.results
}

func (w *Workspace) SetDedup(r *models.DedupResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dedup = r
}

func (w *Workspace) Dedup() *models.DedupResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dedup
}

// SetMerged stores the last batch merge so it can be downloaded.
func (w *Workspace) SetMerged(r *merge.Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.merged = r
}

func (w *Workspace) Merged() *merge.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.merged
}
