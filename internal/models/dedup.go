package models

import "strings"

// DedupResult is the outcome of an identifier dedupe run.
type DedupResult struct {
	OriginalCount int      `json:"original_count"`
	UniqueCount   int      `json:"unique_count"`
	Unique        []string `json:"unique_list"`
}

// Removed returns how many duplicate tokens were dropped.
func (r DedupResult) Removed() int {
	return r.OriginalCount - r.UniqueCount
}

// Joined returns the unique identifiers separated by single spaces.
func (r DedupResult) Joined() string {
	return strings.Join(r.Unique, " ")
}
