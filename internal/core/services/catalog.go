package services

import (
	"strings"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// separatorReplacer turns multi-word tag separators into spaces so
// "pohela-boishakh" also matches "pohela boishakh".
var separatorReplacer = strings.NewReplacer("-", " ", "_", " ")

// TagCatalog matches text against the curated tag catalog.
type TagCatalog struct {
	tags    []string
	lowered []string
	spaced  []string
}

// NewTagCatalog creates a catalog over tags, in the given order.
// A nil slice uses domain.AllBengaliTags().
func NewTagCatalog(tags []string) *TagCatalog {
	if tags == nil {
		tags = domain.AllBengaliTags()
	}
	c := &TagCatalog{
		tags:    append([]string(nil), tags...),
		lowered: make([]string, len(tags)),
		spaced:  make([]string, len(tags)),
	}
	for i, tag := range tags {
		c.lowered[i] = strings.ToLower(tag)
		c.spaced[i] = separatorReplacer.Replace(c.lowered[i])
	}
	return c
}

// Tags returns the catalog in order.
func (c *TagCatalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

// MatchDescription returns the curated tags that occur inside description.
// Matching is case-insensitive; a multi-word tag also matches its
// space-separated form. The result is never nil and follows catalog order.
func (c *TagCatalog) MatchDescription(description string) []string {
	matched := []string{}
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return matched
	}
	for i, tag := range c.tags {
		if strings.Contains(desc, c.lowered[i]) || strings.Contains(desc, c.spaced[i]) {
			matched = append(matched, tag)
		}
	}
	return matched
}

// MatchQuery returns the curated tags that contain searchText, directly or
// once their separators are replaced by spaces. searchText is trimmed and
// lowercased first.
func (c *TagCatalog) MatchQuery(searchText string) []string {
	matched := []string{}
	q := strings.ToLower(strings.TrimSpace(searchText))
	for i, tag := range c.tags {
		if strings.Contains(c.lowered[i], q) || strings.Contains(c.spaced[i], q) {
			matched = append(matched, tag)
		}
	}
	return matched
}
