// Package titles normalizes scraped movie titles.
//
// Cinema listings decorate titles with parenthetical annotations such as
// "(50th Anniversary)" or "(Subtitled)". The cleaner strips every such group,
// records known annotations as typed tags, decodes HTML entities and collapses
// whitespace. The cleaned title is the join key for ratings lookups, so the
// cleaner is idempotent: cleaning an already-clean title returns it unchanged.
package titles
