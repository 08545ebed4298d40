// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, a compact numeric Code with a
// stable string form, the message, a primary source.Span, and optional
// notes pointing at related positions. Diagnostics are plain data; rendering
// lives in internal/diagfmt and orchestration in internal/driver.
//
// Producers emit through a Reporter so emission stays decoupled from
// storage. Bag is the standard accumulator: it preserves append order
// during a traversal and supports sorting, merging, and deduplication for
// deterministic output. Semantic problems are never returned as Go errors;
// the only way to observe them is to inspect the bag after a traversal.
package diag
