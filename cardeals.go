// Package cardeals normalizes vehicle lease and finance offers scraped from
// heterogeneous dealership websites into a structured, queryable record store.
// Raw specials-page markup is routed to a platform-specific structural
// extractor when the page matches a known CMS layout, or to a generative
// fallback extractor when it doesn't; candidates are then validated,
// normalized, and deduplicated before persistence.
//
// This package contains domain types, interfaces, and pure domain logic
// (field parsers, vehicle vocabulary, validation) following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package cardeals
