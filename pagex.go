// Package pagex converts loosely-structured third-party HTML pages into
// typed, structured records: article listings with pagination metadata,
// article detail payloads (embedded video stream URLs plus ordered body
// content), and category navigation lists. The extraction engine is a
// cascade of ordered heuristic strategies over a parsed document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, gin/).
package pagex
