// Package jamfgraph converts device, user, and application inventory from a
// Jamf Pro server into a normalized entity-relationship graph.
//
// The integration fetches raw resource collections from the Jamf REST API,
// converts each record into a canonical graph entity, and links entities with
// directed, typed relationships. The resulting graph is handed to a
// persistence collaborator through the state.JobState interface; the keys of
// all entities and relationships are deterministic, so re-running an
// ingestion against the same server upserts rather than duplicates.
//
// # Packages
//
//   - graph: entity and relationship records plus the deterministic key scheme
//   - jamf: raw API record types and the REST client
//   - profile: configuration-profile payload parsing
//   - convert: pure converters from raw records to entities and relationships
//   - state: job state (entity/relationship persistence and cross-step handoff)
//   - ingest: step orchestration with declared dependencies
//   - config: YAML configuration loading
//
// # Data Flow
//
// An ingestion run executes a fixed set of steps in dependency order. Each
// step fetches one resource collection, converts the records, and persists
// entities followed by relationships. The configuration-profiles step parses
// each profile's plist payload and stores the parsed results by profile ID in
// job state; the computers step reads that map to collapse security settings
// (firewall, screensaver) across every profile applied to a computer.
//
// This package holds the error types shared by all subpackages.
package jamfgraph
