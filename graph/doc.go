// Package graph defines the canonical graph records produced by the
// integration: entities (nodes) and relationships (directed, typed edges),
// together with the deterministic key scheme they are addressed by.
//
// Keys are pure functions of their inputs. An entity key is derived from the
// entity type and the vendor-assigned ID; a relationship key is derived from
// the source key, the relationship class, and the target key. Recomputing a
// key from the same inputs always yields the same string, which gives the
// persistence layer upsert semantics across ingestion runs. The key format is
// a wire contract consumed by downstream systems and must not change without
// a migration plan.
package graph
