// Package state provides the job state an ingestion run writes into: entity
// and relationship persistence plus a small key-value surface for handing
// data between steps.
//
// Two implementations are provided. MemoryJobState keeps everything
// in-process and is the natural choice for tests and dry runs. RedisJobState
// stores records as JSON values in Redis so a run's output survives the
// process and can be consumed by a separate synchronizer.
//
// Entities and relationships are addressed by their deterministic keys, so
// adding a record twice replaces it (upsert). The store is told the full
// current set on every run; reconciling deletions against previous runs is
// the downstream consumer's concern.
package state
