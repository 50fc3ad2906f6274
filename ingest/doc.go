// Package ingest orchestrates a full ingestion run against a Jamf Pro
// instance. A run executes a sequence of steps in dependency order, each
// fetching one vendor collection, converting it to entities and
// relationships, and persisting them through a state.JobState.
//
// Steps are isolated: a failing step does not abort the run, it only skips
// the steps that depend on it. Per-item failures inside the computers step
// are isolated further, so one unfetchable computer never blocks the rest of
// the fleet. All step errors are collected and reported together at the end
// of the run.
package ingest
