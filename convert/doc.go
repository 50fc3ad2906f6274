// Package convert maps raw Jamf records into canonical graph entities and
// relationships.
//
// Every converter is a pure function: one or more raw records in, exactly one
// entity per record out (batch converters preserve input order). Converters
// never fail on missing optional vendor fields; an absent field maps to an
// omitted canonical property. Every raw payload used to build an entity is
// retained on the entity, tagged by logical name ("default" for the list
// record, "detail" for the per-resource record), for audit purposes.
//
// The computer converter is the most involved: it overlays an optional detail
// record onto the list record, normalizes platform and OS naming, derives
// encryption state from the primary boot partition, and collapses security
// settings across all configuration profiles applied to the computer.
package convert
