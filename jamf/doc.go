// Package jamf provides the raw record types returned by the Jamf Pro
// classic API and a thin REST client for fetching them.
//
// The types in this package mirror the vendor payloads as-is: snake_case
// fields, optional sub-records, and the occasional field that is encoded as
// either a single object or an array depending on cardinality. Normalization
// into canonical graph entities happens in the convert package; the one
// exception is Sequence, which coerces the ambiguous singular-vs-array
// encoding into a uniform slice and lives here with the types that exhibit it.
package jamf
