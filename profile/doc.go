// Package profile parses the plist payload embedded in a macOS configuration
// profile detail record into a normalized, queryable representation.
//
// A profile payload is an XML property list whose PayloadContent array holds
// one dictionary per configured domain (firewall, screensaver, ...). Parse
// preserves the payload order and exposes each item by its PayloadType key
// with typed property accessors. A malformed payload yields an error for that
// one profile; callers treat the profile as unavailable and continue the run.
package profile
