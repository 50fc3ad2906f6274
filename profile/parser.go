package profile

import (
	"fmt"

	"howett.net/plist"
)

// Well-known payload domains and property names referenced by the computer
// security-posture collapse.
const (
	PayloadTypeFirewall    = "com.apple.security.firewall"
	PayloadTypeScreensaver = "com.apple.screensaver"

	PropertyPayloadEnabled      = "PayloadEnabled"
	PropertyEnableFirewall      = "EnableFirewall"
	PropertyEnableStealthMode   = "EnableStealthMode"
	PropertyBlockAllIncoming    = "BlockAllIncoming"
	PropertyLoginWindowIdleTime = "loginWindowIdleTime"
)

// PayloadItem is one typed payload dictionary from a profile's PayloadContent.
type PayloadItem struct {
	// Type is the payload domain key (e.g., "com.apple.security.firewall").
	Type string

	// Enabled reflects the PayloadEnabled flag. A payload contributes to
	// collapsed values only when enabled.
	Enabled bool

	// Properties holds every key of the payload dictionary, including the
	// payload metadata keys, exactly as decoded from the plist.
	Properties map[string]any
}

// Parsed is the normalized form of one profile payload: an ordered sequence
// of typed payload items.
type Parsed struct {
	// DisplayName is the PayloadDisplayName of the outer payload, if present.
	DisplayName string

	// Identifier is the PayloadIdentifier of the outer payload, if present.
	Identifier string

	// Items are the payload dictionaries in document order.
	Items []PayloadItem
}

// Parse decodes a profile's plist payload document. It returns an error for
// malformed documents; the caller reports the failure and treats the profile
// as unavailable rather than aborting the ingestion run.
func Parse(payload string) (*Parsed, error) {
	if payload == "" {
		return nil, fmt.Errorf("profile: empty payload")
	}

	var root map[string]any
	if _, err := plist.Unmarshal([]byte(payload), &root); err != nil {
		return nil, fmt.Errorf("profile: failed to parse payload plist: %w", err)
	}

	parsed := &Parsed{
		DisplayName: stringValue(root["PayloadDisplayName"]),
		Identifier:  stringValue(root["PayloadIdentifier"]),
	}

	content, _ := root["PayloadContent"].([]any)
	for _, raw := range content {
		dict, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		item := PayloadItem{
			Type:       stringValue(dict["PayloadType"]),
			Enabled:    boolValue(dict[PropertyPayloadEnabled]),
			Properties: dict,
		}
		parsed.Items = append(parsed.Items, item)
	}

	return parsed, nil
}

// Item returns the first payload item with the given PayloadType, or nil.
func (p *Parsed) Item(payloadType string) *PayloadItem {
	for i := range p.Items {
		if p.Items[i].Type == payloadType {
			return &p.Items[i]
		}
	}
	return nil
}

// Bool returns the named property as a boolean. Absent or non-boolean
// properties yield false.
func (i *PayloadItem) Bool(name string) bool {
	return boolValue(i.Properties[name])
}

// Number returns the named property as a float64 and reports whether the
// property was present and numeric.
func (i *PayloadItem) Number(name string) (float64, bool) {
	return numberValue(i.Properties[name])
}

// String returns the named property as a string, or "" when absent.
func (i *PayloadItem) String(name string) string {
	return stringValue(i.Properties[name])
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// boolValue accepts the encodings plists actually use for booleans: <true/>,
// and integer 0/1 written by some profile generators. Integers arrive as
// float64 when a parsed profile has round-tripped through JSON job state.
func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}

func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
