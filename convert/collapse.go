package convert

import "github.com/zero-day-ai/jamfgraph/profile"

// collapse folds one payload property across all profiles applied to a
// computer into a single effective value. combine receives the matching
// payload item of each profile in turn (nil when the profile has no payload
// of that type) together with the accumulated value. All collapse policies
// share this fold; only the combine function differs.
func collapse[T any](profiles []*profile.Parsed, payloadType string, initial T, combine func(item *profile.PayloadItem, current T) T) T {
	value := initial
	for _, p := range profiles {
		value = combine(p.Item(payloadType), value)
	}
	return value
}

// collapseBool is the any-enabled-wins policy: true when any profile has an
// enabled payload of the given type whose named property is true.
func collapseBool(profiles []*profile.Parsed, payloadType, property string) bool {
	return collapse(profiles, payloadType, false, func(item *profile.PayloadItem, current bool) bool {
		if item != nil && item.Enabled && item.Bool(property) {
			return true
		}
		return current
	})
}

// collapseMin is the most-restrictive-wins policy for numeric properties:
// the minimum value across all enabled payloads that carry the property as a
// number. The second result reports whether any profile contributed.
func collapseMin(profiles []*profile.Parsed, payloadType, property string) (float64, bool) {
	type minAcc struct {
		value float64
		set   bool
	}

	acc := collapse(profiles, payloadType, minAcc{}, func(item *profile.PayloadItem, current minAcc) minAcc {
		if item == nil || !item.Enabled {
			return current
		}
		n, ok := item.Number(property)
		if !ok {
			return current
		}
		if !current.set || n < current.value {
			return minAcc{value: n, set: true}
		}
		return current
	})

	return acc.value, acc.set
}
