package model

import "sort"

// Catalog maps a date key (YYYY-MM-DD) to the record of that day.
type Catalog map[string]RoundRecord

// Keys returns the date keys in ascending order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Recent returns up to limit keys newest first, skipping exclude.
// A limit <= 0 means no limit.
func (c Catalog) Recent(exclude string, limit int) []string {
	keys := c.Keys()
	out := make([]string, 0, len(keys))

	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] == exclude {
			continue
		}

		if limit > 0 && len(out) >= limit {
			break
		}

		out = append(out, keys[i])
	}

	return out
}
