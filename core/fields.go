package core

import "sort"

// Fields maps field names to opaque string values. The empty string means unset.
type Fields map[string]string

// IsSet reports whether name holds a non-empty value.
func (f Fields) IsSet(name string) bool { return f[name] != "" }

// Missing returns the names (in the given order) that are unset.
func (f Fields) Missing(names []string) []string {
	missing := make([]string, 0, len(names))
	for _, n := range names {
		if !f.IsSet(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Unset clears the given names.
func (f Fields) Unset(names ...string) {
	for _, n := range names {
		f[n] = ""
	}
}

// Subset returns a copy restricted to names.
func (f Fields) Subset(names []string) Fields {
	out := make(Fields, len(names))
	for _, n := range names {
		out[n] = f[n]
	}
	return out
}

// Clone returns a copy of the mapping.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
