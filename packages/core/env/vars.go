package env

import "sort"

// Vars is an insertion-ordered set of environment variables
type Vars struct {
	keys   []string
	values map[string]string
}

func NewVars() *Vars {
	return &Vars{values: make(map[string]string)}
}

// VarsFromMap builds Vars from a plain map, ordering keys alphabetically
func VarsFromMap(m map[string]string) *Vars {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := NewVars()
	for _, k := range keys {
		v.Set(k, m[k])
	}
	return v
}

// Set adds or updates a variable. Updating keeps the original position.
func (v *Vars) Set(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

func (v *Vars) Get(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	val, ok := v.values[key]
	return val, ok
}

func (v *Vars) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Delete removes a variable and reports whether it existed
func (v *Vars) Delete(key string) bool {
	if !v.Has(key) {
		return false
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
	return true
}

// Rename moves a value to a new key in place. It fails if oldKey is missing
// or newKey is already taken.
func (v *Vars) Rename(oldKey, newKey string) bool {
	if !v.Has(oldKey) || v.Has(newKey) {
		return false
	}
	v.values[newKey] = v.values[oldKey]
	delete(v.values, oldKey)
	for i, k := range v.keys {
		if k == oldKey {
			v.keys[i] = newKey
			break
		}
	}
	return true
}

// Keys returns a copy of the keys in order
func (v *Vars) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

func (v *Vars) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Each calls fn for every variable in order
func (v *Vars) Each(fn func(key, value string)) {
	if v == nil {
		return
	}
	for _, k := range v.keys {
		fn(k, v.values[k])
	}
}

// Map returns an unordered copy
func (v *Vars) Map() map[string]string {
	m := make(map[string]string, v.Len())
	v.Each(func(key, value string) {
		m[key] = value
	})
	return m
}

func (v *Vars) Clone() *Vars {
	clone := NewVars()
	v.Each(clone.Set)
	return clone
}
