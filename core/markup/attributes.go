package markup

import "golang.org/x/net/html"

// Attributes is the mutable attribute mapping of one opening tag.
// Insertion order is kept so that re-serialised tags stay stable.
type Attributes struct {
	keys   []string
	values map[string]string
	dirty  bool
}

func newAttributes(attrs []html.Attribute) *Attributes {
	a := &Attributes{values: make(map[string]string, len(attrs))}
	for _, attr := range attrs {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + attr.Key
		}
		// First occurrence wins, like a browser.
		if _, ok := a.values[key]; ok {
			continue
		}
		a.keys = append(a.keys, key)
		a.values[key] = attr.Val
	}
	return a
}

// Get returns the value of key, or "" if absent.
func (a *Attributes) Get(key string) string {
	return a.values[key]
}

// Lookup returns the value of key and whether it is present.
func (a *Attributes) Lookup(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Set adds or replaces key.
func (a *Attributes) Set(key, value string) {
	if old, ok := a.values[key]; ok {
		if old == value {
			return
		}
	} else {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
	a.dirty = true
}

// Delete removes key if present.
func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	a.dirty = true
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Each calls fn for every attribute in source order.
func (a *Attributes) Each(fn func(key, value string)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Modified reports whether Set or Delete changed anything.
func (a *Attributes) Modified() bool {
	return a.dirty
}

func (a *Attributes) htmlAttrs() []html.Attribute {
	out := make([]html.Attribute, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, html.Attribute{Key: k, Val: a.values[k]})
	}
	return out
}
