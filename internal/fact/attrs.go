package fact

// Attr is a single attribute name/value pair.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute mapping. Keys are unique; setting an existing
// key overwrites its value in place, keeping the key's original position.
// Merging folds later mappings over earlier ones with the same rule.
type Attrs struct {
	pairs []Attr
}

// NewAttrs builds a mapping from pairs, applying the overwrite rule in order.
func NewAttrs(pairs ...Attr) Attrs {
	var a Attrs
	for _, p := range pairs {
		a.Set(p.Key, p.Value)
	}
	return a
}

func (a *Attrs) Set(key, value string) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			a.pairs[i].Value = value
			return
		}
	}
	a.pairs = append(a.pairs, Attr{Key: key, Value: value})
}

func (a Attrs) Get(key string) (string, bool) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			return a.pairs[i].Value, true
		}
	}
	return "", false
}

func (a Attrs) Len() int {
	return len(a.pairs)
}

func (a Attrs) Empty() bool {
	return len(a.pairs) == 0
}

// Pairs returns the pairs in definition order.
// Callers must not modify the returned slice.
func (a Attrs) Pairs() []Attr {
	return a.pairs
}

// Merge folds other into a: every pair of other is Set on a in order.
func (a *Attrs) Merge(other Attrs) {
	for _, p := range other.pairs {
		a.Set(p.Key, p.Value)
	}
}

// Clone returns an independent copy.
func (a Attrs) Clone() Attrs {
	if len(a.pairs) == 0 {
		return Attrs{}
	}
	out := make([]Attr, len(a.pairs))
	copy(out, a.pairs)
	return Attrs{pairs: out}
}

// Merged returns the fold of the given mappings, earliest first.
// Later mappings override matching keys of earlier ones.
func Merged(mappings ...Attrs) Attrs {
	var out Attrs
	for _, m := range mappings {
		out.Merge(m)
	}
	return out
}
