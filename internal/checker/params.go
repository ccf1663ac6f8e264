package checker

import "strconv"

// Params is the keyword-parameter bag forwarded to every check function.
//
// Values are strings as supplied by manifests or --set flags; check functions
// read only the keys they recognize through the typed getters and ignore the
// rest. A missing or unparseable value falls back to the check's default, so
// unknown keys are never an error.
type Params map[string]string

func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (p Params) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Merge returns a new bag with p's entries overridden by over. Neither input
// is mutated.
func (p Params) Merge(over Params) Params {
	out := make(Params, len(p)+len(over))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
