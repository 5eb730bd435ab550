package model

// Sentinel marks a slot whose feature could not be computed. It is distinct
// from a genuine 0: the model was trained with -1 standing in for
// unavailable page/reputation lookups.
const Sentinel = -1

// FeatureMap is a named feature set produced by one extractor. Extractors
// produce maps rather than vectors so that slot sets can vary by deployed
// variant without any extractor knowing the trained column order.
type FeatureMap map[string]float64

// Merge folds other into m, overwriting on collision.
func (m FeatureMap) Merge(other FeatureMap) {
	for k, v := range other {
		m[k] = v
	}
}

// Assemble reindexes the extractor outputs against the trained schema.
// Later maps win on slot collisions; any slot no extractor produced is
// filled with the sentinel. The result is always len(schema) long and in
// schema order, never in extractor insertion order.
func Assemble(schema Schema, maps ...FeatureMap) []float64 {
	vec := make([]float64, len(schema))
	for i, name := range schema {
		vec[i] = Sentinel
		for _, m := range maps {
			if v, ok := m[name]; ok {
				vec[i] = v
			}
		}
	}
	return vec
}
