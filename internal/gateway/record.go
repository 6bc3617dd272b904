package gateway

// Build produces the validated record scored against the model. For each
// feature in schema order: the input value if present and coercible, else the
// configured default, else 0.0. Total for any record that passed Validate;
// coercion is repeated rather than cached since it is idempotent and cheap.
func (s *FeatureSchema) Build(record CandidateRecord) ValidatedRecord {
	values := make([]float64, len(s.names))
	for i, name := range s.names {
		if raw, ok := record[name]; ok {
			if f, ok := coerceFloat(raw); ok {
				values[i] = f
				continue
			}
		}
		values[i] = s.defaults[name]
	}
	return ValidatedRecord{
		Columns: s.Names(),
		Values:  values,
	}
}
