// Package gateway implements the prediction pipeline: validate a candidate
// record against the feature schema, build a scoring payload, call the
// model-serving endpoint, and normalize the result.
package gateway

// CandidateRecord is the raw, untrusted client input: feature name to value.
type CandidateRecord map[string]interface{}

// ValidatedRecord holds coerced feature values in schema column order.
type ValidatedRecord struct {
	Columns []string
	Values  []float64
}

// FeatureSchema is the ordered feature set the model requires, with optional
// per-feature default values.
type FeatureSchema struct {
	names    []string
	defaults map[string]float64

	// defaultsSatisfyPresence exempts defaulted features from required-
	// presence validation. Off, every schema feature must appear in the
	// input even when it has a default.
	defaultsSatisfyPresence bool
}

// SchemaOption configures a FeatureSchema.
type SchemaOption func(*FeatureSchema)

// WithDefaultsSatisfyPresence lets configured defaults stand in for absent
// input features during validation.
func WithDefaultsSatisfyPresence() SchemaOption {
	return func(s *FeatureSchema) {
		s.defaultsSatisfyPresence = true
	}
}

// NewFeatureSchema copies names and defaults so the schema stays immutable
// after construction.
func NewFeatureSchema(names []string, defaults map[string]float64, opts ...SchemaOption) *FeatureSchema {
	s := &FeatureSchema{
		names:    append([]string(nil), names...),
		defaults: make(map[string]float64, len(defaults)),
	}
	for k, v := range defaults {
		s.defaults[k] = v
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Names returns the feature names in schema order.
func (s *FeatureSchema) Names() []string {
	return append([]string(nil), s.names...)
}

// Default returns the configured default for a feature, or 0.
func (s *FeatureSchema) Default(name string) float64 {
	return s.defaults[name]
}

// HasDefault reports whether a feature has a configured default.
func (s *FeatureSchema) HasDefault(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// Len returns the number of features in the schema.
func (s *FeatureSchema) Len() int {
	return len(s.names)
}
