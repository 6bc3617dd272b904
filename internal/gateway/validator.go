package gateway

import (
	"prediction-gateway/internal/common/errors"
)

// Validate checks a candidate record against the schema. Missing features are
// collected in full, in schema order. Value coercion stops at the first
// uncoercible feature, also in schema order, so the error names exactly one
// feature (single-error report, matching the established front-end text).
// Pure function of the record and the schema.
func (s *FeatureSchema) Validate(record CandidateRecord) error {
	var missing []string
	for _, name := range s.names {
		if _, ok := record[name]; ok {
			continue
		}
		if s.defaultsSatisfyPresence && s.HasDefault(name) {
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return errors.NewMissingFeaturesError(missing)
	}

	for _, name := range s.names {
		value, ok := record[name]
		if !ok {
			// only reachable when a default stands in for the feature
			continue
		}
		if _, ok := coerceFloat(value); !ok {
			return errors.NewInvalidFeatureValueError(name)
		}
	}

	return nil
}
