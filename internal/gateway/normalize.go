package gateway

// PredictionValue is the model-dependent prediction payload returned to the
// client: scalar, vector, or nested structure.
type PredictionValue interface{}

// Extractor is one strategy for pulling a prediction value out of a raw
// upstream response. Extract reports whether the strategy applied.
type Extractor interface {
	Name() string
	Extract(resp RawResponse) (PredictionValue, bool)
}

// firstElementExtractor matches mappings carrying a known key whose value is
// a non-empty array, and yields the first element.
type firstElementExtractor struct {
	key string
}

func (e firstElementExtractor) Name() string { return e.key }

func (e firstElementExtractor) Extract(resp RawResponse) (PredictionValue, bool) {
	m, ok := resp.(map[string]interface{})
	if !ok {
		return nil, false
	}
	value, ok := m[e.key]
	if !ok {
		return nil, false
	}
	arr, ok := value.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, false
	}
	return arr[0], true
}

// identityExtractor always matches and returns the response unchanged.
type identityExtractor struct{}

func (identityExtractor) Name() string { return "identity" }

func (identityExtractor) Extract(resp RawResponse) (PredictionValue, bool) {
	return resp, true
}

// Normalizer applies an ordered list of extraction strategies; the first
// match wins. Upstream serving responses vary in shape, so the chain is
// intentionally permissive and never fails.
type Normalizer struct {
	extractors []Extractor
}

// NewNormalizer builds a normalizer from an explicit strategy order.
func NewNormalizer(extractors ...Extractor) *Normalizer {
	return &Normalizer{extractors: extractors}
}

// DefaultNormalizer covers the common serving shapes: {"predictions": [...]},
// {"data": [...]}, and everything else passed through whole.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(
		firstElementExtractor{key: "predictions"},
		firstElementExtractor{key: "data"},
		identityExtractor{},
	)
}

func (n *Normalizer) Normalize(resp RawResponse) PredictionValue {
	for _, e := range n.extractors {
		if value, ok := e.Extract(resp); ok {
			return value
		}
	}
	return resp
}
