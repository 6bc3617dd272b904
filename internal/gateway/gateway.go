package gateway

import (
	"context"

	"prediction-gateway/internal/common/errors"
	"prediction-gateway/internal/common/logger"
	"prediction-gateway/internal/common/observability"
)

// Gateway orchestrates the prediction pipeline. Stateless: it shares only the
// immutable schema, the HTTP client inside the invoker, and the normalizer
// chain across requests.
type Gateway struct {
	schema     *FeatureSchema
	invoker    *Invoker
	normalizer *Normalizer
	tracing    *observability.Tracing
	logger     logger.Logger
}

// Option configures optional gateway collaborators.
type Option func(*Gateway)

// WithNormalizer replaces the default extraction chain.
func WithNormalizer(n *Normalizer) Option {
	return func(g *Gateway) { g.normalizer = n }
}

// WithTracing enables spans around the upstream scoring call.
func WithTracing(t *observability.Tracing) Option {
	return func(g *Gateway) { g.tracing = t }
}

func New(schema *FeatureSchema, invoker *Invoker, log logger.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		schema:     schema,
		invoker:    invoker,
		normalizer: DefaultNormalizer(),
		logger: log.With(map[string]interface{}{
			"component": "gateway",
		}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Predict validates the record, builds the tabular scoring payload, invokes
// the model endpoint once, and normalizes its response. Every entity lives
// and dies within this call.
func (g *Gateway) Predict(ctx context.Context, record CandidateRecord) (PredictionValue, error) {
	if len(record) == 0 {
		return nil, errors.NewNoInputProvidedError()
	}

	if err := g.schema.Validate(record); err != nil {
		return nil, err
	}

	validated := g.schema.Build(record)
	payload := NewSplitRequest(validated)

	ctx, end := g.tracing.StartSpan(ctx, "score_model")
	defer end()

	raw, err := g.invoker.Invoke(ctx, payload)
	if err != nil {
		return nil, err
	}

	value := g.normalizer.Normalize(raw)
	g.logger.Debug("prediction extracted", map[string]interface{}{
		"features": g.schema.Len(),
	})
	return value, nil
}
