package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_SchemaOrderPreserved(t *testing.T) {
	schema := NewFeatureSchema([]string{"c", "a", "b"}, nil)
	record := CandidateRecord{"a": 1.0, "b": 2.0, "c": 3.0}

	validated := schema.Build(record)

	assert.Equal(t, []string{"c", "a", "b"}, validated.Columns)
	assert.Equal(t, []float64{3.0, 1.0, 2.0}, validated.Values)
}

func TestBuild_TotalForValidatedInput(t *testing.T) {
	schema := testSchema()
	record := CandidateRecord{"age": "34", "income": 52000, "score": 0.7}
	require.NoError(t, schema.Validate(record))

	validated := schema.Build(record)

	require.Len(t, validated.Values, schema.Len())
	assert.Equal(t, []float64{34, 52000, 0.7}, validated.Values)
}

func TestBuild_DefaultsAndZeroFill(t *testing.T) {
	schema := NewFeatureSchema(
		[]string{"age", "income", "score"},
		map[string]float64{"income": 1500.5},
	)

	validated := schema.Build(CandidateRecord{"age": 30.0})

	// income falls back to its default, score has none and fills as 0.0
	assert.Equal(t, []float64{30.0, 1500.5, 0.0}, validated.Values)
}

func TestBuild_StringCoercion(t *testing.T) {
	schema := NewFeatureSchema([]string{"bmi"}, nil)

	validated := schema.Build(CandidateRecord{"bmi": "27.4"})

	assert.Equal(t, []float64{27.4}, validated.Values)
}
