package schema_test

import (
	"context"
	"testing"

	"github.com/niksmo/eshop/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeClientEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID",
			t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID",
			t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		eventValue1 := schema.ClientEventV1{
			Username:    "testUser",
			ProductID:   "testProductID",
			ProductName: "testProductName",
			Category:    "testCategory",
			Price:       123.45,
			Event:       "cart_add",
			Quantity:    3,
		}

		encodedData, err := serde.Encode(eventValue1)
		require.NoError(t, err)

		var eventValue2 schema.ClientEventV1
		err = serde.Decode(encodedData, &eventValue2)
		require.NoError(t, err)

		assert.Equal(t, eventValue1, eventValue2)
	})
}
