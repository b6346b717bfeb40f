package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
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

type MockSchemaCreater struct {
	mock.Mock
}

func (c *MockSchemaCreater) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := c.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func newCartEventSerde(t *testing.T, schemaID int) schema.Serde {
	t.Helper()
	subject := "testTopic-value"

	schemaIdentifier := new(MockSchemaIdentifier)
	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.CartEventSchemaTextV1,
	).Return(schemaID, nil)

	serde, err := schema.NewSerdeCartEventV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)
	return serde
}

func TestSerdeCartEventV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryUnavailable", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", mock.Anything, mock.Anything, mock.Anything,
		).Return(0, errors.New("connection refused"))

		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt("testTopic-value"),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.Error(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		serde := newCartEventSerde(t, 7)

		v1 := schema.CartEventV1{
			EventID:    "testEventID",
			CartID:     "testCart",
			Kind:       "added",
			ProductID:  "42",
			Variant:    "M",
			Quantity:   1,
			UnitPrice:  "9.99",
			TotalItems: 3,
			OccurredAt: time.Date(2025, 3, 1, 12, 30, 15, 250e6, time.UTC),
		}

		data, err := serde.Encode(v1)
		require.NoError(t, err)

		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0], "magic byte")
		assert.Equal(t, []byte{0, 0, 0, 7}, data[1:5], "schema id")

		var v2 schema.CartEventV1
		require.NoError(t, serde.Decode(data, &v2))

		assert.Equal(t, v1.EventID, v2.EventID)
		assert.Equal(t, v1.CartID, v2.CartID)
		assert.Equal(t, v1.Kind, v2.Kind)
		assert.Equal(t, v1.ProductID, v2.ProductID)
		assert.Equal(t, v1.Variant, v2.Variant)
		assert.Equal(t, v1.Quantity, v2.Quantity)
		assert.Equal(t, v1.UnitPrice, v2.UnitPrice)
		assert.Equal(t, v1.TotalItems, v2.TotalItems)
		assert.True(t, v1.OccurredAt.Equal(v2.OccurredAt))
	})

	t.Run("UnknownKind", func(t *testing.T) {
		serde := newCartEventSerde(t, 1)
		_, err := serde.Encode(schema.CartEventV1{Kind: "checked-out"})
		assert.Error(t, err)
	})
}

func TestSchemaCreater(t *testing.T) {
	t.Run("ReturnsRegistryID", func(t *testing.T) {
		sc := new(MockSchemaCreater)
		sc.On("CreateSchema", t.Context(), "subj", sr.Schema{
			Type:   sr.TypeAvro,
			Schema: schema.CartEventSchemaTextV1,
		}).Return(sr.SubjectSchema{ID: 12}, nil)

		id, err := schema.NewSchemaCreater(sc).DetermineID(
			t.Context(), "subj", schema.CartEventSchemaTextV1,
		)
		require.NoError(t, err)
		assert.Equal(t, 12, id)
	})

	t.Run("Error", func(t *testing.T) {
		sc := new(MockSchemaCreater)
		sc.On("CreateSchema", mock.Anything, mock.Anything, mock.Anything).
			Return(sr.SubjectSchema{}, errors.New("unauthorized"))

		_, err := schema.NewSchemaCreater(sc).DetermineID(
			t.Context(), "subj", schema.CartEventSchemaTextV1,
		)
		assert.Error(t, err)
	})
}
