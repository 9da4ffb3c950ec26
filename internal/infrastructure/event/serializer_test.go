package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSerializer_ProductDeletedCarriesImageKeys(t *testing.T) {
	s := NewEventSerializer()
	RegisterAllEvents(s)

	p := &catalog.Product{Title: "Bread", CollectionID: uuid.New()}
	p.ID = uuid.New()
	ev := catalog.NewProductDeletedEvent(p, []string{"products/a.png", "products/b.png"})

	data, err := s.Serialize(ev)
	require.NoError(t, err)

	got, err := s.Deserialize(catalog.EventTypeProductDeleted, data)
	require.NoError(t, err)

	deleted, ok := got.(*catalog.ProductDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, ev.EventID(), deleted.EventID())
	assert.Equal(t, p.ID, deleted.AggregateID())
	assert.Equal(t, catalog.AggregateTypeProduct, deleted.AggregateType())
	assert.Equal(t, []string{"products/a.png", "products/b.png"}, deleted.ImageKeys)
}

func TestEventSerializer_OrderPlacedKeepsDecimalPrecision(t *testing.T) {
	s := NewEventSerializer()
	RegisterAllEvents(s)

	ev := &ordering.OrderPlacedEvent{
		OrderID: uuid.New(),
		Items:   []ordering.OrderPlacedItem{{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}},
		Total:   decimal.RequireFromString("59.97"),
	}
	ev.Type = ordering.EventTypeOrderPlaced

	data, err := s.Serialize(ev)
	require.NoError(t, err)
	got, err := s.Deserialize(ordering.EventTypeOrderPlaced, data)
	require.NoError(t, err)

	placed := got.(*ordering.OrderPlacedEvent)
	assert.True(t, placed.Total.Equal(decimal.RequireFromString("59.97")))
	assert.Equal(t, 3, placed.Items[0].Quantity)
}

func TestEventSerializer_UnknownType(t *testing.T) {
	s := NewEventSerializer()

	_, err := s.Deserialize("Nope", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestEventSerializer_MalformedPayload(t *testing.T) {
	s := NewEventSerializer()
	s.Register("TestEvent", &testEvent{})

	_, err := s.Deserialize("TestEvent", []byte(`{not json`))
	assert.Error(t, err)
}

func TestRegisterAllEvents(t *testing.T) {
	s := NewEventSerializer()
	RegisterAllEvents(s)

	assert.Equal(t, []string{
		catalog.EventTypeCollectionCreated,
		catalog.EventTypeCollectionDeleted,
		catalog.EventTypeInventoryCleared,
		ordering.EventTypeOrderPlaced,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductDeleted,
		catalog.EventTypeProductUpdated,
	}, s.RegisteredTypes())
}
