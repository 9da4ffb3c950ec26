// Package admin serves the staff changelists of the storefront.
//
// Each entity has a static EntityConfig describing its list screen. The
// changelist endpoints project the regular list results onto the configured
// columns, so the admin never sees fields the config does not name.
package admin

import (
	"sort"

	"github.com/storefront/backend/internal/domain/shared"
)

// Entity names accepted under /admin/{entity}
const (
	EntityProducts    = "products"
	EntityCollections = "collections"
	EntityCustomers   = "customers"
	EntityOrders      = "orders"
)

// ActionClearInventory is the bulk action that zeroes product inventory
const ActionClearInventory = "clear_inventory"

// Filter is a list filter offered in the sidebar
type Filter struct {
	Field   string         `json:"field"`
	Title   string         `json:"title"`
	Choices []FilterChoice `json:"choices,omitempty"`
}

// FilterChoice is one option of a Filter
type FilterChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EntityConfig describes the changelist of one entity
type EntityConfig struct {
	Entity        string            `json:"entity"`
	ListDisplay   []string          `json:"list_display"`
	ListEditable  []string          `json:"list_editable,omitempty"`
	ListFilter    []Filter          `json:"list_filter,omitempty"`
	SearchFields  []string          `json:"search_fields,omitempty"`
	Ordering      []string          `json:"ordering"`
	ListPerPage   int               `json:"list_per_page"`
	Actions       []string          `json:"actions,omitempty"`
	Autocomplete  []string          `json:"autocomplete_fields,omitempty"`
	Prepopulated  map[string]string `json:"prepopulated_fields,omitempty"`
	ReadonlyField []string          `json:"readonly_fields,omitempty"`
	Inlines       []string          `json:"inlines,omitempty"`
}

var entityConfigs = map[string]EntityConfig{
	EntityProducts: {
		Entity:       EntityProducts,
		ListDisplay:  []string{"title", "unit_price", "inventory_status", "collection_title"},
		ListEditable: []string{"unit_price"},
		ListFilter: []Filter{
			{Field: "collection_id", Title: "collection"},
			{Field: "updated_since", Title: "last update"},
			{Field: "low_inventory", Title: "inventory", Choices: []FilterChoice{{Value: "true", Label: "Low"}}},
		},
		SearchFields: []string{"title"},
		Ordering:     []string{"title"},
		ListPerPage:  10,
		Actions:      []string{ActionClearInventory},
		Autocomplete: []string{"collection"},
		Prepopulated: map[string]string{"slug": "title"},
	},
	EntityCollections: {
		Entity:       EntityCollections,
		ListDisplay:  []string{"title", "products_count"},
		SearchFields: []string{"title"},
		Ordering:     []string{"title"},
		ListPerPage:  10,
		Autocomplete: []string{"featured_product"},
	},
	EntityCustomers: {
		Entity:       EntityCustomers,
		ListDisplay:  []string{"first_name", "last_name", "membership", "orders_count"},
		ListEditable: []string{"membership"},
		ListFilter: []Filter{
			{Field: "membership", Title: "membership", Choices: []FilterChoice{
				{Value: "B", Label: "Bronze"},
				{Value: "S", Label: "Silver"},
				{Value: "G", Label: "Gold"},
			}},
		},
		SearchFields: []string{"first_name__istartswith", "last_name__istartswith"},
		Ordering:     []string{"first_name", "last_name"},
		ListPerPage:  10,
	},
	EntityOrders: {
		Entity:        EntityOrders,
		ListDisplay:   []string{"id", "placed_at", "customer"},
		Ordering:      []string{"-placed_at"},
		ListPerPage:   10,
		Autocomplete:  []string{"customer"},
		ReadonlyField: []string{"placed_at"},
		Inlines:       []string{"items"},
	},
}

// ConfigFor returns the changelist config of entity
func ConfigFor(entity string) (EntityConfig, error) {
	cfg, ok := entityConfigs[entity]
	if !ok {
		return EntityConfig{}, shared.NewDomainError(shared.CodeNotFound, "Unknown admin entity: "+entity)
	}
	return cfg, nil
}

// Entities lists the registered entity names in order
func Entities() []string {
	names := make([]string, 0, len(entityConfigs))
	for name := range entityConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
