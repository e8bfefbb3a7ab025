package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tacodelsol/tacodelsol-api/models"
)

func testItem() models.MenuItem {
	return models.MenuItem{
		Id:    "test-taco",
		Name:  "Test Taco",
		Price: 4.00,
		Customizations: []models.CustomizationGroup{
			{
				Id:   "meat",
				Type: models.CustomizationSelect,
				Options: []models.CustomizationOption{
					{Id: "carnitas"},
					{Id: "carne-asada", PriceDelta: 1.00},
				},
			},
			{
				Id:   "toppings",
				Type: models.CustomizationRemove,
				Options: []models.CustomizationOption{
					{Id: models.EverythingOptionId},
					{Id: "no-onion"},
					{Id: "no-cilantro"},
				},
			},
			{
				Id:   "extras",
				Type: models.CustomizationAdd,
				Options: []models.CustomizationOption{
					{Id: "guac", PriceDelta: 1.50},
				},
			},
		},
	}
}

func TestNormalizeSelections_SelectGroupKeepsLastChoice(t *testing.T) {
	item := testItem()
	selections := NormalizeSelections(item, []Selection{
		{GroupId: "meat", OptionId: "carnitas"},
		{GroupId: "meat", OptionId: "carne-asada"},
	})

	assert.Equal(t, []Selection{{GroupId: "meat", OptionId: "carne-asada"}}, selections)
}

func TestNormalizeSelections_EverythingClearsRemovals(t *testing.T) {
	item := testItem()
	selections := NormalizeSelections(item, []Selection{
		{GroupId: "toppings", OptionId: "no-onion"},
		{GroupId: "toppings", OptionId: "no-cilantro"},
		{GroupId: "toppings", OptionId: models.EverythingOptionId},
	})

	assert.Equal(t, []Selection{{GroupId: "toppings", OptionId: models.EverythingOptionId}}, selections)
}

func TestNormalizeSelections_RemovalClearsEverything(t *testing.T) {
	item := testItem()
	selections := NormalizeSelections(item, []Selection{
		{GroupId: "toppings", OptionId: models.EverythingOptionId},
		{GroupId: "toppings", OptionId: "no-onion"},
	})

	assert.Equal(t, []Selection{{GroupId: "toppings", OptionId: "no-onion"}}, selections)
}

func TestNormalizeSelections_DropsUnknownSelections(t *testing.T) {
	item := testItem()
	selections := NormalizeSelections(item, []Selection{
		{GroupId: "meat", OptionId: "pastrami"},
		{GroupId: "sauces", OptionId: "hot"},
		{GroupId: "extras", OptionId: "guac"},
	})

	assert.Equal(t, []Selection{{GroupId: "extras", OptionId: "guac"}}, selections)
}

func TestLineTotal(t *testing.T) {
	item := testItem()
	tests := []struct {
		name       string
		selections []Selection
		quantity   int
		want       string
	}{
		{"base price only", nil, 1, "4"},
		{"free select choice", []Selection{{GroupId: "meat", OptionId: "carnitas"}}, 1, "4"},
		{"priced select choice", []Selection{{GroupId: "meat", OptionId: "carne-asada"}}, 1, "5"},
		{"add extra", []Selection{{GroupId: "extras", OptionId: "guac"}}, 2, "11"},
		{"removals are free", []Selection{{GroupId: "toppings", OptionId: "no-onion"}}, 3, "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(item, tt.selections, tt.quantity)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"LineTotal = %s, want %s", got, tt.want)
		})
	}
}

func TestTotals_TaxRoundsToCent(t *testing.T) {
	lines := []decimal.Decimal{
		decimal.RequireFromString("4.50"),
		decimal.RequireFromString("9.95"),
	}

	subtotal, tax, total := Totals(lines, 0.0875)

	assert.Equal(t, "14.45", subtotal.StringFixed(2))
	// 14.45 * 0.0875 = 1.264375 -> 1.26
	assert.Equal(t, "1.26", tax.StringFixed(2))
	assert.Equal(t, "15.71", total.StringFixed(2))
}

func TestBasePrepMinutes_Clamped(t *testing.T) {
	tests := []struct {
		queueSize int
		want      int
	}{
		{-5, 10},
		{0, 10},
		{1, 13},
		{5, 25},
		{11, 43},
		{12, 45},
		{100, 45},
	}

	for _, tt := range tests {
		got := BasePrepMinutes(tt.queueSize)
		assert.Equal(t, tt.want, got, "queue size %d", tt.queueSize)
		assert.GreaterOrEqual(t, got, 10)
		assert.LessOrEqual(t, got, 45)
	}
}
