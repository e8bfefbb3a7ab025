// Package pricing holds the money math for carts and orders. All arithmetic
// is done in decimal and only converted to float at the storage boundary.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tacodelsol/tacodelsol-api/models"
)

// Selection is one chosen customization option on a cart line.
type Selection struct {
	GroupId  string `json:"groupId"`
	OptionId string `json:"optionId"`
}

// NormalizeSelections applies the cart rules to a raw selection list:
// a "select" group keeps only the last choice made, and the synthetic
// "everything" option is exclusive with every other remove selection.
// Selections that do not exist on the item are dropped.
func NormalizeSelections(item models.MenuItem, selections []Selection) []Selection {
	groups := make(map[string]models.CustomizationGroup, len(item.Customizations))
	for _, g := range item.Customizations {
		groups[g.Id] = g
	}

	normalized := make([]Selection, 0, len(selections))

	for _, sel := range selections {
		group, ok := groups[sel.GroupId]
		if !ok || findOption(group, sel.OptionId) == nil {
			continue
		}

		switch group.Type {
		case models.CustomizationSelect:
			normalized = dropGroup(normalized, group.Id)
			normalized = append(normalized, sel)
		case models.CustomizationRemove:
			if sel.OptionId == models.EverythingOptionId {
				normalized = dropRemovals(normalized, groups)
			} else {
				normalized = dropEverything(normalized, group.Id)
			}
			normalized = append(normalized, sel)
		default:
			normalized = append(normalized, sel)
		}
	}

	return normalized
}

func dropGroup(selections []Selection, groupId string) []Selection {
	kept := selections[:0]
	for _, sel := range selections {
		if sel.GroupId == groupId {
			continue
		}
		kept = append(kept, sel)
	}
	return kept
}

func dropRemovals(selections []Selection, groups map[string]models.CustomizationGroup) []Selection {
	kept := selections[:0]
	for _, sel := range selections {
		if g, ok := groups[sel.GroupId]; ok && g.Type == models.CustomizationRemove {
			continue
		}
		kept = append(kept, sel)
	}
	return kept
}

func dropEverything(selections []Selection, groupId string) []Selection {
	kept := selections[:0]
	for _, sel := range selections {
		if sel.GroupId == groupId && sel.OptionId == models.EverythingOptionId {
			continue
		}
		kept = append(kept, sel)
	}
	return kept
}

func findOption(group models.CustomizationGroup, optionId string) *models.CustomizationOption {
	for i := range group.Options {
		if group.Options[i].Id == optionId {
			return &group.Options[i]
		}
	}
	return nil
}

// LineTotal computes (base price + selected deltas) x quantity.
func LineTotal(item models.MenuItem, selections []Selection, quantity int) decimal.Decimal {
	unit := decimal.NewFromFloat(item.Price)
	for _, sel := range selections {
		for _, group := range item.Customizations {
			if group.Id != sel.GroupId {
				continue
			}
			if opt := findOption(group, sel.OptionId); opt != nil {
				unit = unit.Add(decimal.NewFromFloat(opt.PriceDelta))
			}
		}
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Totals derives subtotal, tax and total from line totals and a tax rate.
// Tax is rounded to the cent, half up.
func Totals(lineTotals []decimal.Decimal, taxRate float64) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, line := range lineTotals {
		subtotal = subtotal.Add(line)
	}
	tax = subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

const (
	minPrepMinutes      = 10
	maxPrepMinutes      = 45
	perOrderPrepMinutes = 3
)

// BasePrepMinutes estimates prep time from the number of orders currently in
// the kitchen queue, clamped to [10, 45] minutes. The admin-configured buffer
// is added on top of the clamped value.
func BasePrepMinutes(queueSize int) int {
	minutes := minPrepMinutes + perOrderPrepMinutes*queueSize
	if minutes < minPrepMinutes {
		minutes = minPrepMinutes
	}
	if minutes > maxPrepMinutes {
		minutes = maxPrepMinutes
	}
	return minutes
}
