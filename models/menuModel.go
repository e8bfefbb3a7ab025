package models

const (
	// CustomizationSelect groups are mutually exclusive choices (e.g. meat).
	CustomizationSelect = "select"
	// CustomizationRemove options toggle a default ingredient off.
	CustomizationRemove = "remove"
	// CustomizationAdd options toggle a priced extra on.
	CustomizationAdd = "add"

	// EverythingOptionId is the synthetic remove-group option meaning
	// "include every default ingredient". Selecting it clears all remove
	// selections and vice versa.
	EverythingOptionId = "everything"
)

type CustomizationOption struct {
	Id         string  `json:"id"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
}

type CustomizationGroup struct {
	Id      string                `json:"id"`
	Name    string                `json:"name"`
	Type    string                `json:"type"`
	Options []CustomizationOption `json:"options"`
}

type MenuItem struct {
	Id             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Price          float64              `json:"price"`
	CategoryId     string               `json:"categoryId"`
	Customizations []CustomizationGroup `json:"customizations"`
}

type Category struct {
	Id    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

var meatChoice = CustomizationGroup{
	Id:   "meat",
	Name: "Choice of Meat",
	Type: CustomizationSelect,
	Options: []CustomizationOption{
		{Id: "carnitas", Name: "Carnitas"},
		{Id: "pollo-asado", Name: "Pollo Asado"},
		{Id: "carne-asada", Name: "Carne Asada", PriceDelta: 1.00},
		{Id: "veggie", Name: "Grilled Veggies"},
	},
}

var tacoToppings = CustomizationGroup{
	Id:   "taco-toppings",
	Name: "Toppings",
	Type: CustomizationRemove,
	Options: []CustomizationOption{
		{Id: EverythingOptionId, Name: "Everything"},
		{Id: "no-onion", Name: "No Onion"},
		{Id: "no-cilantro", Name: "No Cilantro"},
		{Id: "no-salsa", Name: "No Salsa Verde"},
	},
}

var extras = CustomizationGroup{
	Id:   "extras",
	Name: "Extras",
	Type: CustomizationAdd,
	Options: []CustomizationOption{
		{Id: "guac", Name: "Guacamole", PriceDelta: 1.50},
		{Id: "queso", Name: "Queso Fresco", PriceDelta: 0.75},
		{Id: "extra-meat", Name: "Extra Meat", PriceDelta: 2.00},
	},
}

// Catalog is the full menu served to the storefront. It is compiled in and
// never mutated at runtime; menu changes ship as deploys.
var Catalog = []Category{
	{
		Id:   "tacos",
		Name: "Tacos",
		Items: []MenuItem{
			{
				Id:             "street-taco",
				Name:           "Street Taco",
				Description:    "Corn tortilla, onion, cilantro, salsa verde.",
				Price:          3.75,
				CategoryId:     "tacos",
				Customizations: []CustomizationGroup{meatChoice, tacoToppings, extras},
			},
			{
				Id:             "baja-fish-taco",
				Name:           "Baja Fish Taco",
				Description:    "Beer-battered cod, cabbage slaw, chipotle crema.",
				Price:          4.50,
				CategoryId:     "tacos",
				Customizations: []CustomizationGroup{tacoToppings, extras},
			},
		},
	},
	{
		Id:   "burritos",
		Name: "Burritos",
		Items: []MenuItem{
			{
				Id:             "mission-burrito",
				Name:           "Mission Burrito",
				Description:    "Flour tortilla, rice, beans, pico, cheese.",
				Price:          9.95,
				CategoryId:     "burritos",
				Customizations: []CustomizationGroup{meatChoice, extras},
			},
		},
	},
	{
		Id:   "sides",
		Name: "Sides & Drinks",
		Items: []MenuItem{
			{Id: "chips-salsa", Name: "Chips & Salsa", Description: "Fresh fried tortilla chips.", Price: 3.25, CategoryId: "sides"},
			{Id: "horchata", Name: "Horchata", Description: "House-made, 16oz.", Price: 3.00, CategoryId: "sides"},
			{Id: "jarritos", Name: "Jarritos", Description: "Assorted flavors.", Price: 2.50, CategoryId: "sides"},
		},
	},
}

// FindMenuItem looks an item up by id across all categories.
func FindMenuItem(id string) (MenuItem, bool) {
	for _, category := range Catalog {
		for _, item := range category.Items {
			if item.Id == id {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}
