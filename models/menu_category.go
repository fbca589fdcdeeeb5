package models

type MenuCategory string

const (
	CategoryStarter    MenuCategory = "STARTER"
	CategoryMainCourse MenuCategory = "MAIN COURSE"
	CategoryDessert    MenuCategory = "DESSERT"
	CategoryBeverage   MenuCategory = "BEVERAGE"
)

type Availability string

const (
	MenuItemAvailable  Availability = "AVAILABLE"
	MenuItemOutOfStock Availability = "OUT OF STOCK"
)
