package catalog

import "github.com/shopspring/decimal"

func coffee(id int, name, image string, t Temperature) Product {
	return Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString("10.00"),
		Rating:      5.0,
		Image:       image,
		Temperature: t,
	}
}

var defaultProducts = []Product{
	coffee(1, "Cappuccino", "cappuccino", Hot),
	coffee(2, "Espresso", "espresso", Hot),
	coffee(3, "Americano", "americano", Hot),
	coffee(4, "Latte", "latte", Hot),
	coffee(5, "Macchiato", "macchiato", Hot),
	coffee(6, "Mocha", "mocha", Hot),

	coffee(7, "Iced Cappuccino", "icedcappuccino", Cold),
	coffee(8, "Iced Latte", "icedlatte", Cold),
	coffee(9, "Cold Brew", "coldbrew", Cold),
	coffee(10, "Frappé", "frappuccino", Cold),
	coffee(11, "Iced Americano", "icedamericano", Cold),
	coffee(12, "Iced Mocha", "icedmocha", Cold),
}

var defaultFeatured = []int{1, 4, 9}

var defaultCategories = []Category{
	{ID: 1, Name: "Coffee", Image: "coffee_category", ItemCount: 24},
	{ID: 2, Name: "Tea", Image: "tea_category", ItemCount: 12},
	{ID: 3, Name: "Pastries", Image: "pastry_category", ItemCount: 18},
	{ID: 4, Name: "Sandwiches", Image: "sandwich_category", ItemCount: 8},
}

var defaultOffers = []SpecialOffer{
	{ID: 1, Title: "Buy 2 Get 1 Free", Description: "On all Espresso drinks", Discount: "30% OFF", Image: "espresso_offer"},
	{ID: 2, Title: "Happy Hour", Description: "50% off Cold Brew 3-5 PM", Discount: "50% OFF", Image: "happy_hour"},
	{ID: 3, Title: "Student Discount", Description: "Show your ID for discount", Discount: "20% OFF", Image: "student_offer"},
}

// Default returns the shop's menu. It panics only if the built-in data is broken.
func Default() *Provider {
	p, err := New(defaultProducts, defaultFeatured, defaultCategories, defaultOffers)
	if err != nil {
		panic(err)
	}
	return p
}
