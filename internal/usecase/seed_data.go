package usecase

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSeedCatalog возвращает базовый каталог витрины. Каждый вызов отдает новую копию.
func DefaultSeedCatalog() *SeedCatalog {
	return &SeedCatalog{
		Products: []domain.Product{
			*domain.NewProduct(1, "Solar Powered Flashlight", "A fantastic product for outdoor enthusiasts", price("19.99"), "product1.png"),
			*domain.NewProduct(2, "Hiking Poles", "Ideal for camping and hiking trips", price("24.99"), "product2.png"),
			*domain.NewProduct(3, "Outdoor Rain Jacket", "This product will keep you warm and dry in all weathers", price("49.99"), "product3.png"),
			*domain.NewProduct(4, "Survival Kit", "A must-have for any outdoor adventurer", price("99.99"), "product4.png"),
			*domain.NewProduct(5, "Outdoor Backpack", "This backpack is perfect for carrying all your outdoor essentials", price("39.99"), "product5.png"),
			*domain.NewProduct(6, "Camping Cookware", "This cookware set is ideal for cooking outdoors", price("29.99"), "product6.png"),
			*domain.NewProduct(7, "Camping Stove", "This stove is perfect for cooking outdoors", price("49.99"), "product7.png"),
			*domain.NewProduct(8, "Camping Lantern", "This lantern is perfect for lighting up your campsite", price("19.99"), "product8.png"),
			*domain.NewProduct(9, "Camping Tent", "This tent is perfect for camping trips", price("99.99"), "product9.png"),
		},
		Stores: []domain.StoreInfo{
			*domain.NewStoreInfo(1, "Outdoor Store", "Seattle", "WA", "9am - 5pm"),
			*domain.NewStoreInfo(2, "Camping Supplies", "Portland", "OR", "10am - 6pm"),
			*domain.NewStoreInfo(3, "Hiking Gear", "San Francisco", "CA", "11am - 7pm"),
			*domain.NewStoreInfo(4, "Fishing Equipment", "Los Angeles", "CA", "8am - 4pm"),
			*domain.NewStoreInfo(5, "Climbing Gear", "Denver", "CO", "9am - 5pm"),
			*domain.NewStoreInfo(6, "Cycling Supplies", "Austin", "TX", "10am - 6pm"),
			*domain.NewStoreInfo(7, "Winter Sports Gear", "Salt Lake City", "UT", "11am - 7pm"),
			*domain.NewStoreInfo(8, "Water Sports Equipment", "Miami", "FL", "8am - 4pm"),
			*domain.NewStoreInfo(9, "Outdoor Clothing", "New York", "NY", "9am - 5pm"),
		},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
