package enum

// Category is a sales category used for per-location financial aggregation.
// The set of categories that applies to a given restaurant is configured per
// location; Other collects anything without a recognized sales-category GUID.
type Category string

const (
	CategoryFood        Category = "Food"
	CategoryNABeverage  Category = "NA Beverage"
	CategoryLiquor      Category = "Liquor"
	CategoryDraftBeer   Category = "Draft Beer"
	CategoryBottledBeer Category = "Bottled Beer"
	CategoryWine        Category = "Wine"
	CategoryMarket      Category = "Market"
	CategoryBeerBottle  Category = "Beer Bottle"
	CategoryBeerKeg     Category = "Beer Keg"
	CategoryWineBottle  Category = "Wine Bottle"
	CategoryWineKeg     Category = "Wine Keg"
	CategoryCorkageFee  Category = "Corkage Fee"
	CategoryOther       Category = "Other"
)

func (c Category) String() string {
	return string(c)
}
