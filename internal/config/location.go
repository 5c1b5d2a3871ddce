package config

import (
	"fmt"
	"strings"

	"github.com/fynchlabs/toast-insights/internal/domain/enum"
)

// ServerJobGUID is the universal "Server" position; servers participate in
// tip pooling at every location.
const ServerJobGUID = "9d5d64b3-8d59-4aae-b340-02dd970b54dd"

// Additional tip-pool-eligible positions, configured per location below.
const (
	cashierJobGUID = "6c0920e7-c285-4fbd-b7df-5cb910737ff1"
	expoJobGUID    = "6339f37d-0039-433f-aee7-6ee33d2cd40a"
)

// defaultGiftCardNames excludes stored-value products from all financial
// aggregation by display-name match. Overridable per location.
var defaultGiftCardNames = []string{"Gift Card", "eGift Card", "Add Value ($)"}

// LocationConfig is the immutable per-restaurant configuration, constructed
// once per invocation and passed by parameter through every component.
type LocationConfig struct {
	Index          int
	Name           string
	RestaurantGUID string

	// categories maps upstream sales-category GUIDs to display categories.
	categories map[string]enum.Category
	// categoryKeys is the full key set reported for this location, in
	// display order, always ending with Corkage Fee and Other.
	categoryKeys []enum.Category
	// eligiblePositions lists job GUIDs beyond the universal Server job
	// that share in tip pooling at this location.
	eligiblePositions map[string]bool
	// apiSourceFoodFallback re-categorizes unmapped API-channel items as
	// Food, compensating for missing sales-category metadata upstream.
	apiSourceFoodFallback bool
	giftCardNames         map[string]bool
	// ClockUTCOffsetHours shifts clock-in/out display times from UTC.
	ClockUTCOffsetHours int
}

// Location returns the configuration for a location index (1-5).
func Location(index int) (LocationConfig, error) {
	loc, ok := locations[index]
	if !ok {
		return LocationConfig{}, fmt.Errorf("invalid location index: %d, must be between 1 and 5", index)
	}
	return loc, nil
}

// CategoryFor resolves a selection to its display category. Items named
// "Corkage Fee" always map to Corkage Fee regardless of their
// sales-category GUID; unmapped GUIDs fall back to Other, except for
// API-channel orders at locations with the food fallback enabled.
// Display names are compared with surrounding whitespace stripped.
func (lc LocationConfig) CategoryFor(salesCategoryGUID, displayName string, source enum.OrderSource) enum.Category {
	if strings.TrimSpace(displayName) == "Corkage Fee" {
		return enum.CategoryCorkageFee
	}
	if cat, ok := lc.categories[salesCategoryGUID]; ok {
		return cat
	}
	if lc.apiSourceFoodFallback && source == enum.OrderSourceAPI {
		return enum.CategoryFood
	}
	return enum.CategoryOther
}

// CategoryKeys returns the location's full category key set.
func (lc LocationConfig) CategoryKeys() []enum.Category {
	keys := make([]enum.Category, len(lc.categoryKeys))
	copy(keys, lc.categoryKeys)
	return keys
}

// TipPoolEligible reports whether a position shares in aggregated tip and
// sales reporting at this location.
func (lc LocationConfig) TipPoolEligible(positionGUID string) bool {
	if positionGUID == ServerJobGUID {
		return true
	}
	return lc.eligiblePositions[positionGUID]
}

// IsGiftCard reports whether a selection display name is a stored-value
// product excluded from all financial aggregation. Upstream names sometimes
// carry stray whitespace, so the match strips it first.
func (lc LocationConfig) IsGiftCard(displayName string) bool {
	return lc.giftCardNames[strings.TrimSpace(displayName)]
}

func giftCardSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

var locations = map[int]LocationConfig{
	1: {
		Index:          1,
		Name:           "Elena's - West Portal",
		RestaurantGUID: "8a3b1856-f4ed-4f13-8f64-6349fbffe1f1",
		categories: map[string]enum.Category{
			"bcd1b36a-8ff1-48cf-9190-084cc0c78776": enum.CategoryFood,
			"ad216e1f-aae1-4c7e-a664-7bd1497bea2f": enum.CategoryNABeverage,
			"59c5ad7d-a3c2-48a9-bc4a-b7a1217f6592": enum.CategoryLiquor,
			"b931698b-5fd1-44a1-9b51-8e013202cc8e": enum.CategoryDraftBeer,
			"1d06f0a0-6643-4942-aace-9de852bcd5a2": enum.CategoryBottledBeer,
			"3276434c-d165-4c43-90f8-9a3032dcf5a7": enum.CategoryWine,
		},
		categoryKeys: []enum.Category{
			enum.CategoryFood, enum.CategoryNABeverage, enum.CategoryLiquor,
			enum.CategoryDraftBeer, enum.CategoryBottledBeer, enum.CategoryWine,
			enum.CategoryCorkageFee, enum.CategoryOther,
		},
		giftCardNames:       giftCardSet(defaultGiftCardNames),
		ClockUTCOffsetHours: -7,
	},
	2: {
		Index:          2,
		Name:           "Little Original Joe's - West Portal",
		RestaurantGUID: "424bca99-0858-4c55-9fe6-ba3936f2fe1b",
		categories: map[string]enum.Category{
			"32a8246e-febc-46fd-aead-ea4f3e88d258": enum.CategoryFood,
			"739c715d-3c4f-4230-ae68-0abac14fa9d4": enum.CategoryMarket,
			"89911839-70f0-43fc-af9d-582fbf906ddb": enum.CategoryWineBottle,
		},
		categoryKeys: []enum.Category{
			enum.CategoryFood, enum.CategoryMarket, enum.CategoryNABeverage,
			enum.CategoryLiquor, enum.CategoryBeerBottle, enum.CategoryBeerKeg,
			enum.CategoryWineBottle, enum.CategoryWineKeg,
			enum.CategoryCorkageFee, enum.CategoryOther,
		},
		// Counter-service location: cashiers and expo share the tip pool.
		eligiblePositions: map[string]bool{
			cashierJobGUID: true,
			expoJobGUID:    true,
		},
		giftCardNames:       giftCardSet(defaultGiftCardNames),
		ClockUTCOffsetHours: -7,
	},
	3: {
		Index:          3,
		Name:           "Little Original Joe's - Marina",
		RestaurantGUID: "09017aed-dc03-494c-a1b1-cbb0b71a0141",
		categories: map[string]enum.Category{
			"53269235-c054-45f6-9f63-ece5dac6a174": enum.CategoryFood,
			"adba1578-989b-4f8c-b300-6f516bbf0065": enum.CategoryNABeverage,
			"1f58d463-1610-4032-8b05-003e2d9fb828": enum.CategoryLiquor,
			"1d9b2997-0a7c-41ae-b995-c19823c584f6": enum.CategoryBeerBottle,
			"e67839f8-4e28-4d42-9e9c-34b40787fb6b": enum.CategoryBeerKeg,
			"681460a5-608f-42b5-bdbb-f6a9263d92f2": enum.CategoryWineBottle,
			"57f0e230-b508-4406-ba2d-0210a60aabc4": enum.CategoryWineKeg,
		},
		categoryKeys: []enum.Category{
			enum.CategoryFood, enum.CategoryNABeverage, enum.CategoryLiquor,
			enum.CategoryBeerBottle, enum.CategoryBeerKeg,
			enum.CategoryWineBottle, enum.CategoryWineKeg,
			enum.CategoryCorkageFee, enum.CategoryOther,
		},
		giftCardNames:       giftCardSet(defaultGiftCardNames),
		ClockUTCOffsetHours: -7,
	},
	4: {
		Index:          4,
		Name:           "Original Joe's - North Beach",
		RestaurantGUID: "2058e275-2eff-4cf0-8eeb-12001129d782",
		categories: map[string]enum.Category{
			"758a34df-b27f-419a-81b8-2c56a663f15b": enum.CategoryFood,
			"64a6a7fb-f3ce-4f2f-936d-39118bda785f": enum.CategoryNABeverage,
			"dc3bad48-66ff-4183-9cd3-7a3552ab5973": enum.CategoryLiquor,
			"ef6790cb-64f3-4887-84b2-fd348dac46a9": enum.CategoryBeerBottle,
			"fcd1cbdc-361f-4f66-93f2-53467adfd134": enum.CategoryBeerKeg,
			"d0ea6c37-bf62-415a-a40d-6a4a824bb661": enum.CategoryWineBottle,
			"3e611002-7c96-4b20-a228-a05efc70c2c3": enum.CategoryWineKeg,
		},
		categoryKeys: []enum.Category{
			enum.CategoryFood, enum.CategoryNABeverage, enum.CategoryLiquor,
			enum.CategoryBeerBottle, enum.CategoryBeerKeg,
			enum.CategoryWineBottle, enum.CategoryWineKeg,
			enum.CategoryCorkageFee, enum.CategoryOther,
		},
		// Partner-API orders at this location arrive without sales-category
		// metadata; unmapped API items are reported as Food.
		apiSourceFoodFallback: true,
		giftCardNames:         giftCardSet(defaultGiftCardNames),
		ClockUTCOffsetHours:   -7,
	},
	5: {
		Index:          5,
		Name:           "Original Joe's - Westlake",
		RestaurantGUID: "2437b9ff-00d5-4cec-b629-704f72e5f5ae",
		categories: map[string]enum.Category{
			"87cad208-2fe9-4099-ba3d-da367a951b05": enum.CategoryFood,
			"6a7eb3d6-27d0-44d2-883b-c2615ac13f1a": enum.CategoryNABeverage,
			"5b57fb6c-89fb-404f-8358-357cc51c62bd": enum.CategoryLiquor,
			"30a4bc57-ad0c-466a-887d-5ea0387c1efc": enum.CategoryBeerBottle,
			"e4566b76-1f88-4e8c-a90d-2f8a00543f04": enum.CategoryBeerKeg,
			"d647c1b5-e55d-4b3e-b1b0-c2272fbc75ee": enum.CategoryWineBottle,
			"30812d57-5b44-48a0-8150-498d6287d5d3": enum.CategoryWineKeg,
		},
		categoryKeys: []enum.Category{
			enum.CategoryFood, enum.CategoryNABeverage, enum.CategoryLiquor,
			enum.CategoryBeerBottle, enum.CategoryBeerKeg,
			enum.CategoryWineBottle, enum.CategoryWineKeg,
			enum.CategoryCorkageFee, enum.CategoryOther,
		},
		giftCardNames:       giftCardSet(defaultGiftCardNames),
		ClockUTCOffsetHours: -7,
	},
}
