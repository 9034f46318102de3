package seeders

import (
	"context"

	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/app/services"
)

// SeedAuthor is recorded as createdBy on starter services.
const SeedAuthor = "seed@decorhub.local"

func init() {
	Register("catalog", SeedCatalog)
}

var starterServices = []services.ServiceInput{
	{ServiceName: "Wedding Stage Decoration", Cost: 1500, Unit: "per event", Category: "Wedding",
		Description: "Floral stage backdrop with lighting and seating for the couple."},
	{ServiceName: "Birthday Balloon Setup", Cost: 250, Unit: "per room", Category: "Birthday",
		Description: "Balloon arch, banner and table centerpieces."},
	{ServiceName: "Living Room Makeover", Cost: 60, Unit: "per sq-ft", Category: "Home",
		Description: "Curtains, cushions and accent lighting for an existing room."},
	{ServiceName: "Corporate Event Styling", Cost: 900, Unit: "per event", Category: "Office",
		Description: "Branded backdrop, reception desk styling and entrance florals."},
	{ServiceName: "Seminar Hall Setup", Cost: 700, Unit: "per event", Category: "Seminar",
		Description: "Podium, stage skirting and audience seating arrangement."},
}

// SeedCatalog inserts the starter services when the catalog is empty.
func SeedCatalog(ctx context.Context, store repositories.Store) (int, error) {
	existing, err := store.Services.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	catalog := services.NewCatalogService(store.Services, nil)
	for i, in := range starterServices {
		if _, err := catalog.Create(ctx, SeedAuthor, in); err != nil {
			return i, err
		}
	}
	return len(starterServices), nil
}
