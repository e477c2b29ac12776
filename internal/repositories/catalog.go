package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
)

// SeedCatalog returns the storefront's reference catalog. IDs are fixed so
// that carts survive a restart of the memory driver behind a sticky client.
func SeedCatalog() []models.Product {
	now := time.Now()

	return []models.Product{
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0001"),
			Name:        "Paracetamol",
			Description: "Pain reliever and fever reducer",
			Price:       8.99,
			ImageURL:    "https://cdn.pixabay.com/photo/2016/12/05/19/49/pill-1884775_1280.jpg",
			Rating:      4.5,
			Category:    "Pain Relief",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0002"),
			Name:        "Vitamin C",
			Description: "Immune system support supplement",
			Price:       12.49,
			ImageURL:    "https://cdn.pixabay.com/photo/2017/06/19/15/40/strawberry-2419023_1280.jpg",
			Rating:      4.8,
			Category:    "Vitamins",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0003"),
			Name:        "Ibuprofen",
			Description: "Anti-inflammatory and pain relief",
			Price:       7.99,
			ImageURL:    "https://cdn.pixabay.com/photo/2016/12/08/15/59/pill-1892168_1280.jpg",
			Rating:      4.2,
			Category:    "Pain Relief",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0004"),
			Name:        "First Aid Kit",
			Description: "Essential medical supplies for emergencies",
			Price:       24.99,
			ImageURL:    "https://cdn.pixabay.com/photo/2014/12/10/21/01/first-aid-kit-563170_1280.jpg",
			Rating:      4.9,
			Category:    "First Aid",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0005"),
			Name:        "Multivitamin",
			Description: "Daily essential vitamins and minerals",
			Price:       15.49,
			ImageURL:    "https://cdn.pixabay.com/photo/2018/07/30/09/38/pharmacy-3572037_1280.jpg",
			Rating:      4.7,
			Category:    "Vitamins",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("6f1f9a02-0c1b-4a46-9f3e-6a4d5f1f0006"),
			Name:        "Hand Sanitizer",
			Description: "Kills 99.9% of germs without water",
			Price:       4.99,
			ImageURL:    "https://cdn.pixabay.com/photo/2020/04/28/05/06/disinfection-5102086_1280.jpg",
			Rating:      4.6,
			Category:    "Personal Care",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
