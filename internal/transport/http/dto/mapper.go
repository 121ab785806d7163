package dto

import "github.com/baechuer/cityevents/services/nearby-service/internal/domain"

func ToItemResp(it *domain.Item, favorite bool) ItemResp {
	return ItemResp{
		ItemID:     it.ID,
		Name:       it.Name,
		Rating:     it.Rating,
		Address:    it.Address,
		Categories: it.Categories.Sorted(),
		ImageURL:   it.ImageURL,
		URL:        it.URL,
		Distance:   it.Distance,
		Favorite:   favorite,
	}
}

// ToItemResps maps items in order; isFavorite may be nil.
func ToItemResps(items []*domain.Item, isFavorite func(id string) bool) []ItemResp {
	out := make([]ItemResp, 0, len(items))
	for _, it := range items {
		fav := isFavorite != nil && isFavorite(it.ID)
		out = append(out, ToItemResp(it, fav))
	}
	return out
}
