package repos

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lumistore/backoffice/internal/types"
)

// SeedProducts builds the deterministic demo catalog. Ids run product-1 ..
// product-30 so the demo pages can reference them.
func SeedProducts() []types.Product {
	categories := []string{"Electronics", "Apparel", "Home", "Beauty", "Sports", "Books", "Food", "Toys"}
	brands := []string{"Apple", "Samsung", "Nike", "Adidas", "Uniqlo", "MUJI", "SK-II", "Canon"}
	statuses := []types.ProductStatus{
		types.ProductStatusActive,
		types.ProductStatusActive,
		types.ProductStatusActive,
		types.ProductStatusInactive,
		types.ProductStatusOutOfStock,
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]types.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		category := categories[i%len(categories)]
		brand := brands[i%len(brands)]
		originalPrice := float64(1000 + i*750)
		discount := 0
		if i%2 == 0 {
			discount = 5 + i%45
		}
		price := originalPrice
		if discount > 0 {
			price = originalPrice * float64(100-discount) / 100
		}
		product := types.Product{
			ID:          fmt.Sprintf("product-%d", i),
			Title:       fmt.Sprintf("%s %s Item %d", brand, category, i),
			Description: fmt.Sprintf("High quality %s product from %s.", category, brand),
			Price:       price,
			Images: []string{
				fmt.Sprintf("https://picsum.photos/400/300?random=%d", i),
				fmt.Sprintf("https://picsum.photos/400/300?random=%d", i+100),
			},
			Category:    category,
			Tags:        []string{category, brand, "featured"},
			Stock:       10 + i*3,
			Status:      statuses[i%len(statuses)],
			Brand:       brand,
			Rating:      3.0 + float64(i%21)/10,
			ReviewCount: 10 + i*7,
			CreatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
			UpdatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if discount > 0 {
			product.OriginalPrice = originalPrice
			product.Discount = discount
		}
		products = append(products, product)
	}
	return products
}

// SeedPages builds the demo marketing pages: one of each status plus a second
// published page, exercising every block variant.
func SeedPages() []types.Page {
	date := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return []types.Page{
		{
			ID:          "marketing-1",
			Title:       "Homepage Campaign",
			Description: "Banner, product recommendations and a flash sale",
			Status:      types.PageStatusPublished,
			StartDate:   ptr(date(2024, 1, 15, 0)),
			EndDate:     ptr(date(2024, 2, 15, 0)),
			IsFlashSale: true,
			Blocks: []types.Block{
				{
					ID:    "block-1",
					Type:  types.BlockTypeBanner,
					Title: "Hero Banner",
					Content: types.BannerContent{
						Image: "https://picsum.photos/1200/400?random=1",
						Link:  "/products",
						Alt:   "Spring specials",
					},
					Position:  1,
					IsVisible: true,
				},
				{
					ID:    "block-2",
					Type:  types.BlockTypeProductRecommendation,
					Title: "Best Sellers",
					Content: types.ProductRecommendationContent{
						Products:     []string{"product-1", "product-2", "product-3", "product-4"},
						DisplayCount: 4,
					},
					Position:  2,
					IsVisible: true,
				},
				{
					ID:    "block-3",
					Type:  types.BlockTypeFlashSale,
					Title: "Limited-Time Deals",
					Content: types.FlashSaleContent{
						Products:  []string{"product-5", "product-6"},
						StartTime: date(2024, 1, 15, 10),
						EndTime:   date(2024, 1, 15, 22),
					},
					Position:  3,
					IsVisible: true,
				},
			},
			CreatedAt: date(2024, 1, 15, 0),
			UpdatedAt: date(2024, 1, 20, 0),
		},
		{
			ID:          "marketing-2",
			Title:       "Spring Specials",
			Description: "Seasonal discounts across the catalog",
			Status:      types.PageStatusPublished,
			StartDate:   ptr(date(2024, 2, 1, 0)),
			EndDate:     ptr(date(2024, 3, 31, 0)),
			Blocks: []types.Block{
				{
					ID:    "block-4",
					Type:  types.BlockTypeBanner,
					Title: "Spring Banner",
					Content: types.BannerContent{
						Image: "https://picsum.photos/1200/400?random=2",
						Link:  "/spring-sale",
						Alt:   "Spring specials",
					},
					Position:  1,
					IsVisible: true,
				},
				{
					ID:    "block-5",
					Type:  types.BlockTypeHTML,
					Title: "Campaign Details",
					Content: types.HTMLContent{
						HTML: "<h2>Spring Specials</h2><p>Up to 20% off storewide. Free shipping over $2,000.</p>",
					},
					Position:  2,
					IsVisible: true,
				},
				{
					ID:    "block-6",
					Type:  types.BlockTypeProductRecommendation,
					Title: "Spring Picks",
					Content: types.ProductRecommendationContent{
						Products:     []string{"product-7", "product-8", "product-9", "product-10"},
						DisplayCount: 4,
					},
					Position:  3,
					IsVisible: true,
				},
			},
			CreatedAt: date(2024, 1, 18, 0),
			UpdatedAt: date(2024, 1, 22, 0),
		},
		{
			ID:          "marketing-3",
			Title:       "New Customer Corner",
			Description: "Signup perks and recommended starters",
			Status:      types.PageStatusArchived,
			StartDate:   ptr(date(2024, 1, 1, 0)),
			EndDate:     ptr(date(2024, 1, 31, 0)),
			Blocks: []types.Block{
				{
					ID:    "block-7",
					Type:  types.BlockTypeBanner,
					Title: "Welcome Banner",
					Content: types.BannerContent{
						Image: "https://picsum.photos/1200/400?random=3",
						Link:  "/register",
						Alt:   "New customer corner",
					},
					Position:  1,
					IsVisible: true,
				},
				{
					ID:    "block-8",
					Type:  types.BlockTypeProductRecommendation,
					Title: "Starter Picks",
					Content: types.ProductRecommendationContent{
						Products:     []string{"product-11", "product-12", "product-13"},
						DisplayCount: 3,
					},
					Position:  2,
					IsVisible: true,
				},
			},
			CreatedAt: date(2024, 1, 10, 0),
			UpdatedAt: date(2024, 1, 25, 0),
		},
		{
			ID:          "marketing-4",
			Title:       "Weekend Sale",
			Description: "Weekend-only flash deals",
			Status:      types.PageStatusDraft,
			StartDate:   ptr(date(2024, 1, 27, 0)),
			EndDate:     ptr(date(2024, 1, 28, 0)),
			IsFlashSale: true,
			Blocks: []types.Block{
				{
					ID:    "block-9",
					Type:  types.BlockTypeBanner,
					Title: "Weekend Banner",
					Content: types.BannerContent{
						Image: "https://picsum.photos/1200/400?random=4",
						Link:  "/weekend-sale",
						Alt:   "Weekend sale",
					},
					Position:  1,
					IsVisible: true,
				},
				{
					ID:    "block-10",
					Type:  types.BlockTypeFlashSale,
					Title: "Weekend Flash Deals",
					Content: types.FlashSaleContent{
						Products:  []string{"product-14", "product-15", "product-16"},
						StartTime: date(2024, 1, 27, 9),
						EndTime:   date(2024, 1, 28, 23),
					},
					Position:  2,
					IsVisible: true,
				},
			},
			CreatedAt: date(2024, 1, 25, 0),
			UpdatedAt: date(2024, 1, 26, 0),
		},
	}
}

// SeedDatabase loads the demo data into an empty store database. A store
// that already has pages is left alone.
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&PageRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, page := range SeedPages() {
		row, err := rowFromPage(page)
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	for _, product := range SeedProducts() {
		row, err := rowFromProduct(product)
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
