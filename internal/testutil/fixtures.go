package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/mpocar/dealer-finder/pkg/models"
)

// NewDeal returns a Deal with sensible defaults, suitable for test fixtures.
// Override individual fields through options or after creation as needed.
func NewDeal(opts ...func(*models.Deal)) models.Deal {
	d := models.Deal{
		ID:                 uuid.New().String(),
		Title:              "Test Deal",
		Description:        "This is a test deal description",
		OriginalPrice:      100,
		DiscountPrice:      50,
		DiscountPercentage: 50,
		Category:           "Electronics",
		Subcategory:        "Audio",
		Tags:               []string{"test", "audio"},
		Location: models.Location{
			Lat:     37.7749,
			Lng:     -122.4194,
			Address: "123 Test St",
			City:    "San Francisco",
			State:   "CA",
			ZipCode: "94103",
		},
		MerchantName:      "Test Merchant",
		MerchantRating:    4.5,
		QuantitySold:      500,
		ExpiryDate:        time.Now().UTC().AddDate(0, 3, 0),
		FeaturedDeal:      false,
		ReviewCount:       120,
		AverageRating:     4.0,
		AvailableQuantity: 250,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithID sets the deal ID.
func WithID(id string) func(*models.Deal) {
	return func(d *models.Deal) { d.ID = id }
}

// WithTitle sets the deal title.
func WithTitle(title string) func(*models.Deal) {
	return func(d *models.Deal) { d.Title = title }
}

// WithCategory sets the deal category and subcategory.
func WithCategory(category, subcategory string) func(*models.Deal) {
	return func(d *models.Deal) {
		d.Category = category
		d.Subcategory = subcategory
	}
}

// WithPrice sets the discount price.
func WithPrice(price float64) func(*models.Deal) {
	return func(d *models.Deal) { d.DiscountPrice = price }
}

// WithDiscount sets the discount percentage.
func WithDiscount(pct float64) func(*models.Deal) {
	return func(d *models.Deal) { d.DiscountPercentage = pct }
}

// WithRating sets the average rating.
func WithRating(rating float64) func(*models.Deal) {
	return func(d *models.Deal) { d.AverageRating = rating }
}

// WithQuantitySold sets the sales count.
func WithQuantitySold(n int) func(*models.Deal) {
	return func(d *models.Deal) { d.QuantitySold = n }
}

// WithFeatured marks the deal as featured.
func WithFeatured(featured bool) func(*models.Deal) {
	return func(d *models.Deal) { d.FeaturedDeal = featured }
}

// WithCoordinates sets the deal's latitude and longitude.
func WithCoordinates(lat, lng float64) func(*models.Deal) {
	return func(d *models.Deal) {
		d.Location.Lat = lat
		d.Location.Lng = lng
	}
}

// WithTags sets the deal's tag list.
func WithTags(tags ...string) func(*models.Deal) {
	return func(d *models.Deal) { d.Tags = tags }
}

// WithMerchant sets the merchant name.
func WithMerchant(name string) func(*models.Deal) {
	return func(d *models.Deal) { d.MerchantName = name }
}
