// Package models defines the shared data types for the dealer-finder service.
package models

import "time"

// Location is a geographic point with its postal address fields.
type Location struct {
	Lat     float64 `json:"lat" yaml:"lat"`
	Lng     float64 `json:"lng" yaml:"lng"`
	Address string  `json:"address,omitempty" yaml:"address,omitempty"`
	City    string  `json:"city" yaml:"city"`
	State   string  `json:"state" yaml:"state"`
	ZipCode string  `json:"zipCode" yaml:"zip_code"`
}

// Deal is a single catalog entry. Deals are immutable once loaded; filtering
// and sorting always produce new slices and never touch the catalog itself.
//
// JSON tags follow the public API wire shape (camelCase); YAML tags follow the
// embedded catalog file.
type Deal struct {
	ID                  string     `json:"id" yaml:"id"`
	Title               string     `json:"title" yaml:"title"`
	Description         string     `json:"description" yaml:"description"`
	OriginalPrice       float64    `json:"originalPrice" yaml:"original_price"`
	DiscountPrice       float64    `json:"discountPrice" yaml:"discount_price"`
	DiscountPercentage  float64    `json:"discountPercentage" yaml:"discount_percentage"`
	Category            string     `json:"category" yaml:"category"`
	Subcategory         string     `json:"subcategory" yaml:"subcategory"`
	Tags                []string   `json:"tags" yaml:"tags"`
	Location            Location   `json:"location" yaml:"location"`
	MerchantName        string     `json:"merchantName" yaml:"merchant_name"`
	MerchantRating      float64    `json:"merchantRating" yaml:"merchant_rating"`
	QuantitySold        int        `json:"quantitySold" yaml:"quantity_sold"`
	ExpiryDate          time.Time  `json:"expiryDate" yaml:"expiry_date"`
	FeaturedDeal        bool       `json:"featuredDeal" yaml:"featured_deal"`
	ImageURL            string     `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	RedemptionLocations []Location `json:"redemptionLocations,omitempty" yaml:"redemption_locations,omitempty"`
	FinePrint           string     `json:"finePrint,omitempty" yaml:"fine_print,omitempty"`
	ReviewCount         int        `json:"reviewCount" yaml:"review_count"`
	AverageRating       float64    `json:"averageRating" yaml:"average_rating"`
	AvailableQuantity   int        `json:"availableQuantity" yaml:"available_quantity"`
}

// UserLocation is the requester's position and search radius in miles.
// A nil *UserLocation means the request carried no location; latitude and
// longitude always travel together (enforced at request parsing).
type UserLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}
