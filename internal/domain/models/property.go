// internal/domain/models/property.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType is the kind of building or plot being listed.
type PropertyType string

const (
	TypeHouse       PropertyType = "House"
	TypeApartment   PropertyType = "Apartment"
	TypeDuplex      PropertyType = "Duplex"
	TypeVilla       PropertyType = "Villa"
	TypePenthouse   PropertyType = "Penthouse"
	TypeTownhouse   PropertyType = "Townhouse"
	TypeStudio      PropertyType = "Studio"
	TypeCommercial  PropertyType = "Commercial"
	TypeLand        PropertyType = "Land"
	TypeOfficeSpace PropertyType = "Office Space"
)

// PropertyTypes lists every accepted PropertyType.
var PropertyTypes = []PropertyType{
	TypeHouse, TypeApartment, TypeDuplex, TypeVilla, TypePenthouse,
	TypeTownhouse, TypeStudio, TypeCommercial, TypeLand, TypeOfficeSpace,
}

func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ListingStatus is the commercial state of a listing.
type ListingStatus string

const (
	StatusForSale ListingStatus = "For Sale"
	StatusForRent ListingStatus = "For Rent"
	StatusSold    ListingStatus = "Sold"
	StatusRented  ListingStatus = "Rented"
)

// ListingStatuses lists every accepted ListingStatus.
var ListingStatuses = []ListingStatus{StatusForSale, StatusForRent, StatusSold, StatusRented}

func (s ListingStatus) Valid() bool {
	for _, v := range ListingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Location struct {
	Address     string       `bson:"address" json:"address"`
	City        string       `bson:"city" json:"city"`
	CityCI      string       `bson:"city_ci" json:"-"`
	State       string       `bson:"state" json:"state"`
	Area        string       `bson:"area" json:"area"`
	AreaCI      string       `bson:"area_ci" json:"-"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type Details struct {
	Bedrooms      int     `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int     `bson:"bathrooms" json:"bathrooms"`
	Toilets       int     `bson:"toilets,omitempty" json:"toilets,omitempty"`
	ParkingSpaces int     `bson:"parking_spaces" json:"parkingSpaces"`
	Size          float64 `bson:"size" json:"size"` // square meters
	YearBuilt     int     `bson:"year_built,omitempty" json:"yearBuilt,omitempty"`
}

// Image is an uploaded photo; PublicID is the key in the image store.
type Image struct {
	URL       string `bson:"url" json:"url"`
	PublicID  string `bson:"public_id,omitempty" json:"publicId,omitempty"`
	IsPrimary bool   `bson:"is_primary" json:"isPrimary"`
}

// Property is a real-estate listing owned by exactly one agent.
// Listings with IsActive=false are hidden from public search and featured
// results but remain addressable by ID.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Type        PropertyType       `bson:"type" json:"type"`
	Status      ListingStatus      `bson:"status" json:"status"`
	Price       float64            `bson:"price" json:"price"`
	Location    Location           `bson:"location" json:"location"`
	Details     Details            `bson:"details" json:"details"`
	Features    []string           `bson:"features,omitempty" json:"features"`
	Images      []Image            `bson:"images,omitempty" json:"images"`
	AgentID     primitive.ObjectID `bson:"agent" json:"-"`
	Views       int64              `bson:"views" json:"views"`
	Saves       int64              `bson:"saves" json:"saves"`
	Featured    bool               `bson:"featured" json:"featured"`
	IsActive    bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Age describes how old the building is relative to now, or "" when the
// construction year is unknown.
func (p Property) Age(now time.Time) string {
	if p.Details.YearBuilt == 0 {
		return ""
	}
	age := now.Year() - p.Details.YearBuilt
	switch {
	case age <= 0:
		return "Brand New"
	case age == 1:
		return "1 year old"
	default:
		return fmt.Sprintf("%d years old", age)
	}
}

// PropertyView is a property with its agent populated, as returned by the API.
type PropertyView struct {
	Property
	Agent       AgentSummary `json:"agent"`
	PropertyAge string       `json:"propertyAge,omitempty"`
}

// NewPropertyView pairs p with its agent. A nil agent (deleted account)
// leaves only the agent ID in the view.
func NewPropertyView(p Property, agent *AgentSummary, now time.Time) PropertyView {
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	v := PropertyView{Property: p, PropertyAge: p.Age(now)}
	if agent != nil {
		v.Agent = *agent
	} else {
		v.Agent = AgentSummary{ID: p.AgentID}
	}
	return v
}
