// internal/app/features/properties/types.go
package properties

import (
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/domain/models"
)

type coordinatesInput struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90" label:"Latitude"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180" label:"Longitude"`
}

type locationInput struct {
	Address     string            `json:"address" validate:"required,max=200" label:"Address"`
	City        string            `json:"city" validate:"required,max=100" label:"City"`
	State       string            `json:"state" validate:"required,max=100" label:"State"`
	Area        string            `json:"area" validate:"required,max=100" label:"Area"`
	Coordinates *coordinatesInput `json:"coordinates" validate:"omitempty" label:"Coordinates"`
}

func (l locationInput) model() models.Location {
	loc := models.Location{
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		Area:    l.Area,
	}
	if l.Coordinates != nil {
		loc.Coordinates = &models.Coordinates{Latitude: l.Coordinates.Latitude, Longitude: l.Coordinates.Longitude}
	}
	return loc
}

type detailsInput struct {
	Bedrooms      *int     `json:"bedrooms" validate:"required,gte=0" label:"Bedrooms"`
	Bathrooms     *int     `json:"bathrooms" validate:"required,gte=0" label:"Bathrooms"`
	Toilets       int      `json:"toilets" validate:"gte=0" label:"Toilets"`
	ParkingSpaces int      `json:"parkingSpaces" validate:"gte=0" label:"Parking spaces"`
	Size          *float64 `json:"size" validate:"required,gte=0" label:"Property size"`
	YearBuilt     int      `json:"yearBuilt" validate:"omitempty,gte=1900" label:"Year built"`
}

func (d detailsInput) model() models.Details {
	return models.Details{
		Bedrooms:      *d.Bedrooms,
		Bathrooms:     *d.Bathrooms,
		Toilets:       d.Toilets,
		ParkingSpaces: d.ParkingSpaces,
		Size:          *d.Size,
		YearBuilt:     d.YearBuilt,
	}
}

type imageInput struct {
	URL       string `json:"url" validate:"required,max=1000" label:"Image URL"`
	PublicID  string `json:"publicId" validate:"max=300" label:"Image ID"`
	IsPrimary bool   `json:"isPrimary"`
}

type createInput struct {
	Title       string        `json:"title" validate:"required,max=100" label:"Title"`
	Description string        `json:"description" validate:"required,max=2000" label:"Description"`
	Type        string        `json:"type" validate:"required,propertytype" label:"Property type"`
	Status      string        `json:"status" validate:"omitempty,propertystatus" label:"Status"`
	Price       *float64      `json:"price" validate:"required,gte=0" label:"Price"`
	Location    locationInput `json:"location" label:"Location"`
	Details     detailsInput  `json:"details" label:"Details"`
	Features    []string      `json:"features" validate:"max=30,dive,max=100" label:"Features"`
	Images      []imageInput  `json:"images" validate:"max=20,dive" label:"Images"`
	Featured    *bool         `json:"featured"`
	IsActive    *bool         `json:"isActive"`
}

// updateInput is a partial update. Location and details replace the stored
// sub-document as a whole when present.
type updateInput struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=100" label:"Title"`
	Description *string        `json:"description" validate:"omitempty,min=1,max=2000" label:"Description"`
	Type        *string        `json:"type" validate:"omitempty,propertytype" label:"Property type"`
	Status      *string        `json:"status" validate:"omitempty,propertystatus" label:"Status"`
	Price       *float64       `json:"price" validate:"omitempty,gte=0" label:"Price"`
	Location    *locationInput `json:"location" validate:"omitempty" label:"Location"`
	Details     *detailsInput  `json:"details" validate:"omitempty" label:"Details"`
	Features    *[]string      `json:"features" validate:"omitempty,max=30,dive,max=100" label:"Features"`
	Images      *[]imageInput  `json:"images" validate:"omitempty,max=20,dive" label:"Images"`
	Featured    *bool          `json:"featured"`
	IsActive    *bool          `json:"isActive"`
}

// checkYearBuilt enforces the upper bound that depends on the current date.
func checkYearBuilt(res *inputval.Result, year int, now time.Time) {
	if year != 0 && year > now.Year()+1 {
		res.Add("details.yearBuilt", "Year built cannot be in the future.")
	}
}

// images converts the input and keeps exactly one primary image when any
// exist: the first one flagged, or the first one.
func images(in []imageInput) []models.Image {
	out := make([]models.Image, len(in))
	primary := -1
	for i, img := range in {
		out[i] = models.Image{URL: img.URL, PublicID: img.PublicID}
		if img.IsPrimary && primary < 0 {
			primary = i
		}
	}
	if len(out) > 0 {
		if primary < 0 {
			primary = 0
		}
		out[primary].IsPrimary = true
	}
	return out
}

// searchPage is the cached body of GET /properties.
type searchPage struct {
	Count       int                   `json:"count"`
	Total       int64                 `json:"total"`
	Pages       int64                 `json:"pages"`
	CurrentPage int                   `json:"currentPage"`
	Properties  []models.PropertyView `json:"properties"`
}

func (p searchPage) fields() respond.M {
	return respond.M{
		"count":       p.Count,
		"total":       p.Total,
		"pages":       p.Pages,
		"currentPage": p.CurrentPage,
		"properties":  p.Properties,
	}
}

type propertyEvent struct {
	PropertyID string `json:"propertyId"`
	AgentID    string `json:"agentId"`
	Title      string `json:"title,omitempty"`
	City       string `json:"city,omitempty"`
}
