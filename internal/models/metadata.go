package models

// Design categories. Each category implies exactly one metadata variant.
const (
	CategoryFloorplan   = "floorplan"
	CategoryInspiration = "inspiration"
)

// FloorplanDetails carries the fields specific to floorplan designs.
type FloorplanDetails struct {
	Rooms   int     `json:"rooms"`
	AreaSqm float64 `json:"area_sqm"`
}

// InspirationDetails carries the fields specific to inspiration designs.
type InspirationDetails struct {
	Style string `json:"style"`
}

// DesignMetadata is a tagged union: exactly one variant is set, matching the
// design's category. The variants are mutually exclusive.
type DesignMetadata struct {
	Floorplan   *FloorplanDetails   `json:"floorplan,omitempty"`
	Inspiration *InspirationDetails `json:"inspiration,omitempty"`
}

// IsValidCategory reports whether category names a known design category.
func IsValidCategory(category string) bool {
	switch category {
	case CategoryFloorplan, CategoryInspiration:
		return true
	default:
		return false
	}
}

// Validate checks that the metadata carries exactly the variant implied by
// the category and that the variant's fields are sensible.
func (m DesignMetadata) Validate(category string) error {
	switch category {
	case CategoryFloorplan:
		if m.Floorplan == nil {
			return NewValidationError("Floorplan designs require floorplan metadata")
		}
		if m.Inspiration != nil {
			return NewValidationError("Floorplan designs must not carry inspiration metadata")
		}
		if m.Floorplan.Rooms <= 0 {
			return NewValidationError("Floorplan room count must be positive")
		}
		if m.Floorplan.AreaSqm <= 0 {
			return NewValidationError("Floorplan area must be positive")
		}
	case CategoryInspiration:
		if m.Inspiration == nil {
			return NewValidationError("Inspiration designs require inspiration metadata")
		}
		if m.Floorplan != nil {
			return NewValidationError("Inspiration designs must not carry floorplan metadata")
		}
		if m.Inspiration.Style == "" {
			return NewValidationError("Inspiration style is required")
		}
	default:
		return NewValidationError("Invalid category")
	}
	return nil
}
