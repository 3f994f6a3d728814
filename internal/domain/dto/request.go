// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"

	"github.com/palletform/binpack3d/internal/packing"
)

// ItemDTO is the wire representation of an item to be packed.
type ItemDTO struct {
	ID              string `json:"id" binding:"required"`
	Length          int    `json:"length" binding:"required,gt=0"`
	Width           int    `json:"width" binding:"required,gt=0"`
	Depth           int    `json:"depth" binding:"required,gt=0"`
	Weight          int    `json:"weight" binding:"gte=0"`
	AllowedRotation string `json:"allowed_rotation,omitempty" binding:"omitempty,oneof=never keep_flat any"`
}

// BoxDTO is the wire representation of a candidate box in the catalog.
type BoxDTO struct {
	ID          string `json:"id" binding:"required"`
	OuterLength int    `json:"outer_length" binding:"required,gt=0"`
	OuterWidth  int    `json:"outer_width" binding:"required,gt=0"`
	OuterDepth  int    `json:"outer_depth" binding:"required,gt=0"`
	InnerLength int    `json:"inner_length" binding:"required,gt=0"`
	InnerWidth  int    `json:"inner_width" binding:"required,gt=0"`
	InnerDepth  int    `json:"inner_depth" binding:"required,gt=0"`
	EmptyWeight int    `json:"empty_weight" binding:"gte=0"`
	MaxPayload  int    `json:"max_payload" binding:"required,gt=0"`
}

// PackRequest represents the JSON request body for the packing endpoints.
type PackRequest struct {
	Items      []ItemDTO      `json:"items" binding:"required,min=1,dive"`
	Boxes      []BoxDTO       `json:"boxes" binding:"required,min=1,dive"`
	Quantities map[string]int `json:"quantities" binding:"required"`
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs structural validation beyond what gin's binding tags cover:
// unknown rotation policies, quantities referencing boxes absent from the
// catalog, and non-positive quantities.
func (r *PackRequest) Validate() error {
	boxIDs := make(map[string]struct{}, len(r.Boxes))
	for _, b := range r.Boxes {
		boxIDs[b.ID] = struct{}{}
	}

	for boxID, qty := range r.Quantities {
		if _, ok := boxIDs[boxID]; !ok {
			return &ValidationError{Field: "quantities", Message: fmt.Sprintf("unknown box id %q", boxID)}
		}
		if qty <= 0 {
			return &ValidationError{Field: "quantities", Message: fmt.Sprintf("quantity for %q must be positive", boxID)}
		}
	}

	for _, it := range r.Items {
		switch it.AllowedRotation {
		case "", "never", "keep_flat", "any":
		default:
			return &ValidationError{Field: "allowed_rotation", Message: fmt.Sprintf("unknown rotation policy %q", it.AllowedRotation)}
		}
	}

	return nil
}

// ToItems converts the request's items into packing domain values.
func (r *PackRequest) ToItems() []packing.Item {
	items := make([]packing.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = packing.Item{
			ID:              it.ID,
			Length:          it.Length,
			Width:           it.Width,
			Depth:           it.Depth,
			Weight:          it.Weight,
			AllowedRotation: rotationFromString(it.AllowedRotation),
		}
	}
	return items
}

// ToBoxes converts the request's box catalog into packing domain values.
func (r *PackRequest) ToBoxes() []packing.Box {
	boxes := make([]packing.Box, len(r.Boxes))
	for i, b := range r.Boxes {
		boxes[i] = packing.Box{
			ID:          packing.BoxID(b.ID),
			OuterLength: b.OuterLength,
			OuterWidth:  b.OuterWidth,
			OuterDepth:  b.OuterDepth,
			InnerLength: b.InnerLength,
			InnerWidth:  b.InnerWidth,
			InnerDepth:  b.InnerDepth,
			EmptyWeight: b.EmptyWeight,
			MaxPayload:  b.MaxPayload,
		}
	}
	return boxes
}

// ToQuantities converts the request's quantities into a packing.Quantities map.
func (r *PackRequest) ToQuantities() packing.Quantities {
	q := make(packing.Quantities, len(r.Quantities))
	for id, n := range r.Quantities {
		q[packing.BoxID(id)] = n
	}
	return q
}

func rotationFromString(s string) packing.RotationPolicy {
	switch s {
	case "never":
		return packing.RotationNever
	case "keep_flat":
		return packing.RotationKeepFlat
	case "any", "":
		return packing.RotationAny
	default:
		return packing.RotationAny
	}
}
