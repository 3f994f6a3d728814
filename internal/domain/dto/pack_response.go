package dto

import "github.com/palletform/binpack3d/internal/packing"

// PackedItemDTO is the wire representation of a single placed item.
type PackedItemDTO struct {
	ItemID string `json:"item_id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
	Width  int    `json:"width"`
	Length int    `json:"length"`
	Depth  int    `json:"depth"`
}

// PackedBoxDTO is the wire representation of one filled box.
type PackedBoxDTO struct {
	BoxID             string          `json:"box_id"`
	Items             []PackedItemDTO `json:"items"`
	TotalWeight       int             `json:"total_weight"`
	VolumeUtilisation float64         `json:"volume_utilisation"`
}

// PackResponse is the wire representation of a completed packing run.
type PackResponse struct {
	Boxes          []PackedBoxDTO `json:"boxes"`
	BoxCount       int            `json:"box_count"`
	TotalWeight    int            `json:"total_weight"`
	MeanItemWeight float64        `json:"mean_item_weight"`
	WeightVariance float64        `json:"weight_variance"`
}

// NewPackResponse converts a packing.PackedBoxList into its wire representation.
func NewPackResponse(list packing.PackedBoxList) PackResponse {
	boxes := make([]PackedBoxDTO, len(list.Boxes))
	for i, b := range list.Boxes {
		items := make([]PackedItemDTO, len(b.Items))
		for j, it := range b.Items {
			items[j] = PackedItemDTO{
				ItemID: it.Item().ID,
				X:      it.X,
				Y:      it.Y,
				Z:      it.Z,
				Width:  it.Orientation.Width,
				Length: it.Orientation.Length,
				Depth:  it.Orientation.Depth,
			}
		}
		boxes[i] = PackedBoxDTO{
			BoxID:             string(b.Box.ID),
			Items:             items,
			TotalWeight:       b.TotalWeight(),
			VolumeUtilisation: b.VolumeUtilisation(),
		}
	}

	return PackResponse{
		Boxes:          boxes,
		BoxCount:       list.Count(),
		TotalWeight:    list.TotalWeight(),
		MeanItemWeight: list.MeanItemWeight(),
		WeightVariance: list.WeightVariance(),
	}
}
