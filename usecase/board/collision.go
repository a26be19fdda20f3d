package board

import "math"

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) corners() [4][2]float64 {
	return [4][2]float64{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
}

// Region is a droppable area: a column or a card.
type Region struct {
	ID   string
	Rect Rect
}

// ClosestCorners picks the region whose corners are nearest to the corners of
// the dragged rect, summing the four pairwise distances. Ties keep the earlier
// region.
func ClosestCorners(active Rect, regions []Region) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	ac := active.corners()
	for _, region := range regions {
		rc := region.Rect.corners()
		var dist float64
		for i := range ac {
			dist += math.Hypot(ac[i][0]-rc[i][0], ac[i][1]-rc[i][1])
		}
		if dist < bestDist {
			best, bestDist = region.ID, dist
		}
	}
	return best, best != ""
}
