package request

type LayoutMarker struct {
	ID   int     `json:"id" binding:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind string  `json:"type"`
}

type ReplaceLayoutRequest struct {
	Auth     string         `json:"auth"`
	ImageURL string         `json:"imageUrl"`
	Markers  []LayoutMarker `json:"markers" binding:"required"`
}
