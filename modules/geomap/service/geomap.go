package service

// Defaults mirrored by the map renderer.
const (
	DefaultZoom    = 13
	DefaultPadding = 50
	TileURL        = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	Attribution    = "&copy; OpenStreetMap contributors"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one activity pin. Clicking it reports ID back to the navigation layer.
type Marker struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position Point  `json:"position"`
}

// Bounds is the south-west / north-east box enclosing every marker.
type Bounds struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// MapView is what the map collaborator needs to draw a marker set. With more than one
// marker the renderer fits Bounds (with Padding pixels); otherwise it centers on Center.
type MapView struct {
	Markers     []Marker `json:"markers"`
	Center      *Point   `json:"center,omitempty"`
	Bounds      *Bounds  `json:"bounds,omitempty"`
	FitBounds   bool     `json:"fit_bounds"`
	Zoom        int      `json:"zoom"`
	Padding     int      `json:"padding"`
	TileURL     string   `json:"tile_url"`
	Attribution string   `json:"attribution"`
	Empty       bool     `json:"empty"`
}

// MapProjector turns markers into a framed map view.
type MapProjector struct {
	Zoom    int
	Padding int
}

func NewMapProjector() *MapProjector {
	return &MapProjector{
		Zoom:    DefaultZoom,
		Padding: DefaultPadding,
	}
}

// Project frames the markers. The initial center is always the first marker; bounds are
// only computed when there is more than one marker.
func (p *MapProjector) Project(markers []Marker) MapView {
	view := MapView{
		Markers:     markers,
		Zoom:        p.Zoom,
		Padding:     p.Padding,
		TileURL:     TileURL,
		Attribution: Attribution,
	}
	if len(markers) == 0 {
		view.Markers = []Marker{}
		view.Empty = true
		return view
	}

	center := markers[0].Position
	view.Center = &center

	if len(markers) > 1 {
		view.Bounds = boundsOf(markers)
		view.FitBounds = true
	}
	return view
}

func boundsOf(markers []Marker) *Bounds {
	b := &Bounds{
		SouthWest: markers[0].Position,
		NorthEast: markers[0].Position,
	}
	for _, m := range markers[1:] {
		if m.Position.Lat < b.SouthWest.Lat {
			b.SouthWest.Lat = m.Position.Lat
		}
		if m.Position.Lng < b.SouthWest.Lng {
			b.SouthWest.Lng = m.Position.Lng
		}
		if m.Position.Lat > b.NorthEast.Lat {
			b.NorthEast.Lat = m.Position.Lat
		}
		if m.Position.Lng > b.NorthEast.Lng {
			b.NorthEast.Lng = m.Position.Lng
		}
	}
	return b
}
