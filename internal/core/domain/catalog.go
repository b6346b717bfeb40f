package domain

type CatalogState int

const (
	CatalogIdle CatalogState = iota
	CatalogLoading
	CatalogLoaded
	CatalogFailed
)

func (s CatalogState) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogLoaded:
		return "loaded"
	case CatalogFailed:
		return "failed"
	default:
		return "idle"
	}
}

// A CatalogSnapshot is a point-in-time view of the catalog load.
//
// Products is empty unless State is CatalogLoaded. Err is set only
// when State is CatalogFailed.
type CatalogSnapshot struct {
	State    CatalogState
	Products []Product
	Err      error
}

func (s CatalogSnapshot) Lookup(id ProductID) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
