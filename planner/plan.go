package planner

// Bucket names one of the four typed collections in a trip plan.
type Bucket string

// The four plan buckets. Bucket order here is display order.
const (
	BucketAccommodations Bucket = "accommodations"
	BucketTransportation Bucket = "transportation"
	BucketGuides         Bucket = "guides"
	BucketDestinations   Bucket = "destinations"
)

// Buckets returns all buckets in display order.
func Buckets() []Bucket {
	return []Bucket{BucketAccommodations, BucketTransportation, BucketGuides, BucketDestinations}
}

// singularLabels maps each bucket to the singular type label shown on
// checkout summary lines.
var singularLabels = map[Bucket]string{
	BucketAccommodations: "accommodation",
	BucketTransportation: "transport",
	BucketGuides:         "guide",
	BucketDestinations:   "destination",
}

// Label returns the singular type label for summary lines.
func (b Bucket) Label() string {
	return singularLabels[b]
}

// Valid reports whether b names a known bucket.
func (b Bucket) Valid() bool {
	_, ok := singularLabels[b]
	return ok
}

// Plan is the four-bucket trip-planning state. Each bucket is an ordered
// sequence: insertion order is display order. The JSON layout is exactly
// what gets persisted under the tripPlanningBookings key.
type Plan struct {
	Accommodations []Item `json:"accommodations"`
	Transportation []Item `json:"transportation"`
	Guides         []Item `json:"guides"`
	Destinations   []Item `json:"destinations"`
}

// emptyPlan returns the initial empty shape with all four buckets allocated,
// so serialization always writes all four keys.
func emptyPlan() Plan {
	return Plan{
		Accommodations: []Item{},
		Transportation: []Item{},
		Guides:         []Item{},
		Destinations:   []Item{},
	}
}

// bucket returns a pointer to the named bucket's sequence, or nil for an
// unknown bucket.
func (p *Plan) bucket(b Bucket) *[]Item {
	switch b {
	case BucketAccommodations:
		return &p.Accommodations
	case BucketTransportation:
		return &p.Transportation
	case BucketGuides:
		return &p.Guides
	case BucketDestinations:
		return &p.Destinations
	default:
		return nil
	}
}

// ItemCount is the sum of bucket lengths.
func (p *Plan) ItemCount() int {
	return len(p.Accommodations) + len(p.Transportation) + len(p.Guides) + len(p.Destinations)
}

// TotalAmount sums every item's resolved amount across all buckets.
func (p *Plan) TotalAmount() float64 {
	var total float64
	for _, b := range Buckets() {
		for _, item := range *p.bucket(b) {
			total += item.Amount()
		}
	}
	return total
}

// clone returns a deep copy of the plan.
func (p *Plan) clone() Plan {
	cp := emptyPlan()
	for _, b := range Buckets() {
		src := *p.bucket(b)
		dst := make([]Item, len(src))
		copy(dst, src)
		*cp.bucket(b) = dst
	}
	return cp
}
