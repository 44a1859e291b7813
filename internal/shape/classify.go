package shape

// Label is a shape category assigned by Classify.
type Label string

const (
	LabelCircle    Label = "Circle"
	LabelEllipse   Label = "Ellipse"
	LabelPolygon   Label = "Polygon"
	LabelIrregular Label = "Irregular"
)

// Labels lists every label in rule order, with the fallback last.
var Labels = []Label{LabelCircle, LabelEllipse, LabelIrregular, LabelPolygon}

// Rule pairs a predicate over descriptors with the label it assigns.
type Rule struct {
	Label Label
	Match func(d Descriptors) bool
}

// Rules is the ordered rule table. Predicates overlap, so the order is part of
// the contract: the first matching rule wins.
var Rules = []Rule{
	{
		Label: LabelCircle,
		Match: func(d Descriptors) bool { return d.Circularity > 0.82 && d.Solidity > 0.9 },
	},
	{
		Label: LabelEllipse,
		Match: func(d Descriptors) bool { return d.EllipseRatio() > 0.85 && d.Solidity > 0.85 },
	},
	{
		Label: LabelIrregular,
		Match: func(d Descriptors) bool { return d.Solidity < 0.8 },
	},
}

// Classify assigns a label to a descriptor set. It never fails: descriptors
// that match no rule are a Polygon.
func Classify(d Descriptors) Label {
	for _, r := range Rules {
		if r.Match(d) {
			return r.Label
		}
	}
	return LabelPolygon
}

// Result is the classification of one accepted contour.
type Result struct {
	Label       Label       `json:"shape"`
	Area        float64     `json:"area"`
	Perimeter   float64     `json:"perimeter"`
	Bounds      Rect        `json:"bounds"`
	Descriptors Descriptors `json:"-"`
}

// Analyze computes descriptors for the contour and classifies it.
//
// Returns ErrRejected or ErrDegenerate (see ComputeDescriptors) when the
// contour produces no result.
func Analyze(c Contour, minArea float64) (Result, error) {
	d, err := ComputeDescriptors(c, minArea)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Label:       Classify(d),
		Area:        d.Area,
		Perimeter:   d.Perimeter,
		Bounds:      d.Bounds,
		Descriptors: d,
	}, nil
}
