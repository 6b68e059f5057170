package dispatch

// Kind tags every runtime value that takes part in dispatch: distributions,
// kernels, mean functions and inducing features. The hierarchy is closed;
// subtyping is encoded in the parent table below rather than in Go's type
// system, so that an Identity mean can be matched by a LinearMean pattern.
type Kind int

const (
	// None marks an operand or feature slot that was not supplied.
	None Kind = iota

	Gaussian
	DiagonalGaussian
	MarkovGaussian

	Kernel
	LinearKernel
	SqExpKernel

	MeanFunction
	LinearMean
	IdentityMean
	ConstantMean

	InducingFeature
	InducingPoints
)

// parents holds the direct supertype of each kind that has one.
var parents = map[Kind]Kind{
	LinearKernel:   Kernel,
	SqExpKernel:    Kernel,
	LinearMean:     MeanFunction,
	IdentityMean:   LinearMean,
	ConstantMean:   MeanFunction,
	InducingPoints: InducingFeature,
}

var kindNames = map[Kind]string{
	None:             "None",
	Gaussian:         "Gaussian",
	DiagonalGaussian: "DiagonalGaussian",
	MarkovGaussian:   "MarkovGaussian",
	Kernel:           "Kernel",
	LinearKernel:     "LinearKernel",
	SqExpKernel:      "SqExpKernel",
	MeanFunction:     "MeanFunction",
	LinearMean:       "LinearMean",
	IdentityMean:     "IdentityMean",
	ConstantMean:     "ConstantMean",
	InducingFeature:  "InducingFeature",
	InducingPoints:   "InducingPoints",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// IsA reports whether k is t or a (transitive) subtype of t. None is only a
// subtype of itself.
func (k Kind) IsA(t Kind) bool {
	for {
		if k == t {
			return true
		}
		parent, ok := parents[k]
		if !ok {
			return false
		}
		k = parent
	}
}

// Typed is implemented by every value that can occupy a dispatch slot.
type Typed interface {
	Kind() Kind
}

// KindOf returns the kind of v, or None for a missing operand.
func KindOf(v Typed) Kind {
	if v == nil {
		return None
	}
	return v.Kind()
}
