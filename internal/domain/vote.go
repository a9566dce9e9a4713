package domain

// ClassifierLabel is the coarse output of the statistical intent classifier
type ClassifierLabel string

const (
	LabelNone    ClassifierLabel = "none"
	LabelDiet    ClassifierLabel = "diet"
	LabelVegan   ClassifierLabel = "vegan"
	LabelAllergy ClassifierLabel = "allergy"
)

// ParseClassifierLabel maps a raw label to a ClassifierLabel. Unknown values map to LabelNone.
func ParseClassifierLabel(raw string) ClassifierLabel {
	switch ClassifierLabel(raw) {
	case LabelDiet, LabelVegan, LabelAllergy:
		return ClassifierLabel(raw)
	default:
		return LabelNone
	}
}

// Signal is a dietary or exclusion signal that a voter can raise
type Signal int

const (
	SignalVegan Signal = iota + 1
	SignalLowCalorie
	SignalSugarFree
	SignalAllergy
)

func (s Signal) String() string {
	switch s {
	case SignalVegan:
		return "vegan"
	case SignalLowCalorie:
		return "low_calorie"
	case SignalSugarFree:
		return "sugar_free"
	case SignalAllergy:
		return "allergy"
	default:
		return "unknown"
	}
}

// Signal returns the signal raised by a classifier label.
// There is no classifier label for sugar-free.
func (l ClassifierLabel) Signal() (Signal, bool) {
	switch l {
	case LabelDiet:
		return SignalLowCalorie, true
	case LabelVegan:
		return SignalVegan, true
	case LabelAllergy:
		return SignalAllergy, true
	default:
		return 0, false
	}
}

// VoteSource identifies which voter raised a signal
type VoteSource int

const (
	SourceRule VoteSource = iota + 1
	SourceClassifier
)

func (s VoteSource) String() string {
	switch s {
	case SourceRule:
		return "rule"
	case SourceClassifier:
		return "classifier"
	default:
		return "unknown"
	}
}

// Vote is a single signal raised by a single source
type Vote struct {
	Source VoteSource
	Signal Signal
}

// Ballot collects the votes cast for one utterance
type Ballot []Vote

// Cast appends a vote
func (b *Ballot) Cast(source VoteSource, signal Signal) {
	*b = append(*b, Vote{Source: source, Signal: signal})
}

// Has merges all sources with OR: a signal is set if any source raised it
func (b Ballot) Has(signal Signal) bool {
	for _, v := range b {
		if v.Signal == signal {
			return true
		}
	}
	return false
}

// From reports whether the given source raised the signal
func (b Ballot) From(source VoteSource, signal Signal) bool {
	for _, v := range b {
		if v.Source == source && v.Signal == signal {
			return true
		}
	}
	return false
}
