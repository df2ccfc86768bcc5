package stream

// Classifier decides whether a sample is anomalous against static
// absolute bounds. It carries no mutable state and is safe for
// concurrent use.
type Classifier struct {
	lowerBound float64
	upperBound float64
}

func NewClassifier(lowerBound, upperBound float64) *Classifier {
	return &Classifier{
		lowerBound: lowerBound,
		upperBound: upperBound,
	}
}

// Classify returns true for upstream-flagged samples and for values
// outside the configured bounds. previousValue is reserved for a delta
// check and is not consulted.
func (c *Classifier) Classify(value, previousValue float64, flagged bool) bool {
	if flagged {
		return true
	}

	if value < c.lowerBound || value > c.upperBound {
		return true
	}

	return false
}
