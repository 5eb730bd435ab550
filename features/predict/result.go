package predict

// Prediction statuses
const (
	StatusLegitimate = "legitimate"
	StatusPhishing   = "phishing"
)

// Prediction is the per-request verdict. Produced, serialized, forgotten;
// nothing here outlives the request beyond the optional verdict cache.
type Prediction struct {
	Status      string  `json:"status"`
	Probability float64 `json:"probability"`
}

// Label applies the decision rule: phishing iff probability strictly
// exceeds the threshold, so a tie at exactly the threshold stays
// legitimate.
func Label(probability, threshold float64) string {
	if probability > threshold {
		return StatusPhishing
	}
	return StatusLegitimate
}
