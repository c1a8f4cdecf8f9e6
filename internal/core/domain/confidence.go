package domain

// ConfidenceScore combines acquisition confidence, extraction method
// confidence and the number of populated fields into one 0..100 score.
// The field bonus is capped so breadth alone cannot dominate the score.
func ConfidenceScore(acquisitionConfidence, methodConfidence float64, fieldsFound int) int {
	base := (acquisitionConfidence + methodConfidence) / 2
	bonus := fieldsFound * 5
	if bonus > 30 {
		bonus = 30
	}
	score := int(base*70) + bonus
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
