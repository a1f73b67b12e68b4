package analyzer

// SatisfactionLabel maps a satisfaction score to its display bucket.
func SatisfactionLabel(score float64) string {
	switch {
	case score >= 75:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

// RiskLabel maps a risk score to its display bucket.
func RiskLabel(score float64) string {
	switch {
	case score >= 70:
		return "High Risk"
	case score >= 40:
		return "Medium Risk"
	case score >= 20:
		return "Low Risk"
	default:
		return "Minimal Risk"
	}
}
