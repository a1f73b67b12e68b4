package analyzer

import (
	"fmt"
	"strings"
)

// calculateSentiment scores polarity and subjectivity for the text and
// generates the human-readable rationale. The estimator is consulted over a
// bounded slice of the text; when it declines, polarity falls back to the
// keyword ratio and subjectivity to 0.5.
func (a *Analyzer) calculateSentiment(fullText string) Sentiment {
	positiveKeywords := matchPresent(a.keywords.Positive, fullText)
	negativeKeywords := matchPresent(a.keywords.Negative, fullText)

	positive := len(positiveKeywords)
	negative := len(negativeKeywords)
	total := positive + negative

	var polarity, subjectivity float64
	if est, ok := a.estimator.Estimate(capRunes(fullText, estimatorTextCap)); ok {
		polarity = round3(est.Polarity)
		subjectivity = round3(est.Subjectivity)
	} else {
		if total > 0 {
			polarity = round3(float64(positive-negative) / float64(total))
		}
		subjectivity = 0.5
	}

	reason := a.sentimentReason(polarity, positive, negative, positiveKeywords, negativeKeywords, fullText)

	return Sentiment{
		Polarity:      polarity,
		Subjectivity:  subjectivity,
		Reason:        reason,
		PositiveCount: positive,
		NegativeCount: negative,
	}
}

// sentimentReason renders the rationale text for the given polarity band.
func (a *Analyzer) sentimentReason(polarity float64, positiveCount, negativeCount int, positiveKeywords, negativeKeywords []string, text string) string {
	switch {
	case polarity > 0.3:
		return positiveReason(positiveCount, positiveKeywords, text)
	case polarity < -0.1:
		return negativeReason(negativeCount, negativeKeywords, text)
	default:
		return neutralReason(positiveCount, negativeCount, positiveKeywords, negativeKeywords)
	}
}

func positiveReason(count int, keywords []string, text string) string {
	parts := []string{
		fmt.Sprintf("**Positive Sentiment Detected** (%d positive indicators)", count),
	}

	if len(keywords) > 0 {
		top := keywords
		if len(top) > maxReasonKeywords {
			top = top[:maxReasonKeywords]
		}
		parts = append(parts, "\n\n**Positive words used by client:**\n• "+strings.Join(top, "\n• "))
	}

	var behaviors []string
	if containsAny(text, "thank", "thanks", "grateful", "appreciate") {
		behaviors = append(behaviors, "Showed appreciation and gratitude")
	}
	if containsAny(text, "excellent", "great", "perfect", "amazing") {
		behaviors = append(behaviors, "Used strong positive language")
	}
	if containsAny(text, "satisfied", "happy", "pleased") {
		behaviors = append(behaviors, "Explicitly stated satisfaction")
	}
	if len(behaviors) > 0 {
		parts = append(parts, "\n\n**Client behavior:**\n• "+strings.Join(behaviors, "\n• "))
	}

	return strings.Join(parts, "\n")
}

func negativeReason(count int, keywords []string, text string) string {
	parts := []string{
		fmt.Sprintf("**Negative Sentiment Detected** (%d concern indicators)", count),
	}

	if len(keywords) > 0 {
		top := keywords
		if len(top) > maxReasonKeywords {
			top = top[:maxReasonKeywords]
		}
		parts = append(parts, "\n\n**Negative/Concern words used by client:**\n• "+strings.Join(top, "\n• "))
	}

	var behaviors []string
	if containsAny(text, "frustrated", "disappointed", "unhappy") {
		behaviors = append(behaviors, "Expressed frustration or disappointment")
	}
	if containsAny(text, "problem", "issue", "broken", "not working") {
		behaviors = append(behaviors, "Reported technical or operational issues")
	}
	if containsAny(text, "complaint", "complain", "escalate", "terminate", "cancel") {
		behaviors = append(behaviors, "Raised complaints or escalation concerns")
	}
	if len(behaviors) > 0 {
		parts = append(parts, "\n\n**Client behavior:**\n• "+strings.Join(behaviors, "\n• "))
	}

	return strings.Join(parts, "\n")
}

func neutralReason(positiveCount, negativeCount int, positiveKeywords, negativeKeywords []string) string {
	if positiveCount > 0 && negativeCount > 0 {
		parts := []string{
			fmt.Sprintf("**Mixed Sentiment** (Positive: %d, Negative: %d)", positiveCount, negativeCount),
		}
		if len(positiveKeywords) > 0 {
			top := positiveKeywords
			if len(top) > 5 {
				top = top[:5]
			}
			parts = append(parts, "\n\n**Positive words:** "+strings.Join(top, ", "))
		}
		if len(negativeKeywords) > 0 {
			top := negativeKeywords
			if len(top) > 5 {
				top = top[:5]
			}
			parts = append(parts, "\n\n**Concern words:** "+strings.Join(top, ", "))
		}
		parts = append(parts, "\n\n**Analysis:** Meeting had balanced discussion with both concerns and positive feedback.")
		return strings.Join(parts, "\n")
	}

	if positiveCount == 0 && negativeCount == 0 {
		return "**Neutral Sentiment**\n\nFactual, business-focused discussion. No strong emotional indicators detected."
	}
	return "**Neutral Sentiment**\n\nProfessional tone maintained. Client focused on business matters."
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
