package analyzer

import (
	"strings"
	"testing"
)

func TestCalculateSentimentNegativeBranch(t *testing.T) {
	a := newKeywordOnly()
	s := a.calculateSentiment("i am frustrated and disappointed, the importer is broken and not working")

	if s.Polarity >= -0.1 {
		t.Fatalf("polarity = %v, want < -0.1", s.Polarity)
	}
	if !strings.Contains(s.Reason, "Negative Sentiment Detected") {
		t.Fatalf("reason = %q, want negative branch", s.Reason)
	}
	if !strings.Contains(s.Reason, "Expressed frustration or disappointment") {
		t.Fatalf("reason missing frustration behavior: %q", s.Reason)
	}
	if !strings.Contains(s.Reason, "Reported technical or operational issues") {
		t.Fatalf("reason missing issue behavior: %q", s.Reason)
	}
	if s.PositiveCount != 0 || s.NegativeCount != 4 {
		t.Fatalf("counts = (%d, %d), want (0, 4)", s.PositiveCount, s.NegativeCount)
	}
}

func TestCalculateSentimentMixedBranch(t *testing.T) {
	a := newKeywordOnly()
	s := a.calculateSentiment("great progress overall but the export is broken")

	if s.Polarity != 0 {
		t.Fatalf("polarity = %v, want 0 for balanced keywords", s.Polarity)
	}
	if !strings.Contains(s.Reason, "Mixed Sentiment") {
		t.Fatalf("reason = %q, want mixed branch", s.Reason)
	}
	if !strings.Contains(s.Reason, "balanced discussion") {
		t.Fatalf("reason = %q, want balanced-discussion note", s.Reason)
	}
}

func TestCalculateSentimentNeutralNoKeywords(t *testing.T) {
	a := newKeywordOnly()
	s := a.calculateSentiment("the team reviewed the quarterly roadmap")

	if s.Polarity != 0 || s.Subjectivity != 0.5 {
		t.Fatalf("sentiment = %+v, want neutral fallback", s)
	}
	if !strings.Contains(s.Reason, "No strong emotional indicators detected") {
		t.Fatalf("reason = %q, want factual-neutral note", s.Reason)
	}
}

func TestCalculateSentimentOneSidedNeutralBand(t *testing.T) {
	// A single positive keyword gives ratio polarity 1.0, which lands in the
	// positive branch; force the neutral band with a canned estimator.
	a := New(DefaultKeywords(), fixedEstimator{polarity: 0.05, subjectivity: 0.4})
	s := a.calculateSentiment("the demo was helpful")

	if !strings.Contains(s.Reason, "Professional tone maintained") {
		t.Fatalf("reason = %q, want generic neutral note", s.Reason)
	}
}

func TestSentimentReasonKeywordCaps(t *testing.T) {
	a := newKeywordOnly()
	text := "excellent great good perfect amazing wonderful satisfied happy pleased impressed love appreciate"
	s := a.calculateSentiment(text)

	if !strings.Contains(s.Reason, "Positive Sentiment Detected") {
		t.Fatalf("reason = %q, want positive branch", s.Reason)
	}
	// At most 8 keyword bullets are listed even though more matched.
	bullets := strings.Count(strings.Split(s.Reason, "**Client behavior:**")[0], "• ")
	if bullets > 8 {
		t.Fatalf("bullets = %d, want <= 8", bullets)
	}
}
