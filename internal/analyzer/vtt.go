package analyzer

import (
	"regexp"
	"strings"
)

var (
	vttTimestampRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}\.\d{3}`)
	vttSpeakerRe   = regexp.MustCompile(`(?i)<v\s+([^>]+)>([^<]+)</v>`)
	anyTagRe       = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// CleanVTT strips WebVTT timestamp ranges and markup from a line of cue text
// while keeping speaker attribution. `<v jane doe>text</v>` becomes
// "Jane Doe: Text"; unrecognized tags are dropped and whitespace collapsed.
func CleanVTT(text string) string {
	if text == "" {
		return ""
	}

	text = vttTimestampRe.ReplaceAllString(text, "")

	text = vttSpeakerRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := vttSpeakerRe.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		speaker := titleCase(strings.TrimSpace(parts[1]))
		content := upperFirst(strings.TrimSpace(parts[2]))
		return speaker + ": " + content
	})

	text = anyTagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// titleCase capitalizes each whitespace-separated word. The input is already
// lowercased by the analysis pipeline.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = upperFirst(word)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
