package originality

import (
	"fmt"
	"strings"

	"trendforge/internal/domain/script"
	"trendforge/internal/service/transcript"
)

// Threshold is the similarity at or above which a generated script is
// rejected as insufficiently distinct from its source transcript.
const Threshold = 0.5

// Verdict is the outcome of an originality check. A rejection is a
// validation result routed back to script regeneration, not an error.
type Verdict struct {
	Original   bool
	Similarity float64
	Reason     string
}

// Validate compares a generated script against the source transcript it was
// derived from and accepts it only when the similarity is below Threshold.
func Validate(generated script.Script, sourceTranscript string) Verdict {
	similarity := Similarity(generated.Voiceover(), transcript.Text(sourceTranscript))

	if similarity >= Threshold {
		return Verdict{
			Similarity: similarity,
			Reason:     fmt.Sprintf("script shares %.0f%% of its vocabulary with the source", similarity*100),
		}
	}

	return Verdict{Original: true, Similarity: similarity}
}

// Similarity measures how much of the script's vocabulary already appears
// in the source text: |script words ∩ source words| / |script words|.
// Deliberately asymmetric rather than Jaccard over the union, since the
// question is whether the script adds anything, not whether the texts
// match. An empty script scores 1.0 so it can never pass as original.
func Similarity(scriptText, sourceText string) float64 {
	scriptWords := wordSet(scriptText)
	if len(scriptWords) == 0 {
		return 1.0
	}

	sourceWords := wordSet(sourceText)
	common := 0
	for word := range scriptWords {
		if sourceWords[word] {
			common++
		}
	}

	return float64(common) / float64(len(scriptWords))
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}
