package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FallbackMinutes is the lesson length assumed when no audio duration is known.
const FallbackMinutes = 3.0

// FillerWords is matched as raw substrings, so "ok" also counts inside "okay".
var FillerWords = []string{"um", "uh", "like", "you know", "so", "actually", "right", "okay", "ok"}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ExtractMetrics computes the speech-pattern metrics of a transcript.
// audioSeconds <= 0 means the duration is unknown.
func ExtractMetrics(text string, audioSeconds float64) Metrics {
	return Metrics{
		WordsPerMinute:   WordsPerMinute(text, audioSeconds),
		FillerCount:      FillerCount(text),
		LexicalDiversity: LexicalDiversity(text),
	}
}

func WordsPerMinute(text string, audioSeconds float64) float64 {
	words := float64(len(strings.Fields(text)))
	if audioSeconds > 0 {
		return round(words/(audioSeconds/60), 1)
	}
	return round(words/FallbackMinutes, 1)
}

func FillerCount(text string) int {
	lower := strings.ToLower(text)
	return lo.SumBy(FillerWords, func(w string) int {
		return strings.Count(lower, w)
	})
}

func LexicalDiversity(text string) float64 {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 0
	}
	return round(float64(len(lo.Uniq(words)))/float64(len(words)), 3)
}

// round rounds half to even on the exact binary value, which is what decimal
// formatting does. math.Round would turn 60.25 into 60.3 instead of 60.2.
func round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	return v
}
