package timing

import (
	"math"
	"regexp"
	"strings"

	"github.com/lpetrov/scriptgate/internal/types"
)

const (
	// DefaultWordsPerMinute is a conservative narration pace for a
	// synthetic or human voice reading prepared copy.
	DefaultWordsPerMinute = 150.0
	// DenseWordsPerMinute applies when a segment carries a title, a
	// narrative and bullets at once; denser content is read slower.
	DenseWordsPerMinute = 140.0
	// DefaultBufferSec trails every estimate so audio never gets cut
	// on the last word.
	DefaultBufferSec = 1.5
	// MinSegmentSec is the hard floor for any non-empty narration.
	MinSegmentSec = 3.0
)

var (
	reDisallowed  = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?;:'"()\-]`)
	reSpaces      = regexp.MustCompile(`\s+`)
	reSentenceEnd = regexp.MustCompile(`[.!?]+`)
	rePauseMark   = regexp.MustCompile(`[,;:]`)
)

// Estimate returns the expected spoken duration of text in seconds.
// wpm <= 0 and bufferSec < 0 fall back to defaults. Empty text returns
// the buffer verbatim; anything else is floored at MinSegmentSec and
// rounded UP to one decimal so the estimate never undercuts the audio.
func Estimate(text string, wpm, bufferSec float64) float64 {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	if bufferSec < 0 {
		bufferSec = DefaultBufferSec
	}

	clean := reDisallowed.ReplaceAllString(text, "")
	clean = strings.TrimSpace(reSpaces.ReplaceAllString(clean, " "))
	words := strings.Fields(clean)
	if len(words) == 0 {
		return bufferSec
	}

	base := float64(len(words)) / wpm * 60
	pauses := 0.5*float64(len(reSentenceEnd.FindAllString(clean, -1))) +
		0.2*float64(len(rePauseMark.FindAllString(clean, -1)))

	total := base + pauses + bufferSec
	if total < MinSegmentSec {
		total = MinSegmentSec
	}
	return ceilTenth(total)
}

// EstimateSegment composes a segment's title, script (or narrative)
// and bullets into one narration string before estimating. A segment
// carrying all three reads at the dense pace.
func EstimateSegment(seg types.Segment) float64 {
	body := seg.Script
	if body == "" {
		body = seg.Narrative
	}

	parts := make([]string, 0, 2+len(seg.Bullets))
	if seg.Title != "" {
		parts = append(parts, seg.Title)
	}
	if body != "" {
		parts = append(parts, body)
	}
	for _, b := range seg.Bullets {
		if strings.TrimSpace(b) != "" {
			parts = append(parts, b)
		}
	}

	wpm := DefaultWordsPerMinute
	if seg.Title != "" && body != "" && len(seg.Bullets) > 0 {
		wpm = DenseWordsPerMinute
	}
	return Estimate(strings.Join(parts, " "), wpm, DefaultBufferSec)
}

// EstimateTotal sums segment durations for a whole document, trusting
// a supplied audio duration over estimation whenever one is present.
func EstimateTotal(segs []types.Segment) float64 {
	var total float64
	for _, s := range segs {
		if s.AudioSec > 0 {
			total += s.AudioSec
			continue
		}
		total += EstimateSegment(s)
	}
	return round2(total)
}

func ceilTenth(x float64) float64 {
	return math.Ceil(x*10-1e-9) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
