package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lpetrov/scriptgate/internal/types"
)

const (
	// Scene duration ceilings depend on the target cut length: shorts
	// need tighter scenes than longer pieces.
	shortPieceTargetSec  = 30.0
	shortSceneCeilingSec = 20.0
	longSceneCeilingSec  = 28.0
	sceneMinimumSec      = 3.0
	meanSceneCeilingSec  = 15.0

	maxFocalVisuals = 3
	maxTextDensity  = 200
	turnCutoffFrac  = 0.40
)

var (
	reProvMarker = regexp.MustCompile(`\[prov:[^\]]*\]`)
	// Forward-looking closers that stand in for an explicit CTA scene.
	ctaWords = []string{"next", "start", "begin"}
)

func narrativeRules(doc types.VideoDoc) []types.Finding {
	var out []types.Finding

	hasHook := false
	for _, sc := range doc.Scenes {
		if sc.Role == types.RoleHook {
			hasHook = true
			break
		}
	}
	if !hasHook {
		out = append(out, errf("narrative", "hook_required", "",
			"no scene carries role HOOK",
			"open with a HOOK scene that earns attention in the first seconds"))
	}

	totalMs := 0
	for _, sc := range doc.Scenes {
		totalMs += sc.DurationMs
	}

	turnIdx := -1
	cumMs := 0
	for i, sc := range doc.Scenes {
		cumMs += sc.DurationMs
		if sc.Role == types.RoleTurn {
			turnIdx = i
			break
		}
	}
	if turnIdx < 0 {
		out = append(out, errf("narrative", "turn_required", "",
			"no scene carries role TURN",
			"add a TURN scene where the piece pivots from setup to insight"))
	} else if totalMs > 0 && float64(cumMs) > turnCutoffFrac*float64(totalMs) {
		out = append(out, warnf("narrative", "turn_timing", doc.Scenes[turnIdx].ID,
			fmt.Sprintf("TURN lands at %.0f%% of runtime; aim for the first %.0f%%",
				100*float64(cumMs)/float64(totalMs), 100*turnCutoffFrac),
			"move the TURN earlier or trim the setup scenes before it"))
	}

	if !hasCallToAction(doc) {
		out = append(out, errf("narrative", "cta_required", "",
			"no CTA scene and the closing voiceover has no forward-looking language",
			"end with a CTA scene or close on what the viewer should do next"))
	}

	return out
}

func hasCallToAction(doc types.VideoDoc) bool {
	for _, sc := range doc.Scenes {
		if sc.Role == types.RoleCTA {
			return true
		}
	}
	if len(doc.Scenes) == 0 {
		return false
	}
	closing := strings.ToLower(doc.Scenes[len(doc.Scenes)-1].Voiceover.Text)
	for _, w := range ctaWords {
		if strings.Contains(closing, w) {
			return true
		}
	}
	return false
}

func pacingRules(doc types.VideoDoc) []types.Finding {
	var out []types.Finding

	ceiling := longSceneCeilingSec
	if doc.Story.TargetDurationSec <= shortPieceTargetSec {
		ceiling = shortSceneCeilingSec
	}

	var totalSec float64
	for _, sc := range doc.Scenes {
		durSec := float64(sc.DurationMs) / 1000
		totalSec += durSec
		if durSec > ceiling {
			out = append(out, errf("pacing", "scene_duration", sc.ID,
				fmt.Sprintf("scene runs %.1fs, over the %.0fs ceiling", durSec, ceiling),
				"split the scene or cut narration"))
		} else if durSec < sceneMinimumSec {
			out = append(out, warnf("pacing", "scene_minimum", sc.ID,
				fmt.Sprintf("scene runs %.1fs, under %.0fs", durSec, sceneMinimumSec),
				"merge it into a neighbor or give it room to land"))
		}
	}

	if n := len(doc.Scenes); n > 0 {
		if mean := totalSec / float64(n); mean > meanSceneCeilingSec {
			out = append(out, warnf("pacing", "mean_duration", "",
				fmt.Sprintf("mean scene duration %.1fs exceeds %.0fs", mean, meanSceneCeilingSec),
				"break long scenes up to keep the cut moving"))
		}
	}

	return out
}

func designRules(doc types.VideoDoc) []types.Finding {
	var out []types.Finding

	for _, sc := range doc.Scenes {
		focal := 0
		accents := 0
		textChars := 0
		for _, v := range sc.Visuals {
			switch v.Type {
			case types.VisualChart:
				focal++
				if v.Emphasis {
					accents++
				}
			case types.VisualMedia:
				focal++
			case types.VisualText:
				if v.Role == "title" {
					focal++
				}
				textChars += len(v.Content)
			case types.VisualShape:
				if v.Animated {
					accents++
				}
			case types.VisualCallout:
				accents++
			}
		}

		if focal > maxFocalVisuals {
			out = append(out, errf("design", "focal_density", sc.ID,
				fmt.Sprintf("%d focal visuals compete for attention (max %d)", focal, maxFocalVisuals),
				"keep one chart or media element per moment"))
		}
		if accents > 1 && sc.AccentColor == "" {
			out = append(out, warnf("design", "accent_consistency", sc.ID,
				fmt.Sprintf("%d accent treatments with no unifying accent color", accents),
				"set accentColor so emphasis reads as one system"))
		}
		if textChars > maxTextDensity {
			out = append(out, warnf("design", "text_density", sc.ID,
				fmt.Sprintf("%d characters of on-screen text (max %d)", textChars, maxTextDensity),
				"move detail into the voiceover"))
		}
	}

	return out
}

func evidenceRules(doc types.VideoDoc) []types.Finding {
	var out []types.Finding

	for _, sc := range doc.Scenes {
		markers := len(reProvMarker.FindAllString(sc.Voiceover.Text, -1))
		if markers != len(sc.Evidence) {
			out = append(out, errf("evidence", "provenance_mismatch", sc.ID,
				fmt.Sprintf("%d provenance markers in voiceover vs %d evidence entries", markers, len(sc.Evidence)),
				"every [prov:...] marker needs exactly one evidence entry and vice versa"))
		}
		for i, ev := range sc.Evidence {
			if ev.AtCue < 0 || ev.AtCue >= len(sc.Voiceover.Cues) {
				out = append(out, errf("evidence", "evidence_timing", sc.ID,
					fmt.Sprintf("evidence[%d] references cue %d but the scene has %d cues", i, ev.AtCue, len(sc.Voiceover.Cues)),
					"point atCue at an existing voiceover cue"))
			}
		}
	}

	return out
}

func accessibilityRules(doc types.VideoDoc) []types.Finding {
	var out []types.Finding

	for _, sc := range doc.Scenes {
		hasText := false
		darkBackground := false
		for _, v := range sc.Visuals {
			if v.Type == types.VisualText {
				hasText = true
			}
			if v.Role == "background" &&
				(strings.Contains(strings.ToLower(v.Content), "dark") ||
					strings.Contains(strings.ToLower(v.Source), "dark")) {
				darkBackground = true
			}
			if v.Type == types.VisualMedia && !strings.Contains(strings.ToLower(v.Source), "alt") {
				out = append(out, warnf("accessibility", "media_alt_text", sc.ID,
					"media visual has no alt marker in its source",
					"attach alt text so screen readers can describe the media"))
			}
		}

		// Coarse contrast heuristic over color names, not WCAG math.
		if hasText && strings.Contains(strings.ToLower(sc.AccentColor), "light") && !darkBackground {
			out = append(out, warnf("accessibility", "color_contrast", sc.ID,
				"light accent color with text and no dark background",
				"darken the background or pick a higher-contrast accent"))
		}
	}

	return out
}
