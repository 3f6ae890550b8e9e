package types

// ScriptDocument is the hierarchical script as authored upstream:
// optional act descriptors plus an ordered list of scenes, each holding
// ordered beats. Alignment mutates durations and metadata only; order
// is presentation order and is never changed here.
type ScriptDocument struct {
	Title                     string        `json:"title"`
	Logline                   string        `json:"logline,omitempty"`
	VideoSpecs                VideoSpecs    `json:"videoSpecs"`
	Acts                      []Act         `json:"acts,omitempty"`
	Scenes                    []ScriptScene `json:"scenes"`
	Meta                      *Meta         `json:"meta,omitempty"`
	EstimatedTotalDurationSec float64       `json:"estimatedTotalDurationSec,omitempty"`
}

type VideoSpecs struct {
	Format string `json:"format"`
}

type Act struct {
	Label   string `json:"label"`
	Summary string `json:"summary,omitempty"`
}

type ScriptScene struct {
	SceneNumber int    `json:"sceneNumber"`
	Label       string `json:"label,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	Beats       []Beat `json:"beats"`
}

type Beat struct {
	Beat                 string  `json:"beat"`
	Voiceover            string  `json:"voiceover"`
	VisualType           string  `json:"visualType"`
	RecommendedComponent string  `json:"recommendedComponent"`
	DurationSec          float64 `json:"durationSec,omitempty"`
}

type Meta struct {
	Overhead *Overhead `json:"overhead,omitempty"`
}

// Overhead is the gap accounting written back by alignment: how many
// inter-unit gaps exist per level and how many seconds they add.
type Overhead struct {
	BeatGaps         int     `json:"beatGaps"`
	SceneGaps        int     `json:"sceneGaps"`
	ActGaps          int     `json:"actGaps"`
	BeatOverheadSec  float64 `json:"beatOverheadSec"`
	SceneOverheadSec float64 `json:"sceneOverheadSec"`
	ActOverheadSec   float64 `json:"actOverheadSec"`
}

// Segment is the flat unit used by rebalancing and document-level
// duration aggregation. AudioSec > 0 means a measured audio duration
// was supplied and is trusted over estimation.
type Segment struct {
	Title     string   `json:"title,omitempty"`
	Script    string   `json:"script,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
	AudioSec  float64  `json:"audioSec,omitempty"`
}

// BeatOverride assigns an explicit duration to one beat, addressed by
// 1-based scene number and 1-based beat position within that scene.
type BeatOverride struct {
	Scene       int     `json:"scene"`
	Beat        int     `json:"beat"`
	DurationSec float64 `json:"durationSec"`
}

// OverrideBatch is the wire shape for a batch override request.
type OverrideBatch struct {
	Beats []BeatOverride `json:"beats"`
}

type SegmentTiming struct {
	Title             string  `json:"title,omitempty"`
	DurationSeconds   float64 `json:"duration_seconds"`
	EstimatedDuration float64 `json:"estimated_duration"`
}

// VideoDoc is the finalized document the lint engine gates on. It is
// read-only input: rules derive findings and never mutate it.
type VideoDoc struct {
	Story  Story        `json:"story"`
	Scenes []VideoScene `json:"scenes"`
}

type Story struct {
	ControllingIdea   string  `json:"controllingIdea"`
	TargetDurationSec float64 `json:"targetDurationSec"`
	Arc               string  `json:"arc,omitempty"`
}

type VideoScene struct {
	ID          string     `json:"id"`
	Role        string     `json:"role"`
	DurationMs  int        `json:"durationMs"`
	Visuals     []Visual   `json:"visuals,omitempty"`
	Voiceover   Voiceover  `json:"voiceover"`
	Evidence    []Evidence `json:"evidence,omitempty"`
	AccentColor string     `json:"accentColor,omitempty"`
}

// Scene roles the narrative rules reason about.
const (
	RoleHook = "HOOK"
	RoleTurn = "TURN"
	RoleBody = "BODY"
	RoleCTA  = "CTA"
)

// Visual element kinds.
const (
	VisualText    = "TEXT"
	VisualChart   = "CHART"
	VisualMedia   = "MEDIA"
	VisualShape   = "SHAPE"
	VisualCallout = "CALLOUT"
)

type Visual struct {
	Type     string `json:"type"`
	Role     string `json:"role,omitempty"`
	Emphasis bool   `json:"emphasis,omitempty"`
	Animated bool   `json:"animated,omitempty"`
	Content  string `json:"content,omitempty"`
	Source   string `json:"source,omitempty"`
}

type Voiceover struct {
	Text string `json:"text"`
	Cues []Cue  `json:"cues,omitempty"`
}

type Cue struct {
	AtMs int    `json:"atMs"`
	Text string `json:"text,omitempty"`
}

type Evidence struct {
	AtCue  int    `json:"atCue"`
	Source string `json:"source,omitempty"`
}

// RoughBeat is the heuristically-extracted beat/VO unit checked by the
// early lint pass, before a full VideoDoc exists.
type RoughBeat struct {
	Index     int        `json:"index"`
	Pattern   string     `json:"pattern"`
	Title     string     `json:"title,omitempty"`
	Body      string     `json:"body,omitempty"`
	VO        string     `json:"vo"`
	Bars      []BarDatum `json:"bars,omitempty"`
	StatValue string     `json:"statValue,omitempty"`
}

type BarDatum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

type Finding struct {
	Category   string `json:"category"`
	Rule       string `json:"rule"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	SceneID    string `json:"sceneId,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type Report struct {
	ReportID string    `json:"reportId,omitempty"`
	Passed   bool      `json:"passed"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Summary  string    `json:"summary"`
}
