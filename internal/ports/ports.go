package ports

import (
	"context"

	"github.com/lpetrov/scriptgate/internal/types"
)

// DocStore is the boundary to wherever documents actually live. The
// core never touches the filesystem directly; loading, validation of
// required wire fields, and persistence all happen behind this
// interface. LoadScript returns the raw bytes alongside the typed
// document so saves can patch the original and keep unknown upstream
// fields intact.
type DocStore interface {
	LoadScript(ctx context.Context, path string) (types.ScriptDocument, []byte, error)
	SaveScript(ctx context.Context, path string, raw []byte, doc types.ScriptDocument) error
	WriteOutline(ctx context.Context, path, markdown string) error

	LoadVideoDoc(ctx context.Context, path string) (types.VideoDoc, error)
	LoadBeats(ctx context.Context, path string) ([]types.RoughBeat, error)
	LoadSegments(ctx context.Context, path string) ([]types.Segment, error)
	LoadOverrides(ctx context.Context, path string) ([]types.BeatOverride, error)

	SaveReport(ctx context.Context, path string, rep types.Report) error
	SaveJSON(ctx context.Context, path string, v any) error
}
