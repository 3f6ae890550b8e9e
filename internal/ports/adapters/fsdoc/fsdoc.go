// Package fsdoc reads and writes the pipeline's JSON documents on the
// local filesystem. Loads are pre-checked with gjson so schema
// problems surface as descriptive errors before unmarshalling; script
// saves patch the original bytes with sjson so fields this tool does
// not model survive a round-trip untouched.
package fsdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lpetrov/scriptgate/internal/types"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) LoadScript(_ context.Context, path string) (types.ScriptDocument, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.ScriptDocument{}, nil, fmt.Errorf("read script: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return types.ScriptDocument{}, nil, fmt.Errorf("script %s: not valid JSON", path)
	}
	if scenes := gjson.GetBytes(raw, "scenes"); !scenes.IsArray() {
		return types.ScriptDocument{}, nil, fmt.Errorf("script %s: required field \"scenes\" is missing or not an array", path)
	}
	var doc types.ScriptDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.ScriptDocument{}, nil, fmt.Errorf("decode script %s: %w", path, err)
	}
	return doc, raw, nil
}

// SaveScript persists the aligned values by patching the original
// bytes: beat durations, the overhead breakdown and the total are
// written in place, everything else is left exactly as authored.
func (a *Adapter) SaveScript(_ context.Context, path string, raw []byte, doc types.ScriptDocument) error {
	out := raw
	var err error
	for si, sc := range doc.Scenes {
		for bi, b := range sc.Beats {
			p := fmt.Sprintf("scenes.%d.beats.%d.durationSec", si, bi)
			if out, err = sjson.SetBytes(out, p, b.DurationSec); err != nil {
				return fmt.Errorf("patch %s: %w", p, err)
			}
		}
	}
	if doc.Meta != nil && doc.Meta.Overhead != nil {
		if out, err = sjson.SetBytes(out, "meta.overhead", doc.Meta.Overhead); err != nil {
			return fmt.Errorf("patch meta.overhead: %w", err)
		}
	}
	if out, err = sjson.SetBytes(out, "estimatedTotalDurationSec", doc.EstimatedTotalDurationSec); err != nil {
		return fmt.Errorf("patch estimatedTotalDurationSec: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

func (a *Adapter) WriteOutline(_ context.Context, path, markdown string) error {
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

func (a *Adapter) LoadVideoDoc(_ context.Context, path string) (types.VideoDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.VideoDoc{}, fmt.Errorf("read video doc: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return types.VideoDoc{}, fmt.Errorf("video doc %s: not valid JSON", path)
	}
	if !gjson.GetBytes(raw, "story").Exists() {
		return types.VideoDoc{}, fmt.Errorf("video doc %s: required field \"story\" is missing", path)
	}
	if scenes := gjson.GetBytes(raw, "scenes"); !scenes.IsArray() {
		return types.VideoDoc{}, fmt.Errorf("video doc %s: required field \"scenes\" is missing or not an array", path)
	}
	var doc types.VideoDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.VideoDoc{}, fmt.Errorf("decode video doc %s: %w", path, err)
	}
	return doc, nil
}

func (a *Adapter) LoadBeats(_ context.Context, path string) ([]types.RoughBeat, error) {
	var beats []types.RoughBeat
	if err := a.loadArray(path, "beats", &beats); err != nil {
		return nil, err
	}
	return beats, nil
}

func (a *Adapter) LoadSegments(_ context.Context, path string) ([]types.Segment, error) {
	var segs []types.Segment
	if err := a.loadArray(path, "segments", &segs); err != nil {
		return nil, err
	}
	return segs, nil
}

// LoadOverrides reads the batch shape {"beats": [{scene, beat, durationSec}]}.
func (a *Adapter) LoadOverrides(_ context.Context, path string) ([]types.BeatOverride, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	if beats := gjson.GetBytes(raw, "beats"); !beats.IsArray() {
		return nil, fmt.Errorf("overrides %s: required field \"beats\" is missing or not an array", path)
	}
	var batch types.OverrideBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("decode overrides %s: %w", path, err)
	}
	return batch.Beats, nil
}

// loadArray reads a file that is either a bare JSON array or an object
// wrapping the array under key.
func (a *Adapter) loadArray(path, key string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%s: not valid JSON", path)
	}
	payload := raw
	if wrapped := gjson.GetBytes(raw, key); wrapped.IsArray() {
		payload = []byte(wrapped.Raw)
	} else if !gjson.ParseBytes(raw).IsArray() {
		return fmt.Errorf("%s: expected an array or an object with %q", path, key)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SaveReport stamps a fresh report ID and writes the report as
// indented JSON.
func (a *Adapter) SaveReport(ctx context.Context, path string, rep types.Report) error {
	rep.ReportID = uuid.NewString()
	return a.SaveJSON(ctx, path, rep)
}

func (a *Adapter) SaveJSON(_ context.Context, path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
