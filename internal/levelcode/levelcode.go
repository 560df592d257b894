// Package levelcode turns holes and replays into short URL-safe strings and
// back. A code is the JSON document, deflated, in unpadded URL base64.
package levelcode

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/playmatatu/golf/internal/golf"
)

// maxDecodedSize caps how much JSON a single code may inflate to.
const maxDecodedSize = 1 << 20

var ErrTooLarge = errors.New("level code expands beyond limit")

// DefaultHole is the practice hole served for an empty code.
func DefaultHole() golf.HoleData {
	return golf.HoleData{
		CollisionObjects: []golf.CollisionObject{{
			Points: []golf.Vec2{
				{X: 200, Y: 350},
				{X: 200, Y: 400},
				{X: 400, Y: 400},
				{X: 400, Y: 350},
			},
			Segments: []golf.Material{golf.Normal, golf.Normal, golf.Normal, golf.Normal},
		}},
		StartPos:   golf.Vec2{X: 250, Y: 250},
		Dimensions: golf.Vec2{X: 600, Y: 600},
	}
}

func EncodeHole(data golf.HoleData) (string, error) {
	return encode(data)
}

// DecodeHole parses and validates a hole code. An empty code yields
// DefaultHole.
func DecodeHole(code string) (golf.HoleData, error) {
	if strings.TrimSpace(code) == "" {
		return DefaultHole(), nil
	}
	var data golf.HoleData
	if err := decode(code, &data); err != nil {
		return golf.HoleData{}, err
	}
	if err := data.Validate(); err != nil {
		return golf.HoleData{}, fmt.Errorf("invalid hole: %w", err)
	}
	return data, nil
}

func EncodeReplay(launches [][]golf.Launch) (string, error) {
	return encode(launches)
}

// DecodeReplay parses a replay code into per-player launch lists.
func DecodeReplay(code string) ([][]golf.Launch, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("empty replay code")
	}
	var launches [][]golf.Launch
	if err := decode(code, &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

func decode(code string, v any) error {
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	raw, err := io.ReadAll(io.LimitReader(r, maxDecodedSize+1))
	if err != nil {
		return fmt.Errorf("inflate: %w", err)
	}
	if len(raw) > maxDecodedSize {
		return ErrTooLarge
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
