package blueprint

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlueprint() *Envelope {
	return &Envelope{
		Blueprint: &Blueprint{
			Item:        "blueprint",
			Label:       "smelter block",
			Description: "32 furnaces and the belts to feed them",
			Entities: []Entity{
				{EntityNumber: 1, Name: "stone-furnace", Position: Position{X: 0, Y: 0}},
				{EntityNumber: 2, Name: "stone-furnace", Position: Position{X: 3, Y: 0}},
				{EntityNumber: 3, Name: "transport-belt", Position: Position{X: 1, Y: 2}, Orientation: 0.25},
			},
			Tiles: []Tile{
				{Name: "stone-path", Position: Position{X: 0, Y: 4}},
				{Name: "stone-path", Position: Position{X: 1, Y: 4}},
			},
			Icons: []Icon{
				{Index: 1, Signal: SignalID{Name: "stone-furnace", Type: "item"}},
			},
			Version: 281479274823680,
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := sampleBlueprint()

	s, err := Encode(env)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(s, "0"), "exchange strings start with the version byte")

	// The remainder must be well-formed base64 with no stray characters.
	_, err = base64.StdEncoding.DecodeString(s[1:])
	require.NoError(t, err)

	decoded, err := Decode(s)
	require.NoError(t, err)
	if diff := cmp.Diff(env, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeBook(t *testing.T) {
	env := &Envelope{
		Book: &Book{
			Item:  "blueprint-book",
			Label: "outpost kit",
			Blueprints: []BookEntry{
				{Index: 0, Blueprint: sampleBlueprint().Blueprint},
				{Index: 1, Book: &Book{
					Item: "blueprint-book",
					Blueprints: []BookEntry{
						{Blueprint: &Blueprint{
							Item:     "blueprint",
							Entities: []Entity{{EntityNumber: 1, Name: "radar", Position: Position{X: 0, Y: 0}}},
						}},
					},
				}},
			},
			Version: 281479274823680,
		},
	}

	s, err := Encode(env)
	require.NoError(t, err)
	decoded, err := Decode(s)
	require.NoError(t, err)
	if diff := cmp.Diff(env, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	// A syntactically valid wrapper around a payload that is not JSON.
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte("{not json"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	badJSON := "0" + base64.StdEncoding.EncodeToString(buf.Bytes())

	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{name: "empty string", input: "", wantErr: ErrEmptyString},
		{name: "wrong version", input: "1abc", wantErr: ErrUnsupportedVersion},
		{name: "bad base64", input: "0!!!not-base64!!!", wantMsg: "base64"},
		{name: "bad zlib", input: "0" + base64.StdEncoding.EncodeToString([]byte("plain text")), wantMsg: "inflate"},
		{name: "bad json", input: badJSON, wantMsg: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestHistogram(t *testing.T) {
	t.Run("single blueprint", func(t *testing.T) {
		got := Histogram(sampleBlueprint())
		want := map[string]int{
			"stone-furnace":  2,
			"transport-belt": 1,
			"stone-path":     2,
		}
		assert.Equal(t, want, got)
	})

	t.Run("nested books", func(t *testing.T) {
		env := &Envelope{
			Book: &Book{
				Blueprints: []BookEntry{
					{Blueprint: sampleBlueprint().Blueprint},
					{Book: &Book{
						Blueprints: []BookEntry{
							{Blueprint: &Blueprint{
								Entities: []Entity{
									{EntityNumber: 1, Name: "stone-furnace", Position: Position{X: 9, Y: 9}},
								},
							}},
						},
					}},
				},
			},
		}
		got := Histogram(env)
		assert.Equal(t, 3, got["stone-furnace"])
		assert.Equal(t, 1, got["transport-belt"])
		assert.Equal(t, 2, got["stone-path"])
	})

	t.Run("nil and empty", func(t *testing.T) {
		assert.Empty(t, Histogram(nil))
		assert.Empty(t, Histogram(&Envelope{}))
	})
}
