// Package blueprint encodes and decodes Factorio blueprint exchange strings.
//
// An exchange string is a version byte ('0') followed by the base64 encoding
// of the zlib-deflated, minified JSON blueprint structure. The package models
// the subset of the format the toolkit produces and inspects: blueprints,
// blueprint books, entities, tiles and train schedules.
package blueprint

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zlib"
)

// exchangeVersion is the leading byte of every supported exchange string.
const exchangeVersion = '0'

var (
	// ErrUnsupportedVersion reports an exchange string whose version byte
	// is not '0'.
	ErrUnsupportedVersion = errors.New("blueprint: unsupported exchange string version")

	// ErrEmptyString reports an empty exchange string.
	ErrEmptyString = errors.New("blueprint: empty exchange string")
)

// Envelope is the top level of the exchange format: exactly one of the
// fields is set.
type Envelope struct {
	Blueprint *Blueprint `json:"blueprint,omitempty"`
	Book      *Book      `json:"blueprint_book,omitempty"`
}

// Book is a blueprint book, a container of blueprints and nested books.
type Book struct {
	Item        string      `json:"item,omitempty"`
	Label       string      `json:"label,omitempty"`
	Blueprints  []BookEntry `json:"blueprints,omitempty"`
	ActiveIndex int         `json:"active_index,omitempty"`
	Version     uint64      `json:"version,omitempty"`
}

// BookEntry is one slot of a book: a blueprint or a nested book.
type BookEntry struct {
	Index     int        `json:"index,omitempty"`
	Blueprint *Blueprint `json:"blueprint,omitempty"`
	Book      *Book      `json:"blueprint_book,omitempty"`
}

// Blueprint is a single placeable blueprint.
type Blueprint struct {
	Item        string     `json:"item,omitempty"`
	Label       string     `json:"label,omitempty"`
	Description string     `json:"description,omitempty"`
	Entities    []Entity   `json:"entities,omitempty"`
	Tiles       []Tile     `json:"tiles,omitempty"`
	Icons       []Icon     `json:"icons,omitempty"`
	Schedules   []Schedule `json:"schedules,omitempty"`
	Version     uint64     `json:"version,omitempty"`
}

// Position is a map position in tiles.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is a placed entity.
type Entity struct {
	EntityNumber int      `json:"entity_number"`
	Name         string   `json:"name"`
	Position     Position `json:"position"`
	Orientation  float64  `json:"orientation,omitempty"`
}

// Tile is a placed tile.
type Tile struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// SignalID names a circuit network signal.
type SignalID struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Icon is one of a blueprint's icon slots.
type Icon struct {
	Index  int      `json:"index"`
	Signal SignalID `json:"signal"`
}

// Schedule binds a train schedule to the locomotives that run it.
type Schedule struct {
	Locomotives []int           `json:"locomotives"`
	Stops       []ScheduleEntry `json:"schedule"`
}

// ScheduleEntry is one station stop of a train schedule.
type ScheduleEntry struct {
	Station        string          `json:"station"`
	WaitConditions []WaitCondition `json:"wait_conditions,omitempty"`
}

// WaitCondition keeps a train at a stop until it is met.
type WaitCondition struct {
	Type        string            `json:"type"`
	CompareType string            `json:"compare_type,omitempty"`
	Ticks       int               `json:"ticks,omitempty"`
	Condition   *CircuitCondition `json:"condition,omitempty"`
}

// CircuitCondition compares a circuit signal against a constant.
type CircuitCondition struct {
	Comparator  string    `json:"comparator,omitempty"`
	Constant    int       `json:"constant,omitempty"`
	FirstSignal *SignalID `json:"first_signal,omitempty"`
}

// Decode parses an exchange string into its blueprint structure.
func Decode(s string) (*Envelope, error) {
	if s == "" {
		return nil, ErrEmptyString
	}
	if s[0] != exchangeVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s[0])
	}
	compressed, err := base64.StdEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, fmt.Errorf("blueprint: decode base64: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("blueprint: inflate: %w", err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("blueprint: inflate: %w", err)
	}
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("blueprint: parse: %w", err)
	}
	return &env, nil
}

// Encode renders a blueprint structure as an exchange string suitable for
// pasting into the game.
func Encode(env *Envelope) (string, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("blueprint: marshal: %w", err)
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("blueprint: deflate: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("blueprint: deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("blueprint: deflate: %w", err)
	}
	return "0" + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Histogram counts entities and tiles by name across the envelope,
// recursing through nested blueprint books.
func Histogram(env *Envelope) map[string]int {
	counts := make(map[string]int)
	if env == nil {
		return counts
	}
	countBlueprint(env.Blueprint, counts)
	countBook(env.Book, counts)
	return counts
}

func countBook(b *Book, counts map[string]int) {
	if b == nil {
		return
	}
	for _, entry := range b.Blueprints {
		countBlueprint(entry.Blueprint, counts)
		countBook(entry.Book, counts)
	}
}

func countBlueprint(bp *Blueprint, counts map[string]int) {
	if bp == nil {
		return
	}
	for _, e := range bp.Entities {
		counts[e.Name]++
	}
	for _, t := range bp.Tiles {
		counts[t.Name]++
	}
}
