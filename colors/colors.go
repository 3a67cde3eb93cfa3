// Package colors assigns stable display colors to tags and reports which
// tags are at risk of being confused for one another.
//
// Colors are derived from a hash of the tag, so a tag keeps its color
// across runs and machines with no registry to maintain. Confusion is
// measured perceptually with the CIE94 delta-E metric: pairs below a
// delta-E of roughly 10 are hard to tell apart at a glance.
package colors

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// The hue covers the full wheel; saturation and lightness are restricted
// to a small ladder of mid-range values so every generated color stays
// legible on both light and dark backgrounds.
var (
	saturations = [...]float64{0.35, 0.5, 0.65}
	lightnesses = [...]float64{0.35, 0.5, 0.65}
)

// TagColor returns the display color for a tag. The same tag always yields
// the same color.
func TagColor(tag string) colorful.Color {
	h := fnv.New64a()
	h.Write([]byte(tag))
	sum := h.Sum64()

	hue := float64(sum % 359)
	s := saturations[(sum/359)%uint64(len(saturations))]
	l := lightnesses[(sum/(359*3))%uint64(len(lightnesses))]
	return colorful.Hsl(hue, s, l)
}

// Palette assigns a color to every tag.
func Palette(tags []string) map[string]colorful.Color {
	m := make(map[string]colorful.Color, len(tags))
	for _, tag := range tags {
		m[tag] = TagColor(tag)
	}
	return m
}

// DistanceFunc measures how far apart two colors look.
type DistanceFunc func(a, b colorful.Color) float64

// CIE94 is the default distance metric.
func CIE94(a, b colorful.Color) float64 {
	return a.DistanceCIE94(b)
}

// Confusion pairs a tag with the other tag whose color sits closest to it.
type Confusion struct {
	Tag      string
	Nearest  string
	Distance float64
}

// ConfusionPairs reports, for every tag in the palette, its nearest
// neighbor by color distance. Results are sorted by tag. A nil distance
// falls back to CIE94. A palette with a single tag yields one pair with no
// neighbor and an infinite distance.
func ConfusionPairs(palette map[string]colorful.Color, distance DistanceFunc) []Confusion {
	if distance == nil {
		distance = CIE94
	}

	tags := make([]string, 0, len(palette))
	for tag := range palette {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	pairs := make([]Confusion, 0, len(tags))
	for _, tag := range tags {
		nearest := Confusion{Tag: tag, Distance: math.Inf(1)}
		for _, other := range tags {
			if other == tag {
				continue
			}
			if d := distance(palette[tag], palette[other]); d < nearest.Distance {
				nearest.Nearest = other
				nearest.Distance = d
			}
		}
		pairs = append(pairs, nearest)
	}
	return pairs
}
