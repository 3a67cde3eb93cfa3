// Package train plans multi-hop interstellar train journeys and renders
// them as pasteable blueprints.
//
// Places are surface or orbit stops identified by their automation ID.
// Links are spaceship routes between two places, identified by the route
// number broadcast on the ship's circuit network, weighted by the delta-v
// the crossing costs. Journeys are planned by total delta-v and expressed
// as train schedules: the train parks in a lobby, boards the ship for each
// hop, and waits at the route stop until the ship's signal-A broadcast
// announces arrival at the hop's destination.
package train

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrUnknownPlace reports a place ID that is not part of the network.
	ErrUnknownPlace = errors.New("train: unknown place")

	// ErrNoRoute reports two places with no chain of links between them.
	ErrNoRoute = errors.New("train: no route between places")

	// ErrDuplicateRoute reports reuse of a route number.
	ErrDuplicateRoute = errors.New("train: duplicate route number")
)

// Link is one spaceship route between two places.
type Link struct {
	A, B   int
	DeltaV float64
}

// Hop is one leg of a planned journey: board the ship running Route and
// ride it to the place To.
type Hop struct {
	Route int
	To    int
}

// Network is the graph of places and the ship routes linking them.
type Network struct {
	places map[int]string
	links  map[int]Link
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		places: make(map[int]string),
		links:  make(map[int]Link),
	}
}

// AddPlace registers a place under its automation ID. Re-adding an ID
// replaces its name.
func (n *Network) AddPlace(id int, name string) {
	n.places[id] = name
}

// AddLink registers a ship route between two known places.
func (n *Network) AddLink(route, a, b int, deltaV float64) error {
	if _, ok := n.places[a]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlace, a)
	}
	if _, ok := n.places[b]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlace, b)
	}
	if a == b {
		return fmt.Errorf("train: route %d links place %d to itself", route, a)
	}
	if _, ok := n.links[route]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateRoute, route)
	}
	n.links[route] = Link{A: a, B: b, DeltaV: deltaV}
	return nil
}

// PlaceName reports the name registered for a place ID.
func (n *Network) PlaceName(id int) (string, bool) {
	name, ok := n.places[id]
	return name, ok
}

// Route plans the cheapest journey from one place to another by total
// delta-v. The result lists the hops in travel order; traveling from a
// place to itself yields no hops. When several route numbers link the same
// pair of places the cheapest one is used.
func (n *Network) Route(from, to int) ([]Hop, error) {
	if _, ok := n.places[from]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlace, from)
	}
	if _, ok := n.places[to]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlace, to)
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for id := range n.places {
		g.AddNode(simple.Node(int64(id)))
	}
	// Cheapest route number per place pair, also used to weight the graph.
	index := make(map[[2]int]int)
	for route, l := range n.links {
		key := pairKey(l.A, l.B)
		if prev, ok := index[key]; ok && n.links[prev].DeltaV <= l.DeltaV {
			continue
		}
		index[key] = route
		g.SetWeightedEdge(g.NewWeightedEdge(
			simple.Node(int64(l.A)), simple.Node(int64(l.B)), l.DeltaV))
	}

	shortest := path.DijkstraFrom(simple.Node(int64(from)), g)
	nodes, _ := shortest.To(int64(to))
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrNoRoute, from, to)
	}

	hops := make([]Hop, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		a, b := int(nodes[i-1].ID()), int(nodes[i].ID())
		hops = append(hops, Hop{Route: index[pairKey(a, b)], To: b})
	}
	return hops, nil
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
