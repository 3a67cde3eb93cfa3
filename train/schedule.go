package train

import (
	"fmt"

	"github.com/asithatsite-vol2/factorio-space-tools/blueprint"
)

// Kind selects the wagon type of a consist.
type Kind string

// Wagon kinds.
const (
	KindCargo Kind = "cargo"
	KindFluid Kind = "fluid"
)

// ErrInvalidKind reports a wagon kind other than cargo or fluid.
var ErrInvalidKind = fmt.Errorf("train: kind must be %q or %q", KindCargo, KindFluid)

// lobbyStation is the shared parking stop trains idle at between hops.
const lobbyStation = "-Lobby"

// blueprintVersion is the game version stamp written into generated
// blueprints.
const blueprintVersion = 281479274823680

// PickupStop waits at the named station until the train is full.
func PickupStop(station string) blueprint.ScheduleEntry {
	return blueprint.ScheduleEntry{
		Station: station,
		WaitConditions: []blueprint.WaitCondition{
			{Type: "full", CompareType: "or"},
		},
	}
}

// DropoffStop waits at the named station until the train is empty.
func DropoffStop(station string) blueprint.ScheduleEntry {
	return blueprint.ScheduleEntry{
		Station: station,
		WaitConditions: []blueprint.WaitCondition{
			{Type: "empty", CompareType: "or"},
		},
	}
}

// LobbyStop parks the train at the lobby for a moment so other traffic can
// claim the boarding stops.
func LobbyStop() blueprint.ScheduleEntry {
	return blueprint.ScheduleEntry{
		Station: lobbyStation,
		WaitConditions: []blueprint.WaitCondition{
			{Type: "time", CompareType: "or", Ticks: 60},
		},
	}
}

// ShipStops boards the ship running the given route and rides it until the
// ship's signal-A broadcast reports arrival at dest.
func ShipStops(route, dest int) []blueprint.ScheduleEntry {
	return []blueprint.ScheduleEntry{
		{Station: fmt.Sprintf("Boarding Rt%d", route)},
		{
			Station: fmt.Sprintf("Rt%d", route),
			WaitConditions: []blueprint.WaitCondition{
				{
					Type:        "circuit",
					CompareType: "or",
					Condition: &blueprint.CircuitCondition{
						Comparator:  "=",
						Constant:    dest,
						FirstSignal: &blueprint.SignalID{Name: "signal-A", Type: "virtual"},
					},
				},
			},
		},
	}
}

// HopStops renders a hop sequence as schedule stops, bookended and
// separated by lobby stops.
func HopStops(hops []Hop) []blueprint.ScheduleEntry {
	stops := []blueprint.ScheduleEntry{LobbyStop()}
	for _, h := range hops {
		stops = append(stops, ShipStops(h.Route, h.To)...)
		stops = append(stops, LobbyStop())
	}
	return stops
}

// BuildSchedule plans the full out-and-back schedule for a shuttle between
// two stations: load at the start station, hop to the end place, unload,
// and hop home. The return journey retraces the outbound hops in reverse.
func (n *Network) BuildSchedule(startStation string, startPlace int, endStation string, endPlace int) ([]blueprint.ScheduleEntry, error) {
	there, err := n.Route(startPlace, endPlace)
	if err != nil {
		return nil, err
	}
	back := reverseHops(startPlace, there)

	stops := []blueprint.ScheduleEntry{PickupStop(startStation)}
	stops = append(stops, HopStops(there)...)
	stops = append(stops, DropoffStop(endStation))
	stops = append(stops, HopStops(back)...)
	return stops, nil
}

// reverseHops retraces a hop sequence back to its starting place.
func reverseHops(start int, hops []Hop) []Hop {
	origins := make([]int, len(hops))
	prev := start
	for i, h := range hops {
		origins[i] = prev
		prev = h.To
	}
	back := make([]Hop, 0, len(hops))
	for i := len(hops) - 1; i >= 0; i-- {
		back = append(back, Hop{Route: hops[i].Route, To: origins[i]})
	}
	return back
}

// BuildBlueprint wraps a schedule in the standard shuttle consist: a
// locomotive at each end and four wagons of the requested kind, both
// locomotives bound to the schedule.
func BuildBlueprint(kind Kind, label, description string, stops []blueprint.ScheduleEntry) (*blueprint.Envelope, error) {
	switch kind {
	case KindCargo, KindFluid:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidKind, kind)
	}

	wagon := string(kind) + "-wagon"
	entities := []blueprint.Entity{
		{EntityNumber: 1, Name: "locomotive", Position: blueprint.Position{X: -93, Y: 180}},
	}
	for i := 0; i < 4; i++ {
		entities = append(entities, blueprint.Entity{
			EntityNumber: i + 2,
			Name:         wagon,
			Orientation:  0.5,
			Position:     blueprint.Position{X: -93, Y: 187 + float64(i)*7},
		})
	}
	entities = append(entities, blueprint.Entity{
		EntityNumber: 6,
		Name:         "locomotive",
		Orientation:  0.5,
		Position:     blueprint.Position{X: -93, Y: 215},
	})

	return &blueprint.Envelope{
		Blueprint: &blueprint.Blueprint{
			Item:        "blueprint",
			Label:       label,
			Description: description,
			Entities:    entities,
			Schedules: []blueprint.Schedule{
				{Locomotives: []int{1, 6}, Stops: stops},
			},
			Version: blueprintVersion,
		},
	}, nil
}
