package world

import (
	"slices"

	"github.com/combiner/clicker/internal/core/entity"
)

// PlaceOutcome is the result of a placement request. Every rejection
// leaves the state untouched.
type PlaceOutcome uint8

const (
	Placed PlaceOutcome = iota
	RejectedUnknownKind
	RejectedFunds
	RejectedOccupied
)

func (o PlaceOutcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case RejectedUnknownKind:
		return "unknown_kind"
	case RejectedFunds:
		return "insufficient_funds"
	case RejectedOccupied:
		return "occupied"
	}
	return "unknown"
}

// CanAfford reports whether the balance covers kind's cost.
func (s *State) CanAfford(kind MachineKind) bool {
	spec, ok := s.Catalog.Lookup(kind)
	return ok && s.Balance.CanAfford(spec.Cost)
}

// MachineAt returns the machine occupying t.
func (s *State) MachineAt(t TilePos) (entity.ID, *PlacedMachine, bool) {
	id, ok := s.machineAt[t]
	if !ok {
		return 0, nil, false
	}
	m, ok := s.Machines.Get(id)
	return id, m, ok
}

// SpotAt returns the spot marker on t.
func (s *State) SpotAt(t TilePos) (*Spot, bool) {
	id, ok := s.spotAt[t]
	if !ok {
		return nil, false
	}
	return s.Spots.Get(id)
}

// Place builds a machine of kind on t, paying its cost, and lays down the
// kind's connector spots.
func (s *State) Place(kind MachineKind, t TilePos) (entity.ID, PlaceOutcome) {
	spec, ok := s.Catalog.Lookup(kind)
	if !ok {
		return 0, RejectedUnknownKind
	}
	if !s.Balance.CanAfford(spec.Cost) {
		return 0, RejectedFunds
	}
	if _, taken := s.machineAt[t]; taken {
		return 0, RejectedOccupied
	}
	s.Balance.Spend(spec.Cost)

	id := s.World.Create()
	s.Machines.Insert(id, &PlacedMachine{
		Kind:  kind,
		Tile:  t,
		Timer: NewRepeatingTimer(spec.Period),
	})
	s.machineAt[t] = id

	if sp, ok := s.SpotAt(t); ok {
		sp.Hidden = true
	}
	for _, off := range spec.Spots {
		st := t.Add(off)
		if _, exists := s.spotAt[st]; exists {
			continue
		}
		sid := s.World.Create()
		_, covered := s.machineAt[st]
		s.Spots.Insert(sid, &Spot{Tile: st, Hidden: covered})
		s.spotAt[st] = sid
	}
	return id, Placed
}

// Delete demolishes the machine on t. Spots at the machine's connector
// offsets that no remaining machine lists are despawned; a spot under the
// machine itself is revealed again.
func (s *State) Delete(t TilePos) (MachineKind, bool) {
	id, m, ok := s.MachineAt(t)
	if !ok {
		return KindNone, false
	}
	kind := m.Kind
	delete(s.machineAt, t)
	s.World.DestroyNow(id)

	if sp, ok := s.SpotAt(t); ok {
		sp.Hidden = false
	}
	if spec, ok := s.Catalog.Lookup(kind); ok {
		for _, off := range spec.Spots {
			st := t.Add(off)
			sid, exists := s.spotAt[st]
			if !exists || s.spotWanted(st) {
				continue
			}
			delete(s.spotAt, st)
			s.World.DestroyNow(sid)
		}
	}
	return kind, true
}

// spotWanted reports whether any standing machine lists t as a connector.
func (s *State) spotWanted(t TilePos) bool {
	wanted := false
	s.Machines.Each(func(_ entity.ID, m *PlacedMachine) {
		if wanted {
			return
		}
		spec, ok := s.Catalog.Lookup(m.Kind)
		if ok && slices.Contains(spec.Spots, t.Sub(m.Tile)) {
			wanted = true
		}
	})
	return wanted
}
