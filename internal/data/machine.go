package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/combiner/clicker/internal/world"
)

//go:embed yaml/machine_list.yaml
var defaultMachineList []byte

// SpotOffset is a connector position relative to the machine tile.
type SpotOffset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// MachineEntry is one row of machine_list.yaml.
type MachineEntry struct {
	Kind   string        `yaml:"kind"`
	Name   string        `yaml:"name"`
	Cost   int64         `yaml:"cost"`
	Period time.Duration `yaml:"period"`
	Spots  []SpotOffset  `yaml:"spots"`
}

// MachineCatalog holds the static spec of every machine kind.
type MachineCatalog struct {
	specs map[world.MachineKind]world.MachineSpec
	order []world.MachineKind
}

// LoadMachineCatalog loads a machine_list.yaml from disk.
func LoadMachineCatalog(path string) (*MachineCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read machine list: %w", err)
	}
	return ParseMachineCatalog(raw)
}

// DefaultMachineCatalog returns the catalog compiled into the binary.
func DefaultMachineCatalog() (*MachineCatalog, error) {
	return ParseMachineCatalog(defaultMachineList)
}

// ParseMachineCatalog decodes and validates a machine list.
func ParseMachineCatalog(raw []byte) (*MachineCatalog, error) {
	var entries []MachineEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse machine list: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("machine list is empty")
	}
	c := &MachineCatalog{
		specs: make(map[world.MachineKind]world.MachineSpec, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		kind, ok := world.ParseKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("machine %d: unknown kind %q", i, e.Kind)
		}
		if _, dup := c.specs[kind]; dup {
			return nil, fmt.Errorf("machine %d: duplicate kind %q", i, e.Kind)
		}
		if e.Period <= 0 {
			return nil, fmt.Errorf("machine %q: period must be positive, got %v", e.Kind, e.Period)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("machine %q: negative cost %d", e.Kind, e.Cost)
		}
		spec := world.MachineSpec{
			Kind:   kind,
			Name:   e.Name,
			Cost:   e.Cost,
			Period: e.Period,
			Spots:  make([]world.TilePos, 0, len(e.Spots)),
		}
		if spec.Name == "" {
			spec.Name = e.Kind
		}
		for _, o := range e.Spots {
			spec.Spots = append(spec.Spots, world.Tile(o.X, o.Y))
		}
		c.specs[kind] = spec
		c.order = append(c.order, kind)
	}
	return c, nil
}

// Lookup returns the spec for kind.
func (c *MachineCatalog) Lookup(kind world.MachineKind) (world.MachineSpec, bool) {
	s, ok := c.specs[kind]
	return s, ok
}

// All returns the specs in file order, which is also shop order.
func (c *MachineCatalog) All() []world.MachineSpec {
	out := make([]world.MachineSpec, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.specs[k])
	}
	return out
}

// Count returns the number of machine kinds loaded.
func (c *MachineCatalog) Count() int {
	return len(c.specs)
}
