package formation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrEmptyCatalog = errors.New("formation catalog has no formations")

type vocabulary struct {
	Run  []string `yaml:"run"`
	Pass []string `yaml:"pass"`
	All  []string `yaml:"all"`
}

type catalogFile struct {
	Formations  map[diagram.ODK]map[string][]diagram.FormationSlot `yaml:"formations"`
	Assignments map[string]vocabulary                              `yaml:"assignments"`
	Aliases     map[string]string                                  `yaml:"aliases"`
}

// Catalog is the static formation template table and assignment
// vocabulary. It is read-only after construction.
type Catalog struct {
	formations  map[diagram.ODK]map[string][]diagram.FormationSlot
	assignments map[string]vocabulary
	aliases     map[string]string
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded formation catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path yields Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formation catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse formation catalog: %w", err)
	}
	if len(f.Formations) == 0 {
		return nil, ErrEmptyCatalog
	}

	for odk, byName := range f.Formations {
		if !odk.Valid() {
			return nil, fmt.Errorf("unknown category %q in formation catalog", odk)
		}
		for name, slots := range byName {
			for i, s := range slots {
				if strings.TrimSpace(s.Position) == "" {
					return nil, fmt.Errorf("formation %s/%s slot %d has no position", odk, name, i)
				}
			}
		}
	}

	c := &Catalog{
		formations:  f.Formations,
		assignments: make(map[string]vocabulary, len(f.Assignments)),
		aliases:     make(map[string]string, len(f.Aliases)),
	}
	for k, v := range f.Assignments {
		c.assignments[normalize(k)] = v
	}
	for k, v := range f.Aliases {
		c.aliases[normalize(k)] = normalize(v)
	}
	return c, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Formation implements diagram.FormationLookup.
func (c *Catalog) Formation(odk diagram.ODK, name string) ([]diagram.FormationSlot, bool) {
	slots, ok := c.formations[odk][name]
	if !ok {
		return nil, false
	}
	return slices.Clone(slots), true
}

// Names lists the formation names of a category, sorted.
func (c *Catalog) Names(odk diagram.ODK) []string {
	names := make([]string, 0, len(c.formations[odk]))
	for name := range c.formations[odk] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssignmentOptions implements diagram.AssignmentLookup. Unknown positions
// get an empty list.
func (c *Catalog) AssignmentOptions(position string, playType diagram.CoarsePlayType) []string {
	key := normalize(position)
	v, ok := c.assignments[key]
	if !ok {
		alias, found := c.aliases[key]
		if !found {
			return []string{}
		}
		if v, ok = c.assignments[alias]; !ok {
			return []string{}
		}
	}

	var opts []string
	switch {
	case len(v.All) > 0:
		opts = v.All
	case playType == diagram.CoarseRun:
		opts = v.Run
	default:
		opts = v.Pass
	}
	if opts == nil {
		return []string{}
	}
	return slices.Clone(opts)
}
