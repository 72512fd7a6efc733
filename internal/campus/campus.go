package campus

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"backend-greentransit/internal/emission"
	"backend-greentransit/internal/shared/geo"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the catalog schema range this build understands.
const SupportedVersions = "^1.0.0"

var ErrUnsupportedCatalog = errors.New("unsupported catalog version")

//go:embed catalog.yaml
var embedded []byte

type Point = [2]float64

type Location struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	LocalName   string `json:"localName" yaml:"localName"`
	Position    Point  `json:"position" yaml:"position"`
	Description string `json:"description,omitempty" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
}

type DangerZone struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	LocalName   string  `json:"localName" yaml:"localName"`
	Description string  `json:"description" yaml:"description"`
	Polygon     []Point `json:"polygon" yaml:"polygon"`
	RiskLevel   int     `json:"riskLevel" yaml:"riskLevel"`
}

// Contains reports whether any vertex of path lies inside the zone.
func (z DangerZone) Contains(path []Point) bool {
	for _, p := range path {
		if geo.PointInPolygon(p[0], p[1], z.Polygon) {
			return true
		}
	}
	return false
}

type Route struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Start         string        `json:"start" yaml:"start"`
	End           string        `json:"end" yaml:"end"`
	Path          []Point       `json:"path" yaml:"path"`
	Distance      float64       `json:"distance" yaml:"distance"`
	EstimatedTime float64       `json:"estimatedTime" yaml:"estimatedTime"`
	Type          emission.Mode `json:"type" yaml:"type"`
	SafetyIndex   float64       `json:"safetyIndex" yaml:"safetyIndex"`
	Description   string        `json:"description,omitempty" yaml:"description"`
}

// Reversed returns the same route travelled end to start. Metrics are kept.
func (r Route) Reversed() Route {
	out := r
	out.ID = r.ID + "_reverse"
	out.Name = r.Name + " (reverse)"
	out.Start, out.End = r.End, r.Start
	out.Path = make([]Point, len(r.Path))
	for i, p := range r.Path {
		out.Path[len(r.Path)-1-i] = p
	}
	return out
}

// Catalog is the read-only campus reference data.
type Catalog struct {
	Version     string       `yaml:"version"`
	Locations   []Location   `yaml:"locations"`
	Routes      []Route      `yaml:"routes"`
	DangerZones []DangerZone `yaml:"dangerZones"`
}

// Load parses a YAML catalog and checks its schema version and references.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedCatalog, c.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return nil, err
	}
	if !constraint.Check(v) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrUnsupportedCatalog, v, SupportedVersions)
	}

	for _, r := range c.Routes {
		if _, ok := c.Location(r.Start); !ok {
			return nil, fmt.Errorf("route %s: unknown start %q", r.ID, r.Start)
		}
		if _, ok := c.Location(r.End); !ok {
			return nil, fmt.Errorf("route %s: unknown end %q", r.ID, r.End)
		}
	}
	return &c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(embedded)
	})
	return defaultCatalog, defaultErr
}

func (c *Catalog) Location(id string) (Location, bool) {
	for _, l := range c.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// Between returns catalog routes from start to end in catalog order.
func (c *Catalog) Between(start, end string) []Route {
	var out []Route
	for _, r := range c.Routes {
		if r.Start == start && r.End == end {
			out = append(out, r)
		}
	}
	return out
}

// ZonesAlong lists the danger zones the path passes through.
func (c *Catalog) ZonesAlong(path []Point) []DangerZone {
	var out []DangerZone
	for _, z := range c.DangerZones {
		if z.Contains(path) {
			out = append(out, z)
		}
	}
	return out
}
