// Package content loads YAML level files and builds engine stages from them
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel wraps every structural problem found in a level file
var ErrInvalidLevel = errors.New("invalid level")

// Level is the root of a level file
type Level struct {
	Stages []StageDef `yaml:"stages"`
}

// StageDef describes one stage
type StageDef struct {
	Name     string      `yaml:"name"`
	Timeout  int         `yaml:"timeout"`
	Hook     string      `yaml:"hook"`
	Audio    []string    `yaml:"audio"`
	Images   []string    `yaml:"images"`
	Grids    []GridDef   `yaml:"grids"`
	Entities []EntityDef `yaml:"entities"`
}

// GridDef describes a grid with literal cell data or a generated maze
type GridDef struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Size     float64  `yaml:"size"`
	Data     [][]int  `yaml:"data"`
	Maze     *MazeDef `yaml:"maze"`
	Cache    bool     `yaml:"cache"`
	Frames   int      `yaml:"frames"`
	Behavior string   `yaml:"behavior"`
}

// MazeDef parameters are passed to maze.Generate
type MazeDef struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        int64   `yaml:"seed"`
	Braiding    float64 `yaml:"braiding"`
	OpenBorders bool    `yaml:"open_borders"`
}

// PointDef is a cell coordinate
type PointDef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Placement anchors for entities on maze grids
const (
	AtStart = "start"
	AtEnd   = "end"

	FollowSolution = "solution"
)

// EntityDef describes one entity
// Grid is the index of a grid within the same stage; At and Follow only apply to maze grids
type EntityDef struct {
	X           float64        `yaml:"x"`
	Y           float64        `yaml:"y"`
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	Type        string         `yaml:"type"`
	Color       string         `yaml:"color"`
	Status      string         `yaml:"status"`
	Orientation string         `yaml:"orientation"`
	Speed       float64        `yaml:"speed"`
	Grid        *int           `yaml:"grid"`
	Coord       *PointDef      `yaml:"coord"`
	At          string         `yaml:"at"`
	Path        []PointDef     `yaml:"path"`
	Follow      string         `yaml:"follow"`
	Frames      int            `yaml:"frames"`
	Timeout     int            `yaml:"timeout"`
	Behavior    string         `yaml:"behavior"`
	Control     map[string]any `yaml:"control"`
}

// Load reads and validates a level file
func Load(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes a level document; unknown keys are rejected
func Parse(raw []byte) (*Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var lvl Level
	if err := dec.Decode(&lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if len(l.Stages) == 0 {
		return fmt.Errorf("no stages: %w", ErrInvalidLevel)
	}
	for si, s := range l.Stages {
		for gi, g := range s.Grids {
			if (g.Maze == nil) == (len(g.Data) == 0) {
				return fmt.Errorf("stage %d grid %d needs exactly one of data or maze: %w", si, gi, ErrInvalidLevel)
			}
		}
		for ei, e := range s.Entities {
			if e.Grid == nil {
				if e.Coord != nil || e.At != "" || e.Follow != "" {
					return fmt.Errorf("stage %d entity %d places a cell without a grid: %w", si, ei, ErrInvalidLevel)
				}
				continue
			}
			if *e.Grid < 0 || *e.Grid >= len(s.Grids) {
				return fmt.Errorf("stage %d entity %d grid %d of %d: %w", si, ei, *e.Grid, len(s.Grids), ErrInvalidLevel)
			}
			maze := s.Grids[*e.Grid].Maze != nil
			switch e.At {
			case "":
				if e.Coord == nil {
					return fmt.Errorf("stage %d entity %d bound to a grid without coord or at: %w", si, ei, ErrInvalidLevel)
				}
			case AtStart, AtEnd:
				if !maze {
					return fmt.Errorf("stage %d entity %d at %q needs a maze grid: %w", si, ei, e.At, ErrInvalidLevel)
				}
			default:
				return fmt.Errorf("stage %d entity %d at %q: %w", si, ei, e.At, ErrInvalidLevel)
			}
			if e.Follow != "" && (e.Follow != FollowSolution || !maze) {
				return fmt.Errorf("stage %d entity %d follow %q: %w", si, ei, e.Follow, ErrInvalidLevel)
			}
		}
	}
	return nil
}
