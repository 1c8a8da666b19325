package core

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state shared by stages and entities
type Status uint8

const (
	StatusInactive  Status = iota // ended, not updated
	StatusActive                  // updated and drawn
	StatusPaused                  // drawn only
	StatusTransient               // content defined, updated like active
	StatusFaulted                 // content defined, updated like active
)

var statusNames = [...]string{"inactive", "active", "paused", "transient", "faulted"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// ParseStatus accepts a status name, case-insensitive
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// Kind is the control class of an entity
type Kind uint8

const (
	KindPassive Kind = iota // not bound to any controller
	KindPlayer              // driven by user input
	KindProgram             // driven by program logic (NPC)
)

var kindNames = [...]string{"passive", "player", "program"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind accepts a kind name, case-insensitive
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// Direction is one of the four cardinal facings
// Order matches the screen rotation: right, down, left, up
type Direction uint8

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
	DirCount
)

var (
	dirNames = [DirCount]string{"right", "down", "left", "up"}
	dirDX    = [DirCount]int{1, 0, -1, 0}
	dirDY    = [DirCount]int{0, 1, 0, -1}
)

func (d Direction) String() string {
	if d < DirCount {
		return dirNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Delta returns the unit cell step for the direction
func (d Direction) Delta() Point {
	d %= DirCount
	return Point{X: dirDX[d], Y: dirDY[d]}
}

// Opposite returns the reverse facing
func (d Direction) Opposite() Direction {
	return (d + 2) % DirCount
}

// ParseDirection accepts a direction name, case-insensitive
func ParseDirection(name string) (Direction, error) {
	for i, n := range dirNames {
		if strings.EqualFold(n, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// Ptr returns a pointer to a copy of s, for optional config fields
func (s Status) Ptr() *Status {
	return &s
}
