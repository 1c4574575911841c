package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownColorGroup = errors.New("unknown color group")

// ColorGroup identifies the set a board tile belongs to.
type ColorGroup int

const (
	NoColorGroup ColorGroup = iota
	Brown
	LightBlue
	Pink
	Orange
	Red
	Yellow
	Green
	DarkBlue
	Railroad
	Utility
)

var colorGroupNames = map[ColorGroup]string{
	NoColorGroup: "NONE",
	Brown:        "BROWN",
	LightBlue:    "LIGHT_BLUE",
	Pink:         "PINK",
	Orange:       "ORANGE",
	Red:          "RED",
	Yellow:       "YELLOW",
	Green:        "GREEN",
	DarkBlue:     "DARK_BLUE",
	Railroad:     "RAILROAD",
	Utility:      "UTILITY",
}

func (that ColorGroup) String() string {
	if name, ok := colorGroupNames[that]; ok {
		return name
	}

	return fmt.Sprintf("ColorGroup(%d)", int(that))
}

// ParseColorGroup accepts the names printed by String, case-insensitively,
// with either dashes or underscores as separators.
func ParseColorGroup(value string) (ColorGroup, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", "_"))

	for group, name := range colorGroupNames {
		if name == normalized {
			return group, nil
		}
	}

	return NoColorGroup, fmt.Errorf("%w: %q", ErrUnknownColorGroup, value)
}
