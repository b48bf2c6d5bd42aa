package metadata

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionCheckOut Direction = "CHECK_OUT"
	DirectionCheckIn  Direction = "CHECK_IN"
)

func NewDirection(value string) (Direction, error) {
	direction := Direction(strings.ToUpper(strings.TrimSpace(value)))
	if !direction.IsValid() {
		return "", fmt.Errorf("invalid direction: %s, only valid values are: %s, %s", value, DirectionCheckOut, DirectionCheckIn)
	}
	return direction, nil
}

func (d Direction) IsValid() bool {
	switch d {
	case DirectionCheckOut, DirectionCheckIn:
		return true
	default:
		return false
	}
}

// RequiredStatus is the status an asset must have before the operation.
func (d Direction) RequiredStatus() AssetStatus {
	if d == DirectionCheckIn {
		return StatusCheckedOut
	}
	return StatusAvailable
}

// ResultingStatus is the status an asset has once the operation is committed.
func (d Direction) ResultingStatus() AssetStatus {
	if d == DirectionCheckIn {
		return StatusAvailable
	}
	return StatusCheckedOut
}

func (d Direction) String() string {
	return string(d)
}
