package entity

import "context"

// DiceSource produces one roll of two independent six-sided dice.
type DiceSource interface {
	Roll() (int, int)
}

// PlayerView is the part of a player a tile needs when somebody lands on it.
type PlayerView interface {
	PlayerID() string
	HasProperty(name string) bool
	PurchaseProperty(name string, price int) error
}

// Announcer emits human-readable messages about landing outcomes.
type Announcer interface {
	Say(ctx context.Context, message string)
}

// LandingBehavior is implemented by every tile kind a player can land on.
type LandingBehavior interface {
	Name() string
	LandOn() string
	ExecuteStrategy(ctx context.Context, player PlayerView) error
}
