package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/crevelings/monopoly-backend/internal/apperror"
)

const (
	ElectricCompanyName = "Electric Company"
	WaterWorksName      = "Water Works"

	// unmortgage costs the mortgage value plus this much interest, in percent.
	unmortgageInterestPercent = 10
)

// UtilityTile is a board tile whose rent depends on a dice roll and on how
// many utilities its owner holds.
type UtilityTile struct {
	name            string
	actions         string
	price           int
	rentMultipliers [2]int
	colorGroup      ColorGroup
	mortgageValue   int
	unmortgageValue int

	isMortgaged bool
	owner       string

	announcer Announcer
}

type UtilityOption func(tile *UtilityTile)

// WithAnnouncer routes the messages produced by ExecuteStrategy.
func WithAnnouncer(announcer Announcer) UtilityOption {
	return func(tile *UtilityTile) {
		if announcer != nil {
			tile.announcer = announcer
		}
	}
}

// NewElectricCompany builds the "Electric Company" utility.
func NewElectricCompany(
	actions string,
	price int,
	rentMultipliers [2]int,
	colorGroup ColorGroup,
	mortgageValue int,
	opts ...UtilityOption,
) (*UtilityTile, error) {
	return NewUtilityTile(ElectricCompanyName, actions, price, rentMultipliers, colorGroup, mortgageValue, opts...)
}

func NewUtilityTile(
	name, actions string,
	price int,
	rentMultipliers [2]int,
	colorGroup ColorGroup,
	mortgageValue int,
	opts ...UtilityOption,
) (*UtilityTile, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: empty name", apperror.ErrInvalidTile)
	case price < 0:
		return nil, fmt.Errorf("%w: negative price %d", apperror.ErrInvalidTile, price)
	case mortgageValue < 0:
		return nil, fmt.Errorf("%w: negative mortgage value %d", apperror.ErrInvalidTile, mortgageValue)
	case rentMultipliers[0] <= 0 || rentMultipliers[1] <= 0:
		return nil, fmt.Errorf("%w: rent multipliers %v must be positive", apperror.ErrInvalidTile, rentMultipliers)
	}

	tile := &UtilityTile{
		name:            name,
		actions:         actions,
		price:           price,
		rentMultipliers: rentMultipliers,
		colorGroup:      colorGroup,
		mortgageValue:   mortgageValue,
		unmortgageValue: mortgageValue + mortgageValue*unmortgageInterestPercent/100,
		announcer:       discardAnnouncer{},
	}

	for _, opt := range opts {
		opt(tile)
	}

	return tile, nil
}

func (that *UtilityTile) Name() string {
	return that.name
}

func (that *UtilityTile) Actions() string {
	return that.actions
}

func (that *UtilityTile) Price() int {
	return that.price
}

func (that *UtilityTile) RentMultipliers() [2]int {
	return that.rentMultipliers
}

func (that *UtilityTile) ColorGroup() ColorGroup {
	return that.colorGroup
}

func (that *UtilityTile) MortgageValue() int {
	return that.mortgageValue
}

func (that *UtilityTile) UnmortgageValue() int {
	return that.unmortgageValue
}

func (that *UtilityTile) IsMortgaged() bool {
	return that.isMortgaged
}

// Owner returns the owning player id and whether the tile is owned at all.
func (that *UtilityTile) Owner() (string, bool) {
	return that.owner, that.owner != ""
}

func (that *UtilityTile) IsOwned() bool {
	return that.owner != ""
}

func (that *UtilityTile) IsOwnedBy(playerID string) bool {
	return that.owner != "" && that.owner == playerID
}

// SetOwner records a new owner. An empty id is ignored, so an owned tile never
// goes back to the bank.
func (that *UtilityTile) SetOwner(playerID string) {
	if playerID == "" {
		return
	}

	that.owner = playerID
}

// SetMortgaged only flips the flag, the bank transfer is up to the caller.
func (that *UtilityTile) SetMortgaged(mortgaged bool) error {
	if mortgaged && !that.IsOwned() {
		return fmt.Errorf("%w: cannot mortgage %s", apperror.ErrNoOwner, that.name)
	}

	that.isMortgaged = mortgaged

	return nil
}

// LandOn returns the narrative shown to a player landing on the tile.
func (that *UtilityTile) LandOn() string {
	return that.actions + that.info()
}

func (that *UtilityTile) info() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Property Name: %s\n", that.name)
	fmt.Fprintf(&sb, "Color Set: %s\n", that.colorGroup)
	fmt.Fprintf(&sb, "Purchase Price: $%d\n", that.price)
	sb.WriteString("Rent (without houses/hotels): Depends on dice roll\n")
	fmt.Fprintf(&sb, "If you own 1 Utility: Rent is %d times the amount rolled on the dice.\n", that.rentMultipliers[0])
	fmt.Fprintf(&sb, "If you own 2 Utilities: Rent is %d times the amount rolled on the dice.\n", that.rentMultipliers[1])
	fmt.Fprintf(&sb, "Mortgage Value: $%d", that.mortgageValue)

	return sb.String()
}

// RentDue rolls the dice once and multiplies the total by the multiplier
// matching the owner's utility count. Mortgaged tiles collect nothing.
func (that *UtilityTile) RentDue(utilitiesOwnedByOwner int, dice DiceSource) (int, error) {
	if utilitiesOwnedByOwner < 0 {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidUtilityCount, utilitiesOwnedByOwner)
	}

	if !that.IsOwned() || utilitiesOwnedByOwner == 0 {
		return 0, fmt.Errorf("%w: %s", apperror.ErrNoOwner, that.name)
	}

	if that.isMortgaged {
		return 0, nil
	}

	first, second := dice.Roll()
	total := first + second

	if utilitiesOwnedByOwner == 1 {
		return total * that.rentMultipliers[0], nil
	}

	return total * that.rentMultipliers[1], nil
}

// ExecuteStrategy runs the landing decision for player. Rent collection and
// auctions are left to the turn controller.
func (that *UtilityTile) ExecuteStrategy(ctx context.Context, player PlayerView) error {
	if player.HasProperty(that.name) {
		that.announcer.Say(ctx, fmt.Sprintf("You already own the %s!", that.name))
		return nil
	}

	if that.IsOwned() {
		that.announcer.Say(ctx, fmt.Sprintf("%s already owns the %s!", that.owner, that.name))
		return nil
	}

	that.announcer.Say(ctx, fmt.Sprintf("You can buy the %s for $%d", that.name, that.price))
	that.announcer.Say(ctx, "Or property can be auctioned")

	if err := player.PurchaseProperty(that.name, that.price); err != nil {
		return fmt.Errorf("%w: %s: %w", apperror.ErrPurchaseFailed, that.name, err)
	}

	that.SetOwner(player.PlayerID())
	that.announcer.Say(ctx, fmt.Sprintf("%s bought the %s", player.PlayerID(), that.name))

	return nil
}

type discardAnnouncer struct{}

func (discardAnnouncer) Say(context.Context, string) {}
