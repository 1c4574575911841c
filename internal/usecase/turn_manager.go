package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crevelings/monopoly-backend/internal/apperror"
	"github.com/crevelings/monopoly-backend/internal/entity"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrTileNotFound     = errors.New("tile not found")
	ErrNotTileOwner     = errors.New("player does not own the tile")
	ErrAlreadyMortgaged = errors.New("tile is already mortgaged")
	ErrNotMortgaged     = errors.New("tile is not mortgaged")
	ErrSelfCreditor     = errors.New("player cannot be their own creditor")
)

const (
	OutcomeAlreadyOwned   = "already_owned"
	OutcomeMortgaged      = "mortgaged"
	OutcomePurchased      = "purchased"
	OutcomePurchaseFailed = "purchase_failed"
	OutcomeRentPaid       = "rent_paid"
)

// LandingResult describes what happened when a player landed on a utility.
type LandingResult struct {
	PlayerID  string `json:"player_id"`
	TileName  string `json:"tile_name"`
	Narrative string `json:"narrative"`
	Outcome   string `json:"outcome"`
	OwnerID   string `json:"owner_id,omitempty"`
	Rent      int    `json:"rent,omitempty"`
}

// TurnManager is the turn controller around utility tiles: it runs the
// landing strategy, collects rent and moves mortgage money.
type TurnManager struct {
	logger    *slog.Logger
	announcer entity.Announcer
	dice      entity.DiceSource

	tiles   []*entity.UtilityTile
	players map[string]*entity.Player
}

func NewTurnManager(
	logger *slog.Logger,
	announcer entity.Announcer,
	dice entity.DiceSource,
	tiles ...*entity.UtilityTile,
) *TurnManager {
	return &TurnManager{
		logger:    logger.With("component", "turn-manager"),
		announcer: announcer,
		dice:      dice,
		tiles:     tiles,
		players:   make(map[string]*entity.Player),
	}
}

func (that *TurnManager) AddPlayer(player *entity.Player) {
	that.players[player.ID] = player
}

func (that *TurnManager) Player(id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}

	return player, nil
}

func (that *TurnManager) Tile(name string) (*entity.UtilityTile, error) {
	for _, tile := range that.tiles {
		if tile.Name() == name {
			return tile, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrTileNotFound, name)
}

func (that *TurnManager) Tiles() []*entity.UtilityTile {
	return that.tiles
}

// UtilitiesOwnedBy counts the utilities on the board held by ownerID.
func (that *TurnManager) UtilitiesOwnedBy(ownerID string) int {
	count := 0
	for _, tile := range that.tiles {
		if tile.ColorGroup() == entity.Utility && tile.IsOwnedBy(ownerID) {
			count++
		}
	}

	return count
}

// LandOnUtility plays out a landing of playerID on tileName. A purchase the
// player cannot afford is reported through the outcome, not as an error.
func (that *TurnManager) LandOnUtility(ctx context.Context, playerID, tileName string) (*LandingResult, error) {
	log := that.logger.With("method", "LandOnUtility", "playerID", playerID, "tile", tileName)

	player, err := that.Player(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	tile, err := that.Tile(tileName)
	if err != nil {
		return nil, fmt.Errorf("failed to get tile: %w", err)
	}

	result := &LandingResult{
		PlayerID:  playerID,
		TileName:  tileName,
		Narrative: tile.LandOn(),
	}
	that.announcer.Say(ctx, result.Narrative)

	ownedBefore := tile.IsOwned()

	err = tile.ExecuteStrategy(ctx, player)
	if errors.Is(err, apperror.ErrPurchaseFailed) {
		log.Info("purchase failed, tile goes to auction", "error", err)
		that.announcer.Say(ctx, fmt.Sprintf("%s cannot afford the %s, it goes to auction", playerID, tileName))

		result.Outcome = OutcomePurchaseFailed

		return result, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to execute landing strategy: %w", err)
	}

	ownerID, _ := tile.Owner()
	result.OwnerID = ownerID

	switch {
	case !ownedBefore:
		result.Outcome = OutcomePurchased
		log.Info("utility purchased", "price", tile.Price())

		return result, nil
	case ownerID == playerID:
		result.Outcome = OutcomeAlreadyOwned

		return result, nil
	}

	rent, err := that.collectRent(ctx, player, tile)
	if err != nil {
		return nil, err
	}

	if tile.IsMortgaged() {
		result.Outcome = OutcomeMortgaged

		return result, nil
	}

	result.Outcome = OutcomeRentPaid
	result.Rent = rent

	return result, nil
}

func (that *TurnManager) collectRent(ctx context.Context, player *entity.Player, tile *entity.UtilityTile) (int, error) {
	log := that.logger.With("method", "collectRent", "playerID", player.ID, "tile", tile.Name())

	ownerID, _ := tile.Owner()

	owner, err := that.Player(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get tile owner: %w", err)
	}

	rent, err := tile.RentDue(that.UtilitiesOwnedBy(ownerID), that.dice)
	if err != nil {
		return 0, fmt.Errorf("failed to compute rent: %w", err)
	}

	if tile.IsMortgaged() {
		that.announcer.Say(ctx, fmt.Sprintf("The %s is mortgaged, no rent is due", tile.Name()))
		return 0, nil
	}

	if err = player.Pay(rent); err != nil {
		return 0, fmt.Errorf("failed to pay rent of $%d to %s: %w", rent, ownerID, err)
	}

	owner.Receive(rent)

	that.announcer.Say(ctx, fmt.Sprintf("%s paid $%d rent to %s", player.ID, rent, ownerID))
	log.Info("rent paid", "owner", ownerID, "rent", rent)

	return rent, nil
}

// Mortgage hands the tile to the bank, paying its mortgage value to the owner.
func (that *TurnManager) Mortgage(ctx context.Context, playerID, tileName string) error {
	player, tile, err := that.ownedTile(playerID, tileName)
	if err != nil {
		return err
	}

	if tile.IsMortgaged() {
		return fmt.Errorf("%w: %s", ErrAlreadyMortgaged, tileName)
	}

	if err = tile.SetMortgaged(true); err != nil {
		return fmt.Errorf("failed to mortgage tile: %w", err)
	}

	player.Receive(tile.MortgageValue())
	that.announcer.Say(ctx, fmt.Sprintf("%s mortgaged the %s for $%d", playerID, tileName, tile.MortgageValue()))

	return nil
}

// Unmortgage buys the tile back from the bank at its unmortgage value.
func (that *TurnManager) Unmortgage(ctx context.Context, playerID, tileName string) error {
	player, tile, err := that.ownedTile(playerID, tileName)
	if err != nil {
		return err
	}

	if !tile.IsMortgaged() {
		return fmt.Errorf("%w: %s", ErrNotMortgaged, tileName)
	}

	if err = player.Pay(tile.UnmortgageValue()); err != nil {
		return fmt.Errorf("failed to unmortgage %s: %w", tileName, err)
	}

	if err = tile.SetMortgaged(false); err != nil {
		return fmt.Errorf("failed to unmortgage tile: %w", err)
	}

	that.announcer.Say(ctx, fmt.Sprintf("%s lifted the mortgage on the %s for $%d", playerID, tileName, tile.UnmortgageValue()))

	return nil
}

// DeclareBankruptcy takes debtorID off the table and hands their cash and
// utilities to creditorID. Mortgaged utilities stay mortgaged with the creditor.
func (that *TurnManager) DeclareBankruptcy(ctx context.Context, debtorID, creditorID string) error {
	log := that.logger.With("method", "DeclareBankruptcy", "debtor", debtorID, "creditor", creditorID)

	if debtorID == creditorID {
		return fmt.Errorf("%w: %s", ErrSelfCreditor, debtorID)
	}

	debtor, err := that.Player(debtorID)
	if err != nil {
		return fmt.Errorf("failed to get debtor: %w", err)
	}

	creditor, err := that.Player(creditorID)
	if err != nil {
		return fmt.Errorf("failed to get creditor: %w", err)
	}

	transferred := make([]string, 0, len(that.tiles))

	for _, tile := range that.tiles {
		if !tile.IsOwnedBy(debtorID) {
			continue
		}

		tile.SetOwner(creditorID)
		debtor.RemoveProperty(tile.Name())
		creditor.Properties = append(creditor.Properties, tile.Name())
		transferred = append(transferred, tile.Name())
	}

	cash := debtor.Balance
	debtor.Balance = 0
	creditor.Receive(cash)

	delete(that.players, debtorID)

	that.announcer.Say(ctx, fmt.Sprintf("%s is bankrupt, %s takes $%d and the deeds", debtorID, creditorID, cash))
	log.Info("player is bankrupt", "cash", cash, "tiles", transferred)

	return nil
}

func (that *TurnManager) ownedTile(playerID, tileName string) (*entity.Player, *entity.UtilityTile, error) {
	player, err := that.Player(playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player: %w", err)
	}

	tile, err := that.Tile(tileName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get tile: %w", err)
	}

	if !tile.IsOwnedBy(playerID) {
		return nil, nil, fmt.Errorf("%w: %s does not own %s", ErrNotTileOwner, playerID, tileName)
	}

	return player, tile, nil
}
