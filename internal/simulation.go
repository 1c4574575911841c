package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crevelings/monopoly-backend/internal/apperror"
	"github.com/crevelings/monopoly-backend/internal/entity"
	"github.com/crevelings/monopoly-backend/internal/usecase"
)

// below this balance a player mortgages a utility before taking a turn.
const lowBalance = 100

type Summary struct {
	Turns             int
	Purchases         int
	RentCollected     int
	MortgagedLandings int
	Bankrupt          []string
}

type turnManager interface {
	Tiles() []*entity.UtilityTile
	LandOnUtility(ctx context.Context, playerID, tileName string) (*usecase.LandingResult, error)
	Mortgage(ctx context.Context, playerID, tileName string) error
	Unmortgage(ctx context.Context, playerID, tileName string) error
	DeclareBankruptcy(ctx context.Context, debtorID, creditorID string) error
}

// Simulate plays rounds of turns where every active player lands on one of
// the utilities, picked by the parity of a dice roll. A player who cannot pay
// rent goes bankrupt to the tile owner and drops out.
func Simulate(
	ctx context.Context,
	logger *slog.Logger,
	manager turnManager,
	roller entity.DiceSource,
	players []*entity.Player,
	rounds int,
) (*Summary, error) {
	log := logger.With("method", "Simulate")

	tiles := manager.Tiles()
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles on the board", usecase.ErrTileNotFound)
	}

	summary := &Summary{}
	active := append([]*entity.Player(nil), players...)

	for round := 1; round <= rounds && len(active) > 1; round++ {
		next := active[:0]

		for _, player := range active {
			select {
			case <-ctx.Done():
				log.Info("simulation interrupted", "round", round)
				return summary, nil
			default:
			}

			current := turn{manager: manager, player: player, tiles: tiles}
			current.manageMortgages(ctx, log)

			first, second := roller.Roll()
			tile := tiles[(first+second)%len(tiles)]

			result, err := manager.LandOnUtility(ctx, player.ID, tile.Name())
			summary.Turns++

			if errors.Is(err, apperror.ErrInsufficientFunds) {
				creditor, _ := tile.Owner()
				if err = manager.DeclareBankruptcy(ctx, player.ID, creditor); err != nil {
					return summary, fmt.Errorf("round %d, player %s: %w", round, player.Name, err)
				}

				log.Info("player is bankrupt", "player", player.Name, "creditor", creditor, "round", round)
				summary.Bankrupt = append(summary.Bankrupt, player.Name)

				continue
			}

			if err != nil {
				return summary, fmt.Errorf("round %d, player %s: %w", round, player.Name, err)
			}

			switch result.Outcome {
			case usecase.OutcomePurchased:
				summary.Purchases++
			case usecase.OutcomeRentPaid:
				summary.RentCollected += result.Rent
			case usecase.OutcomeMortgaged:
				summary.MortgagedLandings++
			}

			next = append(next, player)
		}

		active = next
	}

	return summary, nil
}

type turn struct {
	manager turnManager
	player  *entity.Player
	tiles   []*entity.UtilityTile
}

// manageMortgages mortgages an owned utility when money is short and buys
// mortgages back when there is plenty.
func (that turn) manageMortgages(ctx context.Context, log *slog.Logger) {
	for _, tile := range that.tiles {
		if !tile.IsOwnedBy(that.player.ID) {
			continue
		}

		switch {
		case !tile.IsMortgaged() && that.player.Balance < lowBalance:
			if err := that.manager.Mortgage(ctx, that.player.ID, tile.Name()); err != nil {
				log.Warn("failed to mortgage", "player", that.player.Name, "tile", tile.Name(), "error", err)
			}
		case tile.IsMortgaged() && that.player.Balance >= tile.UnmortgageValue()+lowBalance:
			if err := that.manager.Unmortgage(ctx, that.player.ID, tile.Name()); err != nil {
				log.Warn("failed to unmortgage", "player", that.player.Name, "tile", tile.Name(), "error", err)
			}
		}
	}
}
