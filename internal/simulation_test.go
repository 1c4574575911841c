package application

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crevelings/monopoly-backend/internal/announcer"
	"github.com/crevelings/monopoly-backend/internal/config"
	"github.com/crevelings/monopoly-backend/internal/dice"
	"github.com/crevelings/monopoly-backend/internal/entity"
	"github.com/crevelings/monopoly-backend/internal/usecase"
)

func standardUtilities() config.Utilities {
	utility := config.Utility{
		Price:           150,
		RentMultipliers: []int{4, 10},
		ColorGroup:      "utility",
		MortgageValue:   75,
	}

	return config.Utilities{ElectricCompany: utility, WaterWorks: utility}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildUtilities(t *testing.T) {
	t.Run("Builds both utilities", func(t *testing.T) {
		// When: building from the standard configuration
		tiles, err := BuildUtilities(standardUtilities(), announcer.NewBuffer())

		// Then: both utilities exist with the configured values
		require.NoError(t, err)
		require.Len(t, tiles, 2)
		assert.Equal(t, entity.ElectricCompanyName, tiles[0].Name())
		assert.Equal(t, entity.WaterWorksName, tiles[1].Name())
		assert.Equal(t, entity.Utility, tiles[0].ColorGroup())
		assert.Equal(t, 82, tiles[1].UnmortgageValue())
	})

	t.Run("Rejects an unknown color group", func(t *testing.T) {
		conf := standardUtilities()
		conf.WaterWorks.ColorGroup = "purple"

		_, err := BuildUtilities(conf, announcer.NewBuffer())

		require.ErrorIs(t, err, entity.ErrUnknownColorGroup)
	})

	t.Run("Rejects a wrong number of multipliers", func(t *testing.T) {
		conf := standardUtilities()
		conf.ElectricCompany.RentMultipliers = []int{4}

		_, err := BuildUtilities(conf, announcer.NewBuffer())

		require.Error(t, err)
	})
}

func TestNewPlayers(t *testing.T) {
	t.Run("Players are known by their names", func(t *testing.T) {
		players, err := NewPlayers([]string{"Alice", " Bob "}, 1500)

		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "Alice", players[0].ID)
		assert.Equal(t, "Alice", players[0].Name)
		assert.Equal(t, "Bob", players[1].ID)
		assert.Equal(t, 1500, players[1].Balance)
	})

	t.Run("Needs at least one player", func(t *testing.T) {
		_, err := NewPlayers(nil, 1500)

		require.ErrorIs(t, err, ErrNoPlayers)
	})

	t.Run("Rejects duplicate and empty names", func(t *testing.T) {
		for name, names := range map[string][]string{
			"duplicate": {"Alice", "Alice"},
			"empty":     {"Alice", "  "},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := NewPlayers(names, 1500)

				require.ErrorIs(t, err, ErrInvalidPlayer)
			})
		}
	})
}

func newSimulation(t *testing.T, roll entity.DiceSource, balance int, names ...string) (*usecase.TurnManager, []*entity.Player) {
	t.Helper()

	buffer := announcer.NewBuffer()
	tiles, err := BuildUtilities(standardUtilities(), buffer)
	require.NoError(t, err)

	manager := usecase.NewTurnManager(discardLogger(), buffer, roll, tiles...)

	players, err := NewPlayers(names, balance)
	require.NoError(t, err)

	for _, player := range players {
		manager.AddPlayer(player)
	}

	return manager, players
}

func TestSimulate(t *testing.T) {
	ctx := context.Background()

	t.Run("Tile owners always hold the deed", func(t *testing.T) {
		// Given: three players and seeded dice
		roller := dice.NewSeeded(2024)
		manager, players := newSimulation(t, roller, 1500, "Alice", "Bob", "Carol")

		// When: simulating twenty rounds
		summary, err := Simulate(ctx, discardLogger(), manager, roller, players, 20)

		// Then: at most two utilities were bought and turns were played
		require.NoError(t, err)
		assert.Positive(t, summary.Turns)
		assert.LessOrEqual(t, summary.Purchases, 2)

		for _, tile := range manager.Tiles() {
			owner, ok := tile.Owner()
			if !ok {
				continue
			}

			player, err := manager.Player(owner)
			require.NoError(t, err)
			assert.True(t, player.HasProperty(tile.Name()))
		}
	})

	t.Run("Rolls pick the tile by parity", func(t *testing.T) {
		// Given: dice always summing to 7, which picks the Water Works
		roll := dice.Fixed{First: 3, Second: 4}
		manager, players := newSimulation(t, roll, 1500, "Alice", "Bob")

		// When: one round is played
		summary, err := Simulate(ctx, discardLogger(), manager, roll, players, 1)

		// Then: Alice bought the Water Works and Bob paid her 28
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Turns)
		assert.Equal(t, 1, summary.Purchases)
		assert.Equal(t, 28, summary.RentCollected)
		assert.True(t, players[0].HasProperty(entity.WaterWorksName))
		assert.Equal(t, 1500-150+28, players[0].Balance)
		assert.Equal(t, 1500-28, players[1].Balance)
	})

	t.Run("Announcements name the players", func(t *testing.T) {
		// Given: dice always picking the Water Works
		roll := dice.Fixed{First: 3, Second: 4}
		buffer := announcer.NewBuffer()
		tiles, err := BuildUtilities(standardUtilities(), buffer)
		require.NoError(t, err)

		manager := usecase.NewTurnManager(discardLogger(), buffer, roll, tiles...)
		players, err := NewPlayers([]string{"Alice", "Bob"}, 1500)
		require.NoError(t, err)

		for _, player := range players {
			manager.AddPlayer(player)
		}

		// When: one round is played
		_, err = Simulate(ctx, discardLogger(), manager, roll, players, 1)

		// Then: the messages carry the names
		require.NoError(t, err)
		assert.Contains(t, buffer.Messages(), "Alice bought the Water Works")
		assert.Contains(t, buffer.Messages(), "Alice already owns the Water Works!")
	})

	t.Run("Player who cannot pay rent drops out", func(t *testing.T) {
		// Given: Alice owns the Water Works and Bob has $10
		roll := dice.Fixed{First: 3, Second: 4}
		manager, players := newSimulation(t, roll, 1500, "Alice", "Bob")
		players[1].Balance = 10

		tile, err := manager.Tile(entity.WaterWorksName)
		require.NoError(t, err)
		tile.SetOwner(players[0].ID)
		players[0].Properties = append(players[0].Properties, entity.WaterWorksName)

		// When: simulating
		summary, err := Simulate(ctx, discardLogger(), manager, roll, players, 5)

		// Then: Bob went bankrupt to Alice in the first round and play stopped
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob"}, summary.Bankrupt)
		assert.Equal(t, 2, summary.Turns)
		assert.Equal(t, 1510, players[0].Balance)
		assert.Zero(t, players[1].Balance)

		_, err = manager.Player(players[1].ID)
		require.ErrorIs(t, err, usecase.ErrPlayerNotFound)
	})

	t.Run("Bankrupt player's mortgaged utility passes to the creditor", func(t *testing.T) {
		// Given: Alice owns the Water Works, Bob has $10 and the mortgaged Electric Company
		roll := dice.Fixed{First: 3, Second: 4}
		manager, players := newSimulation(t, roll, 1500, "Alice", "Bob")
		players[1].Balance = 10

		waterWorks, err := manager.Tile(entity.WaterWorksName)
		require.NoError(t, err)
		waterWorks.SetOwner(players[0].ID)
		players[0].Properties = append(players[0].Properties, entity.WaterWorksName)

		electric, err := manager.Tile(entity.ElectricCompanyName)
		require.NoError(t, err)
		electric.SetOwner(players[1].ID)
		players[1].Properties = append(players[1].Properties, entity.ElectricCompanyName)
		require.NoError(t, electric.SetMortgaged(true))

		// When: Bob cannot pay the Water Works rent
		summary, err := Simulate(ctx, discardLogger(), manager, roll, players, 5)

		// Then: Alice holds both utilities and the Electric Company stays mortgaged
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob"}, summary.Bankrupt)
		assert.True(t, electric.IsOwnedBy(players[0].ID))
		assert.True(t, electric.IsMortgaged())
		assert.True(t, players[0].HasProperty(entity.ElectricCompanyName))
		assert.Empty(t, players[1].Properties)
		assert.Equal(t, 2, manager.UtilitiesOwnedBy(players[0].ID))
	})

	t.Run("Landing on a mortgaged utility is not counted as rent", func(t *testing.T) {
		// Given: Alice owns the mortgaged Water Works and has too little to lift it
		roll := dice.Fixed{First: 3, Second: 4}
		manager, players := newSimulation(t, roll, 1500, "Alice", "Bob")
		players[0].Balance = 100

		tile, err := manager.Tile(entity.WaterWorksName)
		require.NoError(t, err)
		tile.SetOwner(players[0].ID)
		players[0].Properties = append(players[0].Properties, entity.WaterWorksName)
		require.NoError(t, tile.SetMortgaged(true))

		// When: one round is played
		summary, err := Simulate(ctx, discardLogger(), manager, roll, players, 1)

		// Then: Bob's landing shows up as a mortgaged landing
		require.NoError(t, err)
		assert.Equal(t, 1, summary.MortgagedLandings)
		assert.Zero(t, summary.RentCollected)
		assert.Equal(t, 1500, players[1].Balance)
	})

	t.Run("Low balance triggers a mortgage", func(t *testing.T) {
		// Given: Alice owns the Electric Company with only $50 left
		roll := dice.Fixed{First: 3, Second: 4}
		manager, players := newSimulation(t, roll, 1500, "Alice", "Bob")
		players[0].Balance = 50

		tile, err := manager.Tile(entity.ElectricCompanyName)
		require.NoError(t, err)
		tile.SetOwner(players[0].ID)
		players[0].Properties = append(players[0].Properties, entity.ElectricCompanyName)

		// When: one round is played
		_, err = Simulate(ctx, discardLogger(), manager, roll, players, 1)

		// Then: Alice mortgaged it before her turn
		require.NoError(t, err)
		assert.True(t, tile.IsMortgaged())
	})

	t.Run("Cancelled context stops the simulation", func(t *testing.T) {
		roller := dice.NewSeeded(1)
		manager, players := newSimulation(t, roller, 1500, "Alice", "Bob")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		summary, err := Simulate(cancelled, discardLogger(), manager, roller, players, 10)

		require.NoError(t, err)
		assert.Zero(t, summary.Turns)
	})
}
