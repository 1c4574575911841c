package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crevelings/monopoly-backend/internal/announcer"
	"github.com/crevelings/monopoly-backend/internal/config"
	"github.com/crevelings/monopoly-backend/internal/dice"
	"github.com/crevelings/monopoly-backend/internal/entity"
	"github.com/crevelings/monopoly-backend/internal/transport/redis"
	"github.com/crevelings/monopoly-backend/internal/usecase"
)

var (
	ErrAddrNotFound     = errors.New("redis address string is empty")
	ErrUnknownAnnouncer = errors.New("unknown announcer")
	ErrNoPlayers        = errors.New("simulation needs at least one player")
	ErrInvalidPlayer    = errors.New("player names must be non-empty and unique")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	ann, closeAnnouncer, err := newAnnouncer(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("could not create announcer: %w", err)
	}

	defer func() {
		if err = closeAnnouncer(); err != nil {
			log.Error("could not close announcer", "error", err)
		}
	}()

	tiles, err := BuildUtilities(conf.Utilities, ann)
	if err != nil {
		return fmt.Errorf("could not build utilities: %w", err)
	}

	var roller *dice.Roller
	if conf.Simulation.Seed != 0 {
		roller = dice.NewSeeded(conf.Simulation.Seed)
	} else {
		roller = dice.New()
	}

	manager := usecase.NewTurnManager(logger, ann, roller, tiles...)

	players, err := NewPlayers(conf.Simulation.Players, conf.Simulation.StartingBalance)
	if err != nil {
		return err
	}

	for _, player := range players {
		manager.AddPlayer(player)
	}

	log.Info("Starting simulation", "players", len(players), "rounds", conf.Simulation.Rounds)

	summary, err := Simulate(ctx, logger, manager, roller, players, conf.Simulation.Rounds)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	for _, player := range players {
		log.Info("Final standing",
			"player", player.Name,
			"id", player.ID,
			"balance", player.Balance,
			"properties", player.Properties,
		)
	}

	log.Info("Simulation finished",
		"turns", summary.Turns,
		"purchases", summary.Purchases,
		"rent_collected", summary.RentCollected,
		"mortgaged_landings", summary.MortgagedLandings,
		"bankrupt", summary.Bankrupt,
	)

	return nil
}

func newAnnouncer(ctx context.Context, logger *slog.Logger, conf *config.Config) (entity.Announcer, func() error, error) {
	logAnnouncer := announcer.NewLogger(logger)
	noop := func() error { return nil }

	switch conf.Announcer {
	case config.AnnouncerLog, "":
		return logAnnouncer, noop, nil
	case config.AnnouncerRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		publisher, err := redis.New(ctx, logger, conf.Redis.GetRedisAddr(), conf.Redis.Channel)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		return announcer.Multi{logAnnouncer, publisher}, publisher.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownAnnouncer, conf.Announcer)
	}
}

// BuildUtilities creates the Electric Company and the Water Works.
func BuildUtilities(conf config.Utilities, ann entity.Announcer) ([]*entity.UtilityTile, error) {
	electric, err := buildUtility(entity.ElectricCompanyName, conf.ElectricCompany, ann)
	if err != nil {
		return nil, err
	}

	waterWorks, err := buildUtility(entity.WaterWorksName, conf.WaterWorks, ann)
	if err != nil {
		return nil, err
	}

	return []*entity.UtilityTile{electric, waterWorks}, nil
}

func buildUtility(name string, conf config.Utility, ann entity.Announcer) (*entity.UtilityTile, error) {
	group, err := entity.ParseColorGroup(conf.ColorGroup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	multipliers, err := conf.Multipliers()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tile, err := entity.NewUtilityTile(name, conf.Actions, conf.Price, multipliers, group, conf.MortgageValue, entity.WithAnnouncer(ann))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return tile, nil
}

// NewPlayers seats every named player with the starting balance. The name is
// the player id, so announcements read "Alice bought the Water Works".
func NewPlayers(names []string, balance int) ([]*entity.Player, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}

	seen := make(map[string]struct{}, len(names))
	players := make([]*entity.Player, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := seen[name]; ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlayer, name)
		}

		seen[name] = struct{}{}
		players = append(players, entity.NewPlayer(name, name, balance))
	}

	return players, nil
}
