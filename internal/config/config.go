package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	AnnouncerLog   = "log"
	AnnouncerRedis = "redis"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Announcer  string     `yaml:"announcer" env:"ANNOUNCER" env-default:"log"`
	Redis      Redis      `yaml:"redis"`
	Simulation Simulation `yaml:"simulation"`
	Utilities  Utilities  `yaml:"utilities"`
}

type Redis struct {
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"monopoly:announcements"`
}

type Simulation struct {
	Players         []string `yaml:"players" env:"SIMULATION_PLAYERS" env-default:"Alice,Bob"`
	Rounds          int      `yaml:"rounds" env:"SIMULATION_ROUNDS" env-default:"10"`
	StartingBalance int      `yaml:"starting-balance" env:"SIMULATION_STARTING_BALANCE" env-default:"1500"`
	Seed            uint64   `yaml:"seed" env:"SIMULATION_SEED" env-default:"0"`
}

type Utilities struct {
	ElectricCompany Utility `yaml:"electric-company"`
	WaterWorks      Utility `yaml:"water-works"`
}

type Utility struct {
	Actions         string `yaml:"actions" env-default:""`
	Price           int    `yaml:"price" env-default:"150"`
	RentMultipliers []int  `yaml:"rent-multipliers" env-default:"4,10"`
	ColorGroup      string `yaml:"color-group" env-default:"utility"`
	MortgageValue   int    `yaml:"mortgage-value" env-default:"75"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Multipliers returns the first two rent multipliers as a pair.
func (that *Utility) Multipliers() ([2]int, error) {
	if len(that.RentMultipliers) != 2 {
		return [2]int{}, fmt.Errorf("expected 2 rent multipliers, got %d", len(that.RentMultipliers))
	}

	return [2]int{that.RentMultipliers[0], that.RentMultipliers[1]}, nil
}
