package entity

import (
	"fmt"
	"slices"

	"github.com/crevelings/monopoly-backend/internal/apperror"
)

// Player is the in-memory wallet and deed list of one participant.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Balance    int      `json:"balance"`
	Properties []string `json:"properties,omitempty"`
}

func NewPlayer(id, name string, balance int) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Balance: balance,
	}
}

func (that *Player) PlayerID() string {
	return that.ID
}

func (that *Player) HasProperty(name string) bool {
	return slices.Contains(that.Properties, name)
}

func (that *Player) PurchaseProperty(name string, price int) error {
	if err := that.Pay(price); err != nil {
		return fmt.Errorf("failed to buy %s: %w", name, err)
	}

	that.Properties = append(that.Properties, name)

	return nil
}

func (that *Player) Pay(amount int) error {
	if that.Balance < amount {
		return fmt.Errorf("%w: balance $%d, need $%d", apperror.ErrInsufficientFunds, that.Balance, amount)
	}

	that.Balance -= amount

	return nil
}

func (that *Player) Receive(amount int) {
	that.Balance += amount
}

// RemoveProperty drops the deed for name, if the player holds it.
func (that *Player) RemoveProperty(name string) {
	that.Properties = slices.DeleteFunc(that.Properties, func(property string) bool {
		return property == name
	})
}
