// internal/bot/strategies_test.go
package bot

import (
	"math/rand"
	"testing"

	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(color models.Color, n int) models.Card {
	return models.NewCard(color, models.NumberValue(n))
}

func act(color models.Color, v models.Value) models.Card {
	return models.NewCard(color, v)
}

func wild4() models.Card { return models.NewCard(models.Wild, models.Wild4) }
func wild() models.Card  { return models.NewCard(models.Wild, models.WildV) }

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("god")
	assert.Error(t, err)
	_, err = NewBrain("god", nil)
	assert.Error(t, err)
}

func TestEasyBot_PicksLegalCard(t *testing.T) {
	brain, err := NewBrain(Easy, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	legal := []models.Card{num(models.Red, 1), num(models.Red, 2), act(models.Red, models.Skip)}
	for i := 0; i < 20; i++ {
		assert.Contains(t, legal, brain.ChooseCard(legal, legal, models.Red))
		assert.True(t, brain.ChooseWildColor(nil).IsConcrete())
	}
}

func TestMediumBot_PrefersActionCard(t *testing.T) {
	brain := &MediumBot{}
	skip := act(models.Blue, models.Skip)
	legal := []models.Card{num(models.Blue, 9), skip}
	assert.Equal(t, skip, brain.ChooseCard(legal, legal, models.Blue))

	plain := []models.Card{num(models.Blue, 2), num(models.Blue, 9)}
	assert.Equal(t, plain[0], brain.ChooseCard(plain, plain, models.Blue))
}

func TestDominantColor(t *testing.T) {
	hand := []models.Card{num(models.Green, 1), num(models.Green, 2), num(models.Blue, 3), wild(), wild4()}
	assert.Equal(t, models.Green, (&MediumBot{}).ChooseWildColor(hand))

	tied := []models.Card{num(models.Yellow, 1), num(models.Blue, 2)}
	assert.Equal(t, models.Blue, (&HardBot{}).ChooseWildColor(tied), "ties follow red, blue, green, yellow")

	assert.Equal(t, models.Red, dominantColor([]models.Card{wild()}))
}

func TestHardBot_Priorities(t *testing.T) {
	brain := &HardBot{}
	red3, red8 := num(models.Red, 3), num(models.Red, 8)
	redRev := act(models.Red, models.Reverse)
	d2, skip, w4, w := act(models.Blue, models.Draw2), act(models.Red, models.Skip), wild4(), wild()
	filler := make([]models.Card, 6)
	for i := range filler {
		filler[i] = num(models.Yellow, i)
	}

	tests := []struct {
		name  string
		legal []models.Card
		hand  int
		want  models.Card
	}{
		{"wild4 with a big hand", []models.Card{red3, d2, w4}, 6, w4},
		{"draw2 over wild4 with a small hand", []models.Card{red3, w4, d2}, 5, d2},
		{"skip next", []models.Card{red3, skip, w}, 4, skip},
		{"highest current color", []models.Card{red3, redRev, red8, w}, 4, red8},
		{"action of current color ranks zero", []models.Card{redRev, w}, 3, redRev},
		{"other color before wild", []models.Card{w, num(models.Green, 4)}, 3, num(models.Green, 4)},
		{"wild last", []models.Card{w, w4}, 2, w},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := append(append([]models.Card{}, tt.legal...), filler...)[:tt.hand]
			got := brain.ChooseCard(tt.legal, hand, models.Red)
			assert.Equal(t, tt.want.Color, got.Color)
			assert.Equal(t, tt.want.Value, got.Value)
		})
	}
}

// A hard bot holding a legal wild4 and more than five cards always plays it.
func TestHardBot_Wild4Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	brain := &HardBot{}
	for i := 0; i < 200; i++ {
		hand := []models.Card{wild4()}
		for len(hand) < 6+rng.Intn(6) {
			hand = append(hand, models.NewCard(models.Colors[rng.Intn(4)], models.NumberValue(rng.Intn(10))))
		}
		rng.Shuffle(len(hand), func(a, b int) { hand[a], hand[b] = hand[b], hand[a] })
		legal := LegalCards(hand, num(models.Blue, 5), models.Blue)
		got := brain.ChooseCard(legal, hand, models.Blue)
		require.Equal(t, models.Wild4, got.Value)
	}
}
