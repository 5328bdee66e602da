// internal/game/state_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDeals(t *testing.T) {
	s, err := NewState([]string{"you", "Sarah", "Brian"}, DefaultRules(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for _, p := range s.Players {
		assert.Len(t, s.Hands[p], 7)
	}
	assert.Len(t, s.DiscardPile, 1)
	assert.Equal(t, DeckSize-3*7-1, len(s.Deck))
	assert.Equal(t, DeckSize, s.CardCount())
	assert.True(t, s.CurrentColor.IsConcrete())
	assert.Equal(t, 0, s.TurnIndex)
	assert.Equal(t, Forward, s.Direction)
}

func TestNewStatePlayerCount(t *testing.T) {
	_, err := NewState([]string{"solo"}, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrPlayerCount)
	_, err = NewState([]string{"a", "b", "c", "d", "e"}, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrPlayerCount)
}

func TestFirstDiscardWildTakesDefaultColor(t *testing.T) {
	s := &State{
		Deck:  []models.Card{card(models.Wild, models.Wild4), num(models.Red, 1)},
		Rules: Rules{HandSize: 7, DefaultColor: models.Blue},
	}
	s.flipFirstDiscard()
	assert.Equal(t, models.Blue, s.CurrentColor)
	assert.Equal(t, models.Wild4, s.Top().Value)
	assert.Len(t, s.Deck, 1)

	s = &State{Deck: []models.Card{num(models.Green, 3)}, Rules: DefaultRules()}
	s.flipFirstDiscard()
	assert.Equal(t, models.Green, s.CurrentColor)
}

func TestCardsAreConservedWhileDeckLasts(t *testing.T) {
	s, err := NewState([]string{"a", "b"}, DefaultRules(), rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	for i := 0; i < 50 && !s.Finished(); i++ {
		_, err := FirstLegalTurn(s, s.TurnIndex)
		require.NoError(t, err)
		assert.Equal(t, DeckSize, s.CardCount())
	}
}

func TestEmptyDeckRecyclesDiscard(t *testing.T) {
	top := num(models.Red, 4)
	under := []models.Card{num(models.Blue, 1), num(models.Green, 2)}
	s := newTestState([]string{"a", "b"}, [][]models.Card{filler(2), filler(2)}, top, models.Red)
	s.Deck = nil
	s.DiscardPile = append(under, top)
	total := s.CardCount()

	_, err := s.Draw(0)
	require.NoError(t, err)
	assert.Equal(t, total, s.CardCount())
	assert.Len(t, s.DiscardPile, 1)
	assert.Equal(t, top.ID, s.Top().ID)
	assert.Len(t, s.Deck, 1)
	assert.Len(t, s.Hands["a"], 3)
}

func TestExhaustedPilesManufactureCard(t *testing.T) {
	top := num(models.Red, 4)
	s := newTestState([]string{"a", "b"}, [][]models.Card{filler(2), filler(2)}, top, models.Red)
	s.Deck = nil

	_, err := s.Draw(0)
	require.NoError(t, err)
	assert.Len(t, s.Hands["a"], 3)
	assert.Len(t, s.DiscardPile, 1)
}

func TestFreshDrawsGrowCardCount(t *testing.T) {
	rules := DefaultRules()
	rules.FreshDraws = true
	s, err := NewState([]string{"a", "b"}, rules, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	deck := len(s.Deck)

	_, err = s.Draw(0)
	require.NoError(t, err)
	assert.Equal(t, deck, len(s.Deck), "fresh draws leave the deck alone")
	assert.Equal(t, DeckSize+1, s.CardCount())
}

func TestRecordRoundTrip(t *testing.T) {
	s, err := NewState([]string{"host", "guest"}, DefaultRules(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	s.Direction = Reversed
	s.TurnIndex = 1

	rec := s.ToRecord()
	assert.Equal(t, "guest", rec.CurrentTurn)
	assert.True(t, rec.IsReversed)

	back, err := FromRecord(rec, []string{"host", "guest"}, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, s.Hands, back.Hands)
	assert.Equal(t, s.Deck, back.Deck)
	assert.Equal(t, s.DiscardPile, back.DiscardPile)
	assert.Equal(t, s.CurrentColor, back.CurrentColor)
	assert.Equal(t, 1, back.TurnIndex)
	assert.Equal(t, Reversed, back.Direction)

	rec.CurrentTurn = "stranger"
	_, err = FromRecord(rec, []string{"host", "guest"}, DefaultRules())
	assert.Error(t, err)
	_, err = FromRecord(nil, []string{"host", "guest"}, DefaultRules())
	assert.Error(t, err)
}

func TestViewHidesOpponentHands(t *testing.T) {
	s, err := NewState([]string{"you", "Sarah"}, DefaultRules(), rand.New(rand.NewSource(10)))
	require.NoError(t, err)

	v := s.ViewFor("you")
	require.Len(t, v.Players, 2)
	assert.Len(t, v.Players[0].Hand, 7)
	assert.True(t, v.Players[0].IsCurrentTurn)
	assert.Nil(t, v.Players[1].Hand)
	assert.Equal(t, 7, v.Players[1].HandSize)
	assert.Equal(t, s.Top(), v.DiscardTop)
}

func TestEventsForDrawTwo(t *testing.T) {
	d2 := card(models.Green, models.Draw2)
	s := newTestState([]string{"You", "Sarah", "Brian"},
		[][]models.Card{{d2, num(models.Red, 1)}, filler(2), filler(2)},
		num(models.Green, 8), models.Green)

	out, err := s.Play(0, d2.ID, "")
	require.NoError(t, err)
	evs := EventsFor(s, out)
	require.Len(t, evs, 3)
	assert.Equal(t, EventCardPlayed, evs[0].Type)
	assert.Equal(t, EventDrawTwo, evs[1].Type)
	assert.Equal(t, "Sarah", evs[1].Target)
	assert.Equal(t, 2, evs[1].Count)
	assert.Equal(t, EventPlayerTurn, evs[2].Type)
	assert.Equal(t, "Brian", evs[2].Player)
}
