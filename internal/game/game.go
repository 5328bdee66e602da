// internal/game/game.go
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/sirupsen/logrus"
)

// HumanID is the player id of the human in a local game; it always sits at seat 0.
const HumanID = "you"

// BotNames names the bot seats 1..3.
var BotNames = []string{"Sarah", "Brian", "Emma"}

// Phase is the lifecycle stage of a local game.
type Phase string

const (
	PhaseDealing    Phase = "dealing"
	PhaseInProgress Phase = "inProgress"
	PhaseFinished   Phase = "finished"
)

// BotTurnFunc plays one complete turn for the bot at seat.
type BotTurnFunc func(s *State, seat int) (Outcome, error)

// LocalOptions configures a LocalGame. Zero values get defaults.
type LocalOptions struct {
	Rules     Rules
	BotDelay  time.Duration // simulated thinking time before each bot turn
	Scheduler Scheduler
	Rand      *rand.Rand
	Logger    *logrus.Logger
	BotTurn   BotTurnFunc

	// OnEvent receives notifications. It is called with the game lock held and must not
	// call back into the game.
	OnEvent func(ev GameEvent)
}

// LocalGame is a single-device game: one human at seat 0 against 1-3 bots.
type LocalGame struct {
	ID    uuid.UUID
	State *State
	Phase Phase
	Mu    sync.Mutex

	rules       Rules
	botDelay    time.Duration
	scheduler   Scheduler
	rng         *rand.Rand
	logger      *logrus.Logger
	botTurn     BotTurnFunc
	onEvent     func(ev GameEvent)
	playerCount int

	// generation increments on every (re)start and stop; a bot task scheduled under an
	// older generation does nothing when it fires.
	generation int
	pending    Task
}

// NewLocalGame builds an idle game; call Start to deal.
func NewLocalGame(opts LocalOptions) *LocalGame {
	g := &LocalGame{
		ID:        uuid.New(),
		Phase:     PhaseDealing,
		rules:     opts.Rules,
		botDelay:  opts.BotDelay,
		scheduler: opts.Scheduler,
		rng:       opts.Rand,
		logger:    opts.Logger,
		botTurn:   opts.BotTurn,
		onEvent:   opts.OnEvent,
	}
	if g.rules == (Rules{}) {
		g.rules = DefaultRules()
	}
	if g.scheduler == nil {
		g.scheduler = TimerScheduler{}
	}
	if g.rng == nil {
		g.rng = NewRand()
	}
	if g.logger == nil {
		g.logger = logrus.StandardLogger()
	}
	if g.botTurn == nil {
		g.botTurn = FirstLegalTurn
	}
	return g
}

// Start deals a new game for playerCount participants (the human plus bots).
func (g *LocalGame) Start(playerCount int) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.startUnsafe(playerCount)
}

// Restart cancels any pending bot turn and deals again with the same player count.
func (g *LocalGame) Restart() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.startUnsafe(g.playerCount)
}

// Stop cancels any pending bot turn. The state is left as is.
func (g *LocalGame) Stop() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.cancelPendingUnsafe()
}

// startUnsafe assumes lock is held.
func (g *LocalGame) startUnsafe(playerCount int) error {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return ErrPlayerCount
	}
	g.cancelPendingUnsafe()
	g.Phase = PhaseDealing
	g.playerCount = playerCount

	players := []string{HumanID}
	players = append(players, BotNames[:playerCount-1]...)
	s, err := NewState(players, g.rules, g.rng)
	if err != nil {
		return err
	}
	g.State = s
	g.Phase = PhaseInProgress
	g.logger.WithFields(logrus.Fields{
		"game":    g.ID,
		"players": playerCount,
		"top":     s.Top().String(),
	}).Info("local game dealt")
	g.fire(GameEvent{Type: EventPlayerTurn, Player: HumanID})
	return nil
}

// cancelPendingUnsafe drops the scheduled bot turn, if any. Assumes lock is held.
func (g *LocalGame) cancelPendingUnsafe() {
	g.generation++
	if g.pending != nil {
		g.pending.Cancel()
		g.pending = nil
	}
}

// PlayCard plays a card from the human's hand. chosen is required for wild cards.
// An illegal card is rejected without touching the state.
func (g *LocalGame) PlayCard(cardID uuid.UUID, chosen models.Color) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := g.checkHumanTurnUnsafe(); err != nil {
		return err
	}
	out, err := g.State.Play(0, cardID, chosen)
	if err != nil {
		g.fire(GameEvent{Type: EventMoveRejected, Player: HumanID, Message: err.Error()})
		return err
	}
	g.afterMoveUnsafe(out)
	return nil
}

// DrawCard makes the human draw one card and forfeit the play.
func (g *LocalGame) DrawCard() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := g.checkHumanTurnUnsafe(); err != nil {
		return err
	}
	out, err := g.State.Draw(0)
	if err != nil {
		return err
	}
	g.afterMoveUnsafe(out)
	return nil
}

func (g *LocalGame) checkHumanTurnUnsafe() error {
	if g.State == nil || g.Phase == PhaseFinished {
		return ErrGameOver
	}
	if g.State.TurnIndex != 0 {
		return ErrNotYourTurn
	}
	return nil
}

// afterMoveUnsafe emits notifications and hands the turn to a bot if needed.
// Assumes lock is held.
func (g *LocalGame) afterMoveUnsafe(out Outcome) {
	for _, ev := range EventsFor(g.State, out) {
		g.fire(ev)
	}
	if out.GameOver {
		g.Phase = PhaseFinished
		g.cancelPendingUnsafe()
		g.logger.WithFields(logrus.Fields{"game": g.ID, "winner": g.State.Winner}).Info("local game finished")
		return
	}
	if g.State.TurnIndex != 0 {
		g.scheduleBotTurnUnsafe()
	}
}

// scheduleBotTurnUnsafe queues the current bot's turn after the thinking delay.
// Assumes lock is held.
func (g *LocalGame) scheduleBotTurnUnsafe() {
	gen := g.generation
	g.pending = g.scheduler.Schedule(g.botDelay, func() {
		g.runBotTurn(gen)
	})
}

// runBotTurn executes the bot's full turn unless the task went stale.
func (g *LocalGame) runBotTurn(gen int) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if gen != g.generation || g.Phase != PhaseInProgress || g.State.TurnIndex == 0 {
		g.logger.WithFields(logrus.Fields{"game": g.ID, "gen": gen}).Debug("stale bot turn ignored")
		return
	}
	g.pending = nil
	seat := g.State.TurnIndex
	out, err := g.botTurn(g.State, seat)
	if err != nil {
		g.logger.WithFields(logrus.Fields{
			"game": g.ID,
			"seat": seat,
		}).WithError(err).Warn("bot turn failed, passing")
		out = g.State.Pass(seat)
	}
	g.afterMoveUnsafe(out)
}

// Snapshot returns the human's view of the game.
func (g *LocalGame) Snapshot() View {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.State == nil {
		return View{}
	}
	return g.State.ViewFor(HumanID)
}

func (g *LocalGame) fire(ev GameEvent) {
	if g.onEvent != nil {
		g.onEvent(ev)
	}
}

// FirstLegalTurn is the fallback bot: play the first legal card (wilds take the default
// color), otherwise draw. An empty hand passes.
func FirstLegalTurn(s *State, seat int) (Outcome, error) {
	if len(s.Hand(seat)) == 0 {
		return s.Pass(seat), nil
	}
	legal := s.LegalCards(seat)
	if len(legal) == 0 {
		return s.Draw(seat)
	}
	return s.Play(seat, legal[0].ID, s.Rules.DefaultColor)
}
