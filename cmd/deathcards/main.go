// Command deathcards runs the client engine for one room: it joins the push
// channel, keeps the local game state in sync, and exposes a small line
// interface for turn actions.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/config"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/game"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/metrics"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/transport"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration")
	}
	log.SetLevel(cfg.LogLevel)

	playerID, err := config.PlayerIDFromToken(cfg.SessionToken)
	if err != nil {
		log.WithError(err).Fatal("session token")
	}

	m := metrics.New("deathcards")
	if cfg.MetricsAddr != "" {
		m.Serve(cfg.MetricsAddr, log)
	}

	store := game.NewStore(game.NewGameState(cfg.RoomID, playerID), log, m)
	caller := transport.NewHTTPCaller(cfg.ServerURL, cfg.SessionToken, log)
	initiator := game.NewInitiator(store, caller, log, m)
	push := transport.NewPushClient(cfg.WSURL, cfg.SessionToken, store, log)

	store.SubscribeFn(func(snap game.Snapshot) {
		if e, ok := snap.State.Log.Latest(); ok {
			fmt.Printf("[%s] %s\n", e.Category, e.Message)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := push.Connect(ctx); err != nil {
		log.WithError(err).Fatal("connect")
	}
	defer push.Close()

	log.WithFields(logrus.Fields{
		"room":   cfg.RoomID,
		"player": playerID,
	}).Info("joined room")

	go readCommands(ctx, cfg, store, caller, initiator, log)

	<-ctx.Done()
	log.Info("shutting down")
}

// readCommands drives turn actions from stdin. Every command submits through
// the caller or initiator; state changes arrive back over the push channel.
func readCommands(ctx context.Context, cfg *config.Config, store *game.Store, caller *transport.HTTPCaller, initiator *game.Initiator, log *logrus.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		snap := store.Snapshot()
		switch fields[0] {
		case "draw":
			if !snap.State.CanDraw() {
				fmt.Println("you cannot draw right now")
				continue
			}
			req := protocol.DrawRequest{RoomID: cfg.RoomID, PlayerID: snap.State.LocalPlayerID}
			if _, err := caller.Do(ctx, protocol.DrawDeckPath(cfg.RoomID), req); err != nil {
				fmt.Printf("draw failed: %v\n", err)
			}
		case "discard":
			if len(fields) < 2 {
				fmt.Println("usage: discard <card-index>")
				continue
			}
			card, ok := cardAt(snap.State.Hand, fields[1])
			if !ok {
				fmt.Println("no such card in hand")
				continue
			}
			if !snap.State.CanDiscard() {
				fmt.Println("you cannot discard right now")
				continue
			}
			req := protocol.DiscardRequest{RoomID: cfg.RoomID, PlayerID: snap.State.LocalPlayerID, CardID: card.ID}
			if _, err := caller.Do(ctx, protocol.DiscardPath(cfg.RoomID), req); err != nil {
				fmt.Printf("discard failed: %v\n", err)
				continue
			}
			store.Dispatch(game.MarkDiscarded{CardID: card.ID})
		case "finish":
			req := protocol.FinishTurnRequest{RoomID: cfg.RoomID, PlayerID: snap.State.LocalPlayerID}
			if _, err := caller.Do(ctx, protocol.FinishTurnPath(cfg.RoomID), req); err != nil {
				fmt.Printf("finish failed: %v\n", err)
			}
		case "counter":
			if len(fields) < 2 {
				fmt.Println("usage: counter <card-index>")
				continue
			}
			card, ok := cardAt(snap.State.Hand, fields[1])
			if !ok || card.Kind != game.CardInstant {
				fmt.Println("pick an instant card from your hand")
				continue
			}
			if !snap.State.Counter.Active {
				fmt.Println("no window is open")
				continue
			}
			req := protocol.CounterPlayRequest{RoomID: cfg.RoomID, PlayerID: snap.State.LocalPlayerID, CardID: card.ID}
			if _, err := caller.Do(ctx, protocol.CounterPlayPath(cfg.RoomID), req); err != nil {
				fmt.Printf("counter failed: %v\n", err)
			}
		case "set":
			if len(fields) < 3 {
				fmt.Println("usage: set <type> <card-index>...")
				continue
			}
			setType := game.DetectiveSetType(fields[1])
			cards := make([]game.CardRef, 0, len(fields)-2)
			for _, arg := range fields[2:] {
				card, ok := cardAt(snap.State.Hand, arg)
				if !ok {
					cards = nil
					break
				}
				cards = append(cards, card)
			}
			if cards == nil {
				fmt.Println("no such card in hand")
				continue
			}
			if err := proposeSet(ctx, cfg, snap.State, initiator, setType, cards); err != nil {
				fmt.Printf("set rejected: %v\n", err)
			}
		case "hand":
			for i, c := range snap.State.Hand {
				fmt.Printf("%d: %s (%s)\n", i, c.Label, c.Kind)
			}
		case "quit":
			return
		default:
			fmt.Println("commands: draw, discard <i>, counter <i>, set <type> <i>..., finish, hand, quit")
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("stdin closed")
	}
}

// proposeSet runs a set play through the initiator: validate first, then the
// create call runs either immediately or after the counter window resolves.
func proposeSet(ctx context.Context, cfg *config.Config, state game.GameState, initiator *game.Initiator, setType game.DetectiveSetType, cards []game.CardRef) error {
	payload, err := json.Marshal(protocol.SetCreateRequest{
		RoomID:   cfg.RoomID,
		PlayerID: state.LocalPlayerID,
		SetType:  string(setType),
		CardIDs:  cardIDs(cards),
	})
	if err != nil {
		return err
	}
	return initiator.Propose(ctx, game.ActionDescriptor{
		Type:    game.ActionCreateSet,
		Cards:   cards,
		SetType: setType,
		Intent: game.ActionIntent{
			Call: &game.RemoteCallIntent{
				Endpoint: protocol.SetCreatePath(cfg.RoomID),
				Payload:  payload,
			},
		},
	})
}

func cardIDs(cards []game.CardRef) []uuid.UUID {
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func cardAt(hand []game.CardRef, arg string) (game.CardRef, bool) {
	var idx int
	if _, err := fmt.Sscanf(arg, "%d", &idx); err != nil {
		return game.CardRef{}, false
	}
	if idx < 0 || idx >= len(hand) {
		return game.CardRef{}, false
	}
	return hand[idx], true
}
