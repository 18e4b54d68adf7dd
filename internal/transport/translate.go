// internal/transport/translate.go
//
// Translation from wire envelopes to transition messages. The payload shapes
// mirror what the server broadcasts; fields a given kind does not use are
// simply absent and decode to their zero values.
package transport

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/game"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

// Translate maps one push frame to its transition message. Unknown kinds
// return (nil, nil): the store treats them as no-ops anyway, and the caller
// only logs them.
func Translate(env protocol.Envelope) (game.Message, error) {
	switch env.Kind {
	case protocol.KindPlayerJoined:
		var p game.PlayerInfo
		if err := decode(env, &p); err != nil {
			return nil, err
		}
		return game.PeerJoined{Player: p}, nil

	case protocol.KindPlayerLeft:
		var body struct {
			PlayerID uuid.UUID `json:"playerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.PeerLeft{PlayerID: body.PlayerID}, nil

	case protocol.KindPlayerDeparted:
		var body struct {
			PlayerID uuid.UUID `json:"playerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.PlayerDeparted{PlayerID: body.PlayerID}, nil

	case protocol.KindRoomSnapshot:
		var body struct {
			GameID              *uuid.UUID          `json:"gameId"`
			Players             []game.PlayerInfo   `json:"players"`
			CurrentTurnPlayerID *uuid.UUID          `json:"currentTurnPlayerId"`
			DeckCount           *int                `json:"deckCount"`
			DiscardCount        *int                `json:"discardCount"`
			Sets                []game.DetectiveSet `json:"sets"`
			Disgraced           []uuid.UUID         `json:"disgraced"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.RoomSnapshot{
			GameID:              body.GameID,
			Players:             body.Players,
			CurrentTurnPlayerID: body.CurrentTurnPlayerID,
			DeckCount:           body.DeckCount,
			DiscardCount:        body.DiscardCount,
			Sets:                body.Sets,
			Disgraced:           body.Disgraced,
		}, nil

	case protocol.KindPlayerSnapshot:
		var body struct {
			Hand                 []game.CardRef `json:"hand"`
			Secrets              []game.Secret  `json:"secrets"`
			CardsToDrawRemaining *int           `json:"cardsToDrawRemaining"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.PlayerSnapshot{
			Hand:                 body.Hand,
			Secrets:              body.Secrets,
			CardsToDrawRemaining: body.CardsToDrawRemaining,
		}, nil

	case protocol.KindGameEnded:
		var body struct {
			WinnerID uuid.UUID `json:"winnerId"`
			Reason   string    `json:"reason"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.GameEnded{WinnerID: body.WinnerID, Reason: body.Reason}, nil

	case protocol.KindGameCancelled:
		var body struct {
			Reason string `json:"reason"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.GameCancelled{Reason: body.Reason}, nil

	case protocol.KindActionConfirmed:
		var body struct {
			ActionID    uuid.UUID `json:"actionId"`
			InitiatorID uuid.UUID `json:"initiatorId"`
			ActionType  string    `json:"actionType"`
			Cancellable bool      `json:"cancellable"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.ActionConfirmed{
			ActionID:    body.ActionID,
			InitiatorID: body.InitiatorID,
			ActionType:  game.ActionType(body.ActionType),
			Cancellable: body.Cancellable,
		}, nil

	case protocol.KindCounterOpened:
		var body struct {
			ActionID      uuid.UUID `json:"actionId"`
			InitiatorID   uuid.UUID `json:"initiatorId"`
			ActionType    string    `json:"actionType"`
			TimeRemaining int       `json:"timeRemaining"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CounterOpened{
			ActionID:      body.ActionID,
			InitiatorID:   body.InitiatorID,
			ActionType:    game.ActionType(body.ActionType),
			TimeRemaining: body.TimeRemaining,
		}, nil

	case protocol.KindCounterTick:
		var body struct {
			TimeRemaining int `json:"timeRemaining"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CounterTick{TimeRemaining: body.TimeRemaining}, nil

	case protocol.KindCounterChained:
		var body struct {
			PlayerID  uuid.UUID `json:"playerId"`
			Timestamp time.Time `json:"timestamp"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CounterChained{PlayerID: body.PlayerID, Timestamp: body.Timestamp}, nil

	case protocol.KindCounterResolved:
		var body struct {
			FinalResult string `json:"finalResult"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CounterResolved{FinalResult: game.CounterResolution(body.FinalResult)}, nil

	case protocol.KindDetectiveStarted:
		var body struct {
			ActorID        uuid.UUID   `json:"actorId"`
			SetType        string      `json:"setType"`
			AllowedPlayers []uuid.UUID `json:"allowedPlayers"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.DetectiveStarted{
			ActorID:        body.ActorID,
			SetType:        game.DetectiveSetType(body.SetType),
			AllowedPlayers: body.AllowedPlayers,
		}, nil

	case protocol.KindDetectiveTarget:
		var body struct {
			ActorID        uuid.UUID `json:"actorId"`
			TargetPlayerID uuid.UUID `json:"targetPlayerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.DetectiveTargetChosen{ActorID: body.ActorID, TargetPlayerID: body.TargetPlayerID}, nil

	case protocol.KindDetectiveSecretReq:
		var body struct {
			ActionID     uuid.UUID     `json:"actionId"`
			FromPlayerID uuid.UUID     `json:"fromPlayerId"`
			SetType      string        `json:"setType"`
			Pool         []game.Secret `json:"pool"`
			Message      string        `json:"message"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.DetectiveSecretRequested{
			ActionID:     body.ActionID,
			FromPlayerID: body.FromPlayerID,
			SetType:      game.DetectiveSetType(body.SetType),
			Pool:         body.Pool,
			Message:      body.Message,
		}, nil

	case protocol.KindDetectiveCompleted:
		var body struct {
			ActorID uuid.UUID `json:"actorId"`
			SetType string    `json:"setType"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.DetectiveCompleted{ActorID: body.ActorID, SetType: game.DetectiveSetType(body.SetType)}, nil

	case protocol.KindEventStarted:
		var body struct {
			ActorID uuid.UUID `json:"actorId"`
			Family  string    `json:"family"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.EventStarted{ActorID: body.ActorID, Family: game.EventFamily(body.Family)}, nil

	case protocol.KindEventStep:
		var body struct {
			ActorID         uuid.UUID      `json:"actorId"`
			Family          string         `json:"family"`
			Step            string         `json:"step"`
			Candidates      []game.CardRef `json:"candidates"`
			TargetPlayerID  uuid.UUID      `json:"targetPlayerId"`
			Quantity        int            `json:"quantity"`
			Direction       string         `json:"direction"`
			SetPosition     int            `json:"setPosition"`
			CurrentPlayerID uuid.UUID      `json:"currentPlayerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.EventStepAdvanced{
			ActorID:         body.ActorID,
			Family:          game.EventFamily(body.Family),
			Step:            game.EventStep(body.Step),
			Candidates:      body.Candidates,
			TargetPlayerID:  body.TargetPlayerID,
			Quantity:        body.Quantity,
			Direction:       game.FollyDirection(body.Direction),
			SetPosition:     body.SetPosition,
			CurrentPlayerID: body.CurrentPlayerID,
		}, nil

	case protocol.KindEventCompleted:
		var body struct {
			ActorID uuid.UUID `json:"actorId"`
			Family  string    `json:"family"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.EventCompleted{ActorID: body.ActorID, Family: game.EventFamily(body.Family)}, nil

	case protocol.KindCardTradeOffer:
		var body struct {
			FromPlayerID uuid.UUID `json:"fromPlayerId"`
			CardID       uuid.UUID `json:"cardId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CardTradeOffer{FromPlayerID: body.FromPlayerID, CardID: body.CardID}, nil

	case protocol.KindFollyAdvanced:
		var body struct {
			CurrentPlayerID uuid.UUID `json:"currentPlayerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.FollyAdvanced{CurrentPlayerID: body.CurrentPlayerID}, nil

	case protocol.KindMustDraw:
		var body struct {
			PlayerID uuid.UUID `json:"playerId"`
			Count    int       `json:"count"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.MustDraw{PlayerID: body.PlayerID, Count: body.Count}, nil

	case protocol.KindCardDrawn:
		var body struct {
			PlayerID uuid.UUID     `json:"playerId"`
			Card     *game.CardRef `json:"card"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.CardDrawn{PlayerID: body.PlayerID, Card: body.Card}, nil

	case protocol.KindTurnFinished:
		var body struct {
			NextPlayerID uuid.UUID `json:"nextPlayerId"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.TurnFinished{NextPlayerID: body.NextPlayerID}, nil

	case protocol.KindDisgraceChanged:
		var body struct {
			PlayerIDs []uuid.UUID `json:"playerIds"`
		}
		if err := decode(env, &body); err != nil {
			return nil, err
		}
		return game.DisgraceChanged{PlayerIDs: body.PlayerIDs}, nil
	}

	return nil, nil
}

func decode(env protocol.Envelope, dst any) error {
	if len(env.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	return nil
}
