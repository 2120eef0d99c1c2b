package nakama

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"catan/internal/app"
	"catan/internal/config"
	"catan/internal/ports"
	"catan/internal/protocol"

	"github.com/heroiclabs/nakama-common/runtime"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// emptyMatchTimeout bounds how long a match lives with nobody connected.
	emptyMatchTimeout = 60 * time.Second
	// admissionTimeout is how long a user admitted by the join RPC has to
	// open their socket before the membership is dropped.
	admissionTimeout = 30 * time.Second
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Match      *app.Match                  // Lobby members and, once started, the game
	App        *app.Service                // Game use-cases
	Presences  map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	Limiters   map[string]*rate.Limiter    // Map UserId -> inbound command limiter
	Stats      ports.StatsPort             // Finished game records, nil disables recording
	GamesEnded int                         // Games finished in this match
	EmptyTicks int                         // Consecutive ticks with no presences
}

type matchHandler struct {
	registry *app.Registry
	cfg      config.GameConfig
	stats    func(nk runtime.NakamaModule) ports.StatsPort
}

func newMatchHandler(registry *app.Registry, cfg config.GameConfig) *matchHandler {
	return &matchHandler{
		registry: registry,
		cfg:      cfg,
		stats: func(nk runtime.NakamaModule) ports.StatsPort {
			if nk == nil {
				return nil
			}
			return NewNakamaStatsAdapter(nk)
		},
	}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	key, _ := params[matchParamKey].(string)
	owner, _ := params[matchParamOwner].(string)
	if key == "" || owner == "" {
		logger.Error("MatchInit: missing key or owner in params %v", params)
		return nil, 0, ""
	}

	state := &MatchState{
		Match:     app.NewMatch(key, owner),
		App:       app.NewServiceWithRules(nil, mh.cfg.Rules()),
		Presences: make(map[string]runtime.Presence),
		Limiters:  make(map[string]*rate.Limiter),
		Stats:     mh.stats(nk),
	}

	label, err := mh.label(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Info("MatchInit: Match %s created by %s.", key, owner)
	return state, mh.cfg.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if key, ok := mh.registry.MatchOf(userID); !ok || key != matchState.Match.Key {
		return state, false, app.ErrNotMember.Error()
	}
	if err := matchState.App.CanJoin(matchState.Match, userID); err != nil {
		if !matchState.Match.IsMember(userID) {
			mh.registry.Release(userID)
		}
		return state, false, err.Error()
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		events, err := matchState.App.Join(matchState.Match, userID, displayName(ctx, nk, p))
		if err != nil {
			logger.Warn("MatchJoin: User %s rejected: %v", userID, err)
			if !matchState.Match.IsMember(userID) {
				mh.registry.Release(userID)
			}
			continue
		}
		mh.registry.Seated(userID)
		matchState.Presences[userID] = p
		matchState.Limiters[userID] = rate.NewLimiter(rate.Limit(mh.cfg.CommandsPerSecond), mh.cfg.CommandBurst)
		logger.Debug("MatchJoin: User %s joined match %s.", userID, matchState.Match.Key)
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
	}

	mh.syncLobby(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	closed := false
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		delete(matchState.Limiters, userID)
		mh.registry.Release(userID)

		outcome, events := matchState.App.Leave(matchState.Match, userID)
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
		switch outcome {
		case app.LeaveClosed:
			logger.Info("MatchLeave: Owner %s left match %s, closing.", userID, matchState.Match.Key)
			closed = true
		case app.LeaveAborted:
			logger.Info("MatchLeave: User %s left running game in match %s, game aborted.", userID, matchState.Match.Key)
		case app.LeaveLobby:
			logger.Debug("MatchLeave: User %s left lobby %s.", userID, matchState.Match.Key)
		}
	}

	if closed {
		mh.registry.Close(matchState.Match.Key)
		return nil
	}

	mh.syncLobby(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	if tick%int64(mh.cfg.TickRate) == 0 {
		for _, userID := range mh.registry.ReleaseStale(matchState.Match.Key, admissionTimeout) {
			logger.Debug("MatchLoop: Admission of %s to %s lapsed.", userID, matchState.Match.Key)
		}
	}

	if len(matchState.Presences) == 0 {
		matchState.EmptyTicks++
		if matchState.EmptyTicks >= int(emptyMatchTimeout.Seconds())*mh.cfg.TickRate {
			logger.Info("MatchLoop: Terminating empty match %s.", matchState.Match.Key)
			mh.registry.Close(matchState.Match.Key)
			return nil
		}
		return matchState
	}
	matchState.EmptyTicks = 0

	for _, msg := range messages {
		if msg.GetOpCode() != OpCodeCommand {
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
			mh.sendError(matchState, dispatcher, logger, msg.GetUserId(), protocol.ErrInvalidMessage)
			continue
		}
		mh.handleCommand(ctx, matchState, dispatcher, logger, msg)
	}

	return matchState
}

// handleCommand decodes and applies one inbound envelope.
func (mh *matchHandler) handleCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	if limiter, ok := state.Limiters[userID]; ok && !limiter.Allow() {
		mh.sendError(state, dispatcher, logger, userID, app.ErrRateLimited)
		return
	}

	req, err := protocol.Decode(msg.GetData())
	if err != nil {
		logger.Warn("handleCommand: User %s sent malformed command: %v", userID, err)
		mh.sendError(state, dispatcher, logger, userID, err)
		return
	}

	wasPlaying := state.Match.Game != nil
	var events []app.Event
	switch req.Action {
	case protocol.ActionStart:
		events, err = state.App.Start(state.Match, userID)
		if err == nil {
			logger.Info("handleCommand: Match %s started with %d players.", state.Match.Key, len(state.Match.Members))
		}
	case protocol.ActionGame:
		events, err = state.App.Apply(state.Match, userID, req.Command)
	default:
		err = protocol.ErrInvalidAction
	}
	if err != nil {
		logger.Warn("handleCommand: User %s %s failed: %v (%s)", userID, req.Action, err, app.KindOf(err))
		mh.sendError(state, dispatcher, logger, userID, err)
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	if wasPlaying != (state.Match.Game != nil) {
		mh.syncLobby(state, dispatcher, logger)
	}
}

// dispatchEvents sends events and records any finished game.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		if ev.Kind == app.EventGameEnded {
			mh.recordResult(ctx, state, logger, ev.Payload.(app.GameEndedPayload))
		}
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, data, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Intended recipients that are all disconnected must not turn into a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// sendError sends an {"error": "..."} envelope to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	opCode, data, err := encodeError(cause)
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) recordResult(ctx context.Context, state *MatchState, logger runtime.Logger, ended app.GameEndedPayload) {
	state.GamesEnded++
	if state.Stats == nil {
		return
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	record := ports.MatchRecord{
		ID:        fmt.Sprintf("%s-%s-%d", matchID, state.Match.Key, state.GamesEnded),
		MatchID:   matchID,
		GameKey:   state.Match.Key,
		WinnerID:  ended.WinnerID,
		PlayerIDs: ended.PlayerIDs,
		EndedAt:   time.Now(),
	}
	recorded, err := state.Stats.RecordMatch(ctx, record, app.StatsUpdates(ended))
	if err != nil {
		logger.Error("recordResult: Failed to record game %s: %v", record.ID, err)
		return
	}
	if !recorded {
		logger.Warn("recordResult: Game %s was already recorded.", record.ID)
		return
	}
	logger.Info("recordResult: Game %s won by %s.", record.ID, ended.WinnerID)
}

// syncLobby publishes the lobby state to the registry and the match label.
func (mh *matchHandler) syncLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.registry.Update(state.Match.Key, state.Match.Game != nil, len(state.Match.Members))

	label, err := mh.label(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) label(state *MatchState) (string, error) {
	open := 0
	phase := "playing"
	if state.Match.Game == nil {
		phase = "lobby"
		open = state.App.Rules().MaxPlayers - len(state.Match.Members)
	}

	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKeyOpen:    open,
		MatchLabelKeyState:   phase,
		MatchLabelKeyKey:     state.Match.Key,
		MatchLabelKeyPlayers: len(state.Match.Members),
	})
	if err != nil {
		return "", err
	}
	data, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayName prefers the account display name over the username.
func displayName(ctx context.Context, nk runtime.NakamaModule, p runtime.Presence) string {
	if nk != nil {
		if account, err := nk.AccountGetId(ctx, p.GetUserId()); err == nil && account.GetUser().GetDisplayName() != "" {
			return account.GetUser().GetDisplayName()
		}
	}
	return p.GetUsername()
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.registry.Close(matchState.Match.Key)
		logger.Debug("MatchTerminate: Match %s terminated.", matchState.Match.Key)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
