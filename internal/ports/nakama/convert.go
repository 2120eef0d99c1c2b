package nakama

import (
	"encoding/json"
	"fmt"

	"catan/internal/app"
)

// Lobby notices sent under OpCodeMessage.
const (
	msgJoined      = "%s has joined the game"
	msgLeft        = "%s has left the game"
	msgOwnerClosed = "Owner left game, shutting down"
)

// encodeEvent converts an app event into an op code and JSON envelope.
// Game events merge the recipient's state bundle and the payload under
// a "game" tag.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	switch ev.Kind {
	case app.EventJoinAccepted:
		p := ev.Payload.(app.JoinAcceptedPayload)
		return encode(OpCodeResult, map[string]any{"result": "success", "joinedUsers": p.JoinedUsers})
	case app.EventPlayerJoined:
		p := ev.Payload.(app.PlayerJoinedPayload)
		return encodeMessage(fmt.Sprintf(msgJoined, p.Name))
	case app.EventPlayerLeft:
		p := ev.Payload.(app.PlayerLeftPayload)
		return encodeMessage(fmt.Sprintf(msgLeft, p.Name))
	case app.EventMatchClosed:
		return encodeMessage(msgOwnerClosed)
	}

	envelope := map[string]json.RawMessage{}
	if ev.State != nil {
		if err := mergeJSON(envelope, ev.State); err != nil {
			return 0, nil, err
		}
	}
	if ev.Payload != nil {
		if err := mergeJSON(envelope, ev.Payload); err != nil {
			return 0, nil, err
		}
	}
	tag, err := json.Marshal(string(ev.Kind))
	if err != nil {
		return 0, nil, err
	}
	envelope["game"] = tag
	return encode(OpCodeGame, envelope)
}

// encodeError builds the {"error": "..."} envelope.
func encodeError(err error) (int64, []byte, error) {
	return encode(OpCodeError, map[string]string{"error": err.Error()})
}

func encodeMessage(message string) (int64, []byte, error) {
	return encode(OpCodeMessage, map[string]string{"message": message})
}

func encode(opCode int64, v any) (int64, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return opCode, data, nil
}

// mergeJSON copies the top-level keys of v's JSON object into dst.
func mergeJSON(dst map[string]json.RawMessage, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to flatten %T: %w", v, err)
	}
	for k, raw := range fields {
		dst[k] = raw
	}
	return nil
}
