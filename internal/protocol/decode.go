package protocol

import (
	"encoding/json"
	"errors"
	"strings"

	"catan/internal/domain"
)

// Client-facing decode errors.
var (
	ErrInvalidMessage = errors.New("Invalid message")
	ErrInvalidAction  = errors.New("Invalid command")
	ErrDataInvalid    = errors.New("Data invalid")
	ErrUnknownCommand = errors.New("Command invalid")
	ErrNoName         = errors.New("No name specified")
	ErrNoGameKey      = errors.New("No game key specified")
)

// IsDecodeError reports whether err came from this package.
func IsDecodeError(err error) bool {
	for _, target := range []error{ErrInvalidMessage, ErrInvalidAction, ErrDataInvalid, ErrUnknownCommand, ErrNoName, ErrNoGameKey} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type envelope struct {
	Action  *string         `json:"action"`
	Name    json.RawMessage `json:"name"`
	GameKey json.RawMessage `json:"gamekey"`
	Game    json.RawMessage `json:"game"`

	Settlement json.RawMessage `json:"settlement"`
	Road       json.RawMessage `json:"road"`
	Resources  json.RawMessage `json:"resources"`
	Position   json.RawMessage `json:"position"`
	Player     json.RawMessage `json:"player"`
	Card       json.RawMessage `json:"card"`
	Accept     json.RawMessage `json:"accept"`
	OtherUser  json.RawMessage `json:"otherUser"`
	Info       json.RawMessage `json:"additionalInformation"`
}

type cardInfo struct {
	RobberPosition json.RawMessage `json:"robberPosition"`
	Monopoly       json.RawMessage `json:"monopoly"`
	Resources      json.RawMessage `json:"resources"`
	Road           json.RawMessage `json:"road"`
}

// Decode parses a command envelope.
func Decode(data []byte) (Request, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Request{}, ErrInvalidMessage
	}
	if env.Action == nil {
		return Request{}, ErrInvalidAction
	}

	req := Request{Action: Action(*env.Action)}
	switch req.Action {
	case ActionCreate, ActionStart:
		return req, nil
	case ActionName:
		name, err := decodeString(env.Name)
		if err != nil || strings.TrimSpace(name) == "" {
			return Request{}, ErrNoName
		}
		req.Name = strings.TrimSpace(name)
		return req, nil
	case ActionJoin:
		key, err := decodeString(env.GameKey)
		if err != nil || key == "" {
			return Request{}, ErrNoGameKey
		}
		req.GameKey = key
		return req, nil
	case ActionGame:
		cmd, err := decodeGame(&env)
		if err != nil {
			return Request{}, err
		}
		req.Command = cmd
		return req, nil
	default:
		return Request{}, ErrInvalidAction
	}
}

// DecodeCommand parses a bare game command, {"game": "...", ...}.
func DecodeCommand(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrInvalidMessage
	}
	return decodeGame(&env)
}

func decodeGame(env *envelope) (Command, error) {
	kind, err := decodeString(env.Game)
	if err != nil {
		return nil, ErrDataInvalid
	}

	switch kind {
	case CmdStartSettlement:
		settlement, err := decodeNode(env.Settlement)
		if err != nil {
			return nil, err
		}
		road, err := decodeNode(env.Road)
		if err != nil {
			return nil, err
		}
		return StartSettlement{Settlement: settlement, Road: road}, nil
	case CmdDice:
		return RollDice{}, nil
	case CmdEnd:
		return EndTurn{}, nil
	case CmdSettlement:
		pos, err := decodeNode(env.Settlement)
		if err != nil {
			return nil, err
		}
		return BuildSettlement{Position: pos}, nil
	case CmdCity:
		pos, err := decodeNode(env.Settlement)
		if err != nil {
			return nil, err
		}
		return BuildCity{Position: pos}, nil
	case CmdRoad:
		road, err := decodeEdge(env.Road)
		if err != nil {
			return nil, err
		}
		return BuildRoad{Road: road}, nil
	case CmdForfeit:
		resources, err := decodeBundle(env.Resources)
		if err != nil {
			return nil, err
		}
		return Forfeit{Resources: resources}, nil
	case CmdRobber:
		pos, err := decodeHex(env.Position)
		if err != nil {
			return nil, err
		}
		return MoveRobber{Position: pos}, nil
	case CmdRob:
		player, err := decodeInt(env.Player)
		if err != nil {
			return nil, err
		}
		return Rob{Player: domain.Seat(player)}, nil
	case CmdGetCard:
		return DrawCard{}, nil
	case CmdPlayCard:
		return decodePlayCard(env)
	case CmdMarketTrade:
		give, take, err := decodeBundlePair(env.Resources)
		if err != nil {
			return nil, err
		}
		return MarketTrade{Give: give, Take: take}, nil
	case CmdUserTrade:
		give, take, err := decodeBundlePair(env.Resources)
		if err != nil {
			return nil, err
		}
		return ProposeTrade{Give: give, Take: take}, nil
	case CmdOtherUserTrade:
		var accept bool
		if err := decodeRequired(env.Accept, &accept); err != nil {
			return nil, err
		}
		return RespondTrade{Accept: accept}, nil
	case CmdAcceptTrade:
		player, err := decodeInt(env.OtherUser)
		if err != nil {
			return nil, err
		}
		return AcceptTrade{Player: domain.Seat(player)}, nil
	default:
		return nil, ErrUnknownCommand
	}
}

// decodePlayCard checks only the extra field the chosen card needs. Card
// numbers outside the known kinds pass through for the game to reject.
func decodePlayCard(env *envelope) (Command, error) {
	n, err := decodeInt(env.Card)
	if err != nil {
		return nil, err
	}
	cmd := PlayCard{Card: domain.DevCard(n)}
	info := &cardInfo{}
	if !isMissing(env.Info) {
		if err := json.Unmarshal(env.Info, info); err != nil {
			return nil, ErrDataInvalid
		}
	}

	switch cmd.Card {
	case domain.Knight:
		if cmd.RobberPosition, err = decodeHex(info.RobberPosition); err != nil {
			return nil, err
		}
	case domain.Monopoly:
		r, err := decodeInt(info.Monopoly)
		if err != nil || !domain.Resource(r).Valid() {
			return nil, ErrDataInvalid
		}
		cmd.Monopoly = domain.Resource(r)
	case domain.YearOfPlenty:
		var picks []int
		if err := decodeRequired(info.Resources, &picks); err != nil || len(picks) != 2 {
			return nil, ErrDataInvalid
		}
		for i, r := range picks {
			if !domain.Resource(r).Valid() {
				return nil, ErrDataInvalid
			}
			cmd.Resources[i] = domain.Resource(r)
		}
	case domain.RoadBuilding:
		var raw []json.RawMessage
		if err := decodeRequired(info.Road, &raw); err != nil || len(raw) < 1 || len(raw) > 2 {
			return nil, ErrDataInvalid
		}
		for _, r := range raw {
			e, err := decodeEdge(r)
			if err != nil {
				return nil, err
			}
			cmd.Roads = append(cmd.Roads, e)
		}
	}
	return cmd, nil
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeRequired(raw json.RawMessage, v any) error {
	if isMissing(raw) {
		return ErrDataInvalid
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrDataInvalid
	}
	return nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	err := decodeRequired(raw, &s)
	return s, err
}

func decodeInt(raw json.RawMessage) (int, error) {
	var n int
	err := decodeRequired(raw, &n)
	return n, err
}

func decodeInts(raw json.RawMessage, size int) ([]int, error) {
	var v []int
	if err := decodeRequired(raw, &v); err != nil || len(v) != size {
		return nil, ErrDataInvalid
	}
	return v, nil
}

func decodeNode(raw json.RawMessage) (domain.NodePos, error) {
	v, err := decodeInts(raw, 3)
	if err != nil {
		return domain.NodePos{}, err
	}
	return domain.NodePos{Row: v[0], Col: v[1], Corner: domain.Corner(v[2])}, nil
}

func decodeHex(raw json.RawMessage) (domain.HexPos, error) {
	v, err := decodeInts(raw, 2)
	if err != nil {
		return domain.HexPos{}, err
	}
	return domain.HexPos{Row: v[0], Col: v[1]}, nil
}

func decodeEdge(raw json.RawMessage) (domain.Edge, error) {
	var ends []json.RawMessage
	if err := decodeRequired(raw, &ends); err != nil || len(ends) != 2 {
		return domain.Edge{}, ErrDataInvalid
	}
	from, err := decodeNode(ends[0])
	if err != nil {
		return domain.Edge{}, err
	}
	to, err := decodeNode(ends[1])
	if err != nil {
		return domain.Edge{}, err
	}
	return domain.Edge{From: from, To: to}, nil
}

func decodeBundle(raw json.RawMessage) (domain.Bundle, error) {
	var b domain.Bundle
	v, err := decodeInts(raw, domain.NumResources)
	if err != nil {
		return b, err
	}
	copy(b[:], v)
	return b, nil
}

func decodeBundlePair(raw json.RawMessage) (domain.Bundle, domain.Bundle, error) {
	var pair []json.RawMessage
	if err := decodeRequired(raw, &pair); err != nil || len(pair) != 2 {
		return domain.Bundle{}, domain.Bundle{}, ErrDataInvalid
	}
	give, err := decodeBundle(pair[0])
	if err != nil {
		return domain.Bundle{}, domain.Bundle{}, err
	}
	take, err := decodeBundle(pair[1])
	if err != nil {
		return domain.Bundle{}, domain.Bundle{}, err
	}
	return give, take, nil
}

// DecodeName parses a bare {"name": "..."} payload.
func DecodeName(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", ErrInvalidMessage
	}
	name, err := decodeString(env.Name)
	if err != nil || strings.TrimSpace(name) == "" {
		return "", ErrNoName
	}
	return strings.TrimSpace(name), nil
}

// DecodeGameKey parses a bare {"gamekey": "..."} payload.
func DecodeGameKey(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", ErrInvalidMessage
	}
	key, err := decodeString(env.GameKey)
	if err != nil || key == "" {
		return "", ErrNoGameKey
	}
	return key, nil
}
