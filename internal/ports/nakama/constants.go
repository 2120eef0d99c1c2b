package nakama

const (
	// RPC ids clients call outside a match socket.
	RpcName   = "name"
	RpcCreate = "create"
	RpcJoin   = "join"
	RpcStats  = "stats"

	// MatchNameCatan is the authoritative match handler name registered with Nakama.
	MatchNameCatan = "catan_match"

	// GameConfigPath is the optional JSON configuration file.
	GameConfigPath = "data/catan_config.json"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpCodeCommand int64 = 1

	// Server -> Client
	OpCodeResult  int64 = 100 // {"result":"success", ...}
	OpCodeError   int64 = 101 // {"error": "..."}
	OpCodeGame    int64 = 102 // {"game": "<tag>", ...}
	OpCodeMessage int64 = 103 // {"message": "..."}
)

// Match label keys.
const (
	MatchLabelKeyOpen    = "open"
	MatchLabelKeyState   = "state"
	MatchLabelKeyKey     = "key"
	MatchLabelKeyPlayers = "players"
)

// Match params passed from RpcCreate to MatchInit.
const (
	matchParamKey   = "key"
	matchParamOwner = "owner"
)
