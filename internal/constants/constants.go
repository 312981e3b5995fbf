package constants

// Routes used by the backend router.
const (
	RouteAPIPrefix     = "/api"
	RouteFactions      = "/factions"
	RoutePublicMatches = "/public-matches"
	RouteMatches       = "/matches"
	RouteMatchesJoin   = "/matches/join"
	RouteMatchByCode   = "/matches/:matchCode"
	RouteMatchStart    = "/matches/:matchCode/start"
	RouteMatchLeave    = "/matches/:matchCode/leave"
	RouteMatchActions  = "/matches/:matchCode/actions"
	RouteMatchAdvance  = "/matches/:matchCode/advance"
	RouteVersion       = "/version"
)

// Common JSON response keys.
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers.
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidMatchCode    = "Invalid match code"
	ErrMatchNotFound       = "Match not found"
	ErrFailedCreateMatch   = "Failed to create match"
	ErrFailedFetchMatches  = "Failed to fetch matches"
	ErrFailedEncodeMatch   = "Failed to encode match"
	ErrMatchNameExceeds    = "Match name exceeds 32 characters"
	ErrPlayerNameRequired  = "Player name is required"
	ErrMatchFull           = "Match is full"
	ErrMatchAlreadyStarted = "Match has already started"
	ErrMatchFinished       = "Match is finished"
	ErrPlayerCountRange    = "Player count outside the allowed range"
	ErrPlayerNotInMatch    = "Player not in this match"
	ErrPlayerAlreadyJoined = "Player already joined this match"
	ErrUnknownFaction      = "Unknown faction"
	ErrNotActionPhase      = "Actions are only accepted during the action phase"
	ErrActionQuotaReached  = "Maximum actions per turn reached"
	ErrInsufficientRes     = "Insufficient resources"
	ErrUnknownActionType   = "Unknown action type"
	ErrFailedStoreAction   = "Failed to store action"
	ErrPhaseNotAdvanceable = "Phase cannot be advanced"
	ErrFailedAdvancePhase  = "Failed to advance phase"
	ErrTooManyRequests     = "Too many requests"
)

// Logging field names.
const (
	LogFieldMatchID  = "match_id"
	LogFieldPlayerID = "player_id"
	LogFieldPhase    = "phase"
	LogFieldAddr     = "addr"
	LogFieldError    = "error"
)
