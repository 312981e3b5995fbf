package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/thelaith/satire-empire/internal/game"
	"github.com/thelaith/satire-empire/internal/keys"
)

type territoryEntry struct {
	Name       string   `json:"name"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Longitude  float64  `json:"longitude"`
	Latitude   float64  `json:"latitude"`
	Wealth     int      `json:"wealth"`
	Attention  int      `json:"attention"`
	Technology int      `json:"technology"`
	Special    []string `json:"special,omitempty"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Timing struct {
		MorningBriefSeconds int `json:"morning_brief_seconds"`
		ActionPhaseSeconds  int `json:"action_phase_seconds"`
		BreakingNewsSeconds int `json:"breaking_news_seconds"`
	} `json:"timing"`
	Limits struct {
		MinPlayers        int `json:"min_players"`
		MaxPlayers        int `json:"max_players"`
		MaxActionsPerTurn int `json:"max_actions_per_turn"`
	} `json:"limits"`
	Balance struct {
		StartingTerritoriesPerPlayer int `json:"starting_territories_per_player"`
		InvestGain                   int `json:"invest_gain"`
		InfluenceGain                int `json:"influence_gain"`
		InfluenceFlipThreshold       int `json:"influence_flip_threshold"`
		GarrisonBonus                int `json:"garrison_bonus"`
	} `json:"balance"`
	Victory struct {
		TerritorialFraction float64 `json:"territorial_fraction"`
	} `json:"victory"`
	ActionCosts   map[string]game.Resources `json:"action_costs"`
	TerritoryList []territoryEntry          `json:"territory_list"`
}

// Timing holds the per-phase durations in seconds.
type Timing struct {
	MorningBriefSeconds int
	ActionPhaseSeconds  int
	BreakingNewsSeconds int
}

func (t Timing) MorningBrief() time.Duration {
	return time.Duration(t.MorningBriefSeconds) * time.Second
}

func (t Timing) ActionPhase() time.Duration {
	return time.Duration(t.ActionPhaseSeconds) * time.Second
}

func (t Timing) BreakingNews() time.Duration {
	return time.Duration(t.BreakingNewsSeconds) * time.Second
}

// Limits bounds player counts and per-turn action quotas.
type Limits struct {
	MinPlayers        int
	MaxPlayers        int
	MaxActionsPerTurn int
}

// Balance holds effect magnitudes so balance changes never touch engine code.
type Balance struct {
	StartingTerritoriesPerPlayer int
	InvestGain                   int
	InfluenceGain                int
	InfluenceFlipThreshold       int
	GarrisonBonus                int
}

// Rules is the loaded, validated game configuration.
type Rules struct {
	ServerAddress       string
	Timing              Timing
	Limits              Limits
	Balance             Balance
	TerritorialFraction float64
	ActionCosts         map[game.ActionType]game.Resources
	// Territories are board prototypes; the engine copies them per match.
	Territories []game.Territory
}

// CostFor returns the configured base cost of an action type.
func (r *Rules) CostFor(t game.ActionType) (game.Resources, bool) {
	c, ok := r.ActionCosts[t]
	return c, ok
}

var requiredActionTypes = []game.ActionType{
	game.ActionInvest, game.ActionInfluence, game.ActionInvade,
	game.ActionGoViral, game.ActionCancelCampaign, game.ActionTrendHijack,
}

// LoadConfig reads the rules file at path. It requires the key
// `territory_list` and a complete `action_costs` table.
func LoadConfig(path string) (*Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.TerritoryList) == 0 {
		return nil, fmt.Errorf("config file %s: territory_list is empty (provide 'territory_list' array)", path)
	}
	nameSet := make(map[string]struct{}, len(rc.TerritoryList))
	territories := make([]game.Territory, 0, len(rc.TerritoryList))
	for _, t := range rc.TerritoryList {
		if t.Name == "" {
			return nil, fmt.Errorf("config file %s: territory entry missing 'name'", path)
		}
		ln := keys.TerritorySlug(t.Name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate territory name '%s'", path, t.Name)
		}
		nameSet[ln] = struct{}{}
		territories = append(territories, game.Territory{
			ID:   keys.TerritorySlug(t.Name),
			Name: t.Name,
			Position: game.Position{
				X: t.X, Y: t.Y, Longitude: t.Longitude, Latitude: t.Latitude,
			},
			Generation: game.Resources{
				Wealth: t.Wealth, Attention: t.Attention, Technology: t.Technology,
			},
			Influence:         map[string]int{},
			SpecialProperties: t.Special,
		})
	}

	costs := make(map[game.ActionType]game.Resources, len(rc.ActionCosts))
	for k, v := range rc.ActionCosts {
		costs[game.ActionType(k)] = v
	}
	for _, at := range requiredActionTypes {
		if _, ok := costs[at]; !ok {
			return nil, fmt.Errorf("config file %s: action_costs missing entry for '%s'", path, at)
		}
	}

	if rc.Timing.MorningBriefSeconds <= 0 || rc.Timing.ActionPhaseSeconds <= 0 || rc.Timing.BreakingNewsSeconds <= 0 {
		return nil, fmt.Errorf("config file %s: all timing durations must be positive", path)
	}
	if rc.Limits.MinPlayers < 2 || rc.Limits.MaxPlayers < rc.Limits.MinPlayers {
		return nil, fmt.Errorf("config file %s: invalid player limits (min %d, max %d)", path, rc.Limits.MinPlayers, rc.Limits.MaxPlayers)
	}
	if rc.Limits.MaxActionsPerTurn <= 0 {
		return nil, fmt.Errorf("config file %s: max_actions_per_turn must be positive", path)
	}
	if rc.Victory.TerritorialFraction <= 0 || rc.Victory.TerritorialFraction > 1 {
		return nil, fmt.Errorf("config file %s: victory.territorial_fraction must be in (0,1]", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &Rules{
		ServerAddress: addr,
		Timing: Timing{
			MorningBriefSeconds: rc.Timing.MorningBriefSeconds,
			ActionPhaseSeconds:  rc.Timing.ActionPhaseSeconds,
			BreakingNewsSeconds: rc.Timing.BreakingNewsSeconds,
		},
		Limits: Limits{
			MinPlayers:        rc.Limits.MinPlayers,
			MaxPlayers:        rc.Limits.MaxPlayers,
			MaxActionsPerTurn: rc.Limits.MaxActionsPerTurn,
		},
		Balance: Balance{
			StartingTerritoriesPerPlayer: rc.Balance.StartingTerritoriesPerPlayer,
			InvestGain:                   rc.Balance.InvestGain,
			InfluenceGain:                rc.Balance.InfluenceGain,
			InfluenceFlipThreshold:       rc.Balance.InfluenceFlipThreshold,
			GarrisonBonus:                rc.Balance.GarrisonBonus,
		},
		TerritorialFraction: rc.Victory.TerritorialFraction,
		ActionCosts:         costs,
		Territories:         territories,
	}, nil
}
