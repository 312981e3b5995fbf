package faction

import (
	"fmt"
	"sort"
)

// constructors maps faction id to its builder. The engine resolves players'
// faction tags through New and never branches on identity afterwards.
var constructors = map[string]func() Faction{
	"influencer-cult":  func() Faction { return NewInfluencerCult() },
	"rogue-ai":         func() Faction { return NewRogueAI() },
	"hyper-capitalist": func() Faction { return NewHyperCapitalist() },
}

// New builds a fresh faction instance for the given id.
func New(id string) (Faction, error) {
	ctor, ok := constructors[id]
	if !ok {
		return nil, fmt.Errorf("unknown faction: %s", id)
	}
	return ctor(), nil
}

// IDs lists the registered faction ids.
func IDs() []string {
	out := make([]string, 0, len(constructors))
	for id := range constructors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
