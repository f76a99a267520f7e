package spelllist

import (
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

func slugs(names ...string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{Slug: n}
	}
	return out
}

// builtinLists are compiled in and never change at runtime.
var builtinLists = []*SpellList{
	{
		ID:        "pyromancer",
		Name:      "Pyromancer",
		Tradition: statistic.Arcane,
		Levels: map[int][]Entry{
			0:  slugs("produce-flame", "detect-magic"),
			1:  slugs("burning-hands", "fear"),
			2:  slugs("flaming-sphere", "resist-energy"),
			3:  slugs("fireball"),
			4:  slugs("wall-of-fire", "fire-shield"),
			5:  {{Slug: "elemental-form", Label: "Elemental Form (Fire Only)"}, {Slug: "fireball"}},
			6:  slugs("fire-seeds"),
			7:  slugs("fiery-body"),
			8:  slugs("wall-of-fire"),
			9:  slugs("meteor-swarm"),
			10: slugs("cataclysm"),
		},
	},
	{
		ID:        "healer",
		Name:      "Healer",
		Tradition: statistic.Divine,
		Levels: map[int][]Entry{
			0:  slugs("stabilize", "guidance"),
			1:  slugs("heal", "bless"),
			2:  slugs("restoration", "remove-fear"),
			3:  slugs("heal", "remove-disease"),
			4:  slugs("restoration", "freedom-of-movement"),
			5:  slugs("breath-of-life"),
			6:  slugs("heal", "spirit-blast"),
			7:  slugs("regenerate"),
			8:  slugs("moment-of-renewal"),
			9:  slugs("massacre"),
			10: slugs("revival"),
		},
	},
	{
		ID:        "enchanter",
		Name:      "Enchanter",
		Tradition: statistic.Occult,
		Levels: map[int][]Entry{
			0:  slugs("daze", "message"),
			1:  slugs("charm", "command"),
			2:  slugs("hideous-laughter"),
			3:  slugs("paralyze"),
			4:  slugs("suggestion"),
			5:  slugs("synaptic-pulse"),
			6:  slugs("dominate"),
			7:  slugs("warp-mind"),
			8:  slugs("uncontrollable-dance"),
			9:  slugs("overwhelming-presence"),
			10: slugs("fabricated-truth"),
		},
	},
	{
		ID:        "stormcaller",
		Name:      "Stormcaller",
		Tradition: statistic.Primal,
		Levels: map[int][]Entry{
			0:  slugs("electric-arc", "tanglefoot"),
			1:  slugs("shocking-grasp", "gust-of-wind"),
			2:  slugs("obscuring-mist"),
			3:  slugs("lightning-bolt"),
			4:  slugs("air-walk"),
			5:  {{Slug: "elemental-form", Label: "Elemental Form (Air Only)"}},
			6:  slugs("chain-lightning"),
			7:  slugs("chain-lightning"),
			8:  slugs("punishing-winds"),
			9:  slugs("storm-of-vengeance"),
			10: slugs("nature-incarnate"),
		},
	},
}
