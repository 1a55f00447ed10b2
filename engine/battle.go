package engine

import (
	"github.com/google/uuid"

	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/bot"
	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/engineconfig"
	"github.com/ironveil/tactics-core/hexgrid"
)

// Battle is a single engine instance: one battle, one set of placements,
// one phase/turn state machine. The engine exclusively owns all
// mutable state named here; every value returned outward is either a
// tagged result or a defensively-copied snapshot (see snapshots.go).
type Battle struct {
	cfg      engineconfig.Config
	catalogs Catalogs

	phase         Phase
	activeFaction Faction
	turnNumber    int

	factions map[Faction]*factionState

	baseCampSet bool

	missions     []*airmission.Mission
	templates    map[airmission.Kind]airmission.Template

	arrivals    []AirMissionArrival
	engagements []AirEngagementEvent

	combatReports     []CombatReportEntry
	airMissionReports []AirMissionReportEntry

	snap snapshotCache

	missionSeq int
	unitSeq    int

	planner bot.Planner
}

// New constructs a fresh Battle in the deployment phase.
func New(cfg engineconfig.Config, catalogs Catalogs) *Battle {
	b := &Battle{
		cfg:           cfg,
		catalogs:      catalogs,
		phase:         PhaseDeployment,
		activeFaction: Player,
		turnNumber:    1,
		factions: map[Faction]*factionState{
			Player: newFactionState(cfg.Supply.LedgerLimit),
			Bot:    newFactionState(cfg.Supply.LedgerLimit),
		},
		templates: airmission.DefaultTemplates(),
	}
	return b
}

// SetPlanner installs a custom bot strategy in place of the built-in
// bot.Heuristic driver; passing nil restores the default.
func (b *Battle) SetPlanner(p bot.Planner) {
	b.planner = p
}

// newUnitID mints a stable, globally-unique unit id, prefixed "u_" per
// the shape test spec.md's hydration logic relies on to distinguish
// stable ids from legacy hex-key-form ids (which contain a comma).
func (b *Battle) newUnitID() string {
	b.unitSeq++
	return "u_" + uuid.NewString()
}

func (b *Battle) newMissionID() string {
	b.missionSeq++
	return "m_" + uuid.NewString()
}

func (b *Battle) faction(f Faction) *factionState {
	return b.factions[f]
}

func (b *Battle) opponent(f Faction) Faction {
	if f == Player {
		return Bot
	}
	return Player
}

// unitAt returns the unit at hex h for faction f, if any.
func (fs *factionState) unitAt(h hexgrid.Hex) (*Unit, bool) {
	u, ok := fs.placements[h.Key()]
	return u, ok
}

// anyUnitAt looks across both factions for a unit at h.
func (b *Battle) anyUnitAt(h hexgrid.Hex) (*Unit, bool) {
	for _, fs := range b.factions {
		if u, ok := fs.unitAt(h); ok {
			return u, true
		}
	}
	return nil, false
}

func (b *Battle) unitType(key string) (catalog.UnitType, bool) {
	return b.catalogs.Units.Lookup(key)
}

// invalidate clears every snapshot cache. Per spec.md's design note,
// every mutation's single exit point calls this rather than scattering
// cache-busting across call sites.
func (b *Battle) invalidate() {
	b.snap = snapshotCache{}
}
