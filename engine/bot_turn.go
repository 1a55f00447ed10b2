package engine

import (
	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/bot"
	"github.com/ironveil/tactics-core/catalog"
)

// SetBotDifficulty scales Bot attack damage; 1.0 is unmodified.
func (b *Battle) SetBotDifficulty(scalar float64) {
	b.faction(Bot).commander.DamagePct = scalar - 1
}

func (b *Battle) unitView(u *Unit) bot.UnitView {
	ut, _ := b.unitType(u.TypeKey)
	return bot.UnitView{
		UnitID:     u.UnitID,
		TypeKey:    u.TypeKey,
		Hex:        u.Hex,
		Strength:   u.Strength,
		IsAir:      ut.Class == catalog.ClassAir,
		IsBomber:   catalog.IsBomber(ut),
		IsFighter:  catalog.IsFighter(ut),
		NeedsRefit: b.needsRefit(Bot, u.UnitID),
	}
}

// runBotTurn is the synchronous bot sub-phase inside end_turn: it
// builds a pure snapshot, asks the active planner (bot.Heuristic by
// default, or whatever SetPlanner installed) for a list of actions,
// and applies them through the same move/attack/schedule paths a
// human driver uses.
func (b *Battle) runBotTurn() {
	botFS := b.faction(Bot)
	playerFS := b.faction(Player)

	var own, enemy []bot.UnitView
	for _, u := range botFS.placements {
		own = append(own, b.unitView(u))
	}
	for _, u := range playerFS.placements {
		enemy = append(enemy, b.unitView(u))
	}

	planner := b.planner
	if planner == nil {
		planner = bot.Heuristic{}
	}
	actions := planner.Plan(bot.Input{Own: own, Enemy: enemy, Difficulty: 1 + botFS.commander.DamagePct})

	for _, a := range actions {
		b.applyBotAction(a)
	}
}

func (b *Battle) applyBotAction(a bot.Action) {
	u, ok := b.findUnitByID(Bot, a.UnitID)
	if !ok || !u.IsAlive() {
		return
	}
	switch a.Kind {
	case bot.ActionMove:
		b.MoveUnit(u.Hex, a.ToHex)
	case bot.ActionAttack:
		b.AttackUnit(u.Hex, a.TargetHex)
	case bot.ActionStrike:
		b.TryScheduleAirMission(Bot, airmission.Request{
			Kind: airmission.KindStrike, Faction: string(Bot),
			OriginHex: u.Hex, TargetHex: a.TargetHex, HasTarget: true,
		})
	case bot.ActionEscort:
		escortOf, ok := b.findUnitByID(Bot, a.EscortOf)
		if !ok {
			return
		}
		b.TryScheduleAirMission(Bot, airmission.Request{
			Kind: airmission.KindEscort, Faction: string(Bot),
			OriginHex: u.Hex, EscortTargetHex: escortOf.Hex, HasEscortTarget: true,
			EscortTargetUnit: escortOf.UnitID,
		})
	case bot.ActionCAP:
		b.TryScheduleAirMission(Bot, airmission.Request{
			Kind: airmission.KindAirCover, Faction: string(Bot),
			OriginHex: u.Hex, TargetHex: a.ToHex, HasTarget: true,
		})
	}
}
