package combat

import (
	"github.com/udisondev/turnbattle/internal/model"
)

// Result is the outcome of resolving one skill use.
type Result struct {
	Actor     *model.Combatant
	Recipient *model.Combatant // target for damage, actor for support
	Skill     *model.Skill

	MPSpent int32
	Miss    bool
	Crit    bool
	Damage  int32 // rolled damage, after critical
	HPLost  int32 // HP actually removed from the recipient
	Heal    int32 // heal amount of the skill
	HPGain  int32 // HP actually restored

	// Defeated is true when this action took the recipient to 0 HP.
	Defeated bool
}

// Resolve applies skill from actor to target.
//
// The caller must have verified actor.CanAfford(skill.MPCost) and that the
// target is alive. MP is deducted first, then the hit roll; a miss spends
// the MP and does nothing else. Physical skills use Attack/Defense,
// magical skills MagicAttack/MagicDefense, and support skills heal the
// actor for max(1, EffectAmount), clamped to MaxHP.
func Resolve(r Roller, actor, target *model.Combatant, skill *model.Skill) Result {
	res := Result{Actor: actor, Recipient: target, Skill: skill}

	if actor.SpendMP(skill.MPCost) {
		res.MPSpent = max(skill.MPCost, 0)
	}

	if !RollHit(r, skill.Accuracy) {
		res.Miss = true
		if skill.Type == model.SkillSupport {
			res.Recipient = actor
		}
		return res
	}

	var atk, def int32
	switch skill.Type {
	case model.SkillSupport:
		res.Recipient = actor
		res.Heal = HealAmount(skill.EffectAmount)
		res.HPGain = actor.Heal(res.Heal)
		return res
	case model.SkillMagical:
		atk, def = actor.Stats().MagicAttack, target.Stats().MagicDefense
	default:
		atk, def = actor.Stats().Attack, target.Stats().Defense
	}

	dmg := ComputeDamage(atk, def, skill.Power)
	if RollCritical(r, skill.CriticalChance) {
		res.Crit = true
		dmg = ApplyCritical(dmg, skill.CriticalMultiplier)
	}

	res.Damage = dmg
	res.HPLost, res.Defeated = target.TakeDamage(dmg)
	return res
}
