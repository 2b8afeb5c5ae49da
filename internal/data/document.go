package data

import (
	"errors"
	"fmt"

	"github.com/udisondev/turnbattle/internal/model"
)

// Document is the serialized form of a catalog, shared by the YAML file
// and the database loader.
type Document struct {
	Skills     []SkillDef     `yaml:"skills"`
	Characters []CharacterDef `yaml:"characters"`
	Encounters []EncounterDef `yaml:"encounters"`
}

// SkillDef is a skill entry of the catalog. Unset pointer fields take the model defaults.
type SkillDef struct {
	ID                 string        `yaml:"id"`
	Name               string        `yaml:"name"`
	Type               string        `yaml:"type"`
	MPCost             int32         `yaml:"mp_cost"`
	Power              *float64      `yaml:"power"`
	SpeedModifier      float64       `yaml:"speed_modifier"`
	EffectAmount       int32         `yaml:"effect_amount"`
	Accuracy           *float64      `yaml:"accuracy"`
	CriticalChance     *float64      `yaml:"critical_chance"`
	CriticalMultiplier *float64      `yaml:"critical_multiplier"`
	Targeting          *TargetingDef `yaml:"targeting"`
}

// TargetingDef mirrors model.Targeting.
type TargetingDef struct {
	Enemies bool `yaml:"enemies"`
	Allies  bool `yaml:"allies"`
	All     bool `yaml:"all"`
	Self    bool `yaml:"self"`
	Single  bool `yaml:"single"`
	Random  bool `yaml:"random"`
	Dead    bool `yaml:"dead"`
}

// CharacterDef is a character template; skills are referenced by id.
type CharacterDef struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	MaxHP        int32    `yaml:"max_hp"`
	MaxMP        int32    `yaml:"max_mp"`
	Attack       int32    `yaml:"attack"`
	Defense      int32    `yaml:"defense"`
	MagicAttack  int32    `yaml:"magic_attack"`
	MagicDefense int32    `yaml:"magic_defense"`
	Speed        int32    `yaml:"speed"`
	Skills       []string `yaml:"skills"`
}

// EncounterDef is a fixed enemy group. A zero multiplier means 1.
type EncounterDef struct {
	ID              string   `yaml:"id"`
	StatsMultiplier float64  `yaml:"stats_multiplier"`
	Enemies         []string `yaml:"enemies"`
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (d *SkillDef) toModel() (*model.Skill, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("skill %q: empty id", d.Name)
	}

	typ := model.SkillPhysical
	if d.Type != "" {
		t, err := model.ParseSkillType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", d.ID, err)
		}
		typ = t
	}

	s := &model.Skill{
		ID:                 d.ID,
		Name:               d.Name,
		Type:               typ,
		MPCost:             d.MPCost,
		Power:              valueOr(d.Power, model.DefaultPower),
		SpeedModifier:      d.SpeedModifier,
		EffectAmount:       d.EffectAmount,
		Accuracy:           valueOr(d.Accuracy, model.DefaultAccuracy),
		CriticalChance:     valueOr(d.CriticalChance, model.DefaultCriticalChance),
		CriticalMultiplier: valueOr(d.CriticalMultiplier, model.DefaultCriticalMultiplier),
		Targeting:          model.DefaultTargeting,
	}
	if s.Name == "" {
		s.Name = d.ID
	}
	if t := d.Targeting; t != nil {
		s.Targeting = model.Targeting(*t)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *CharacterDef) toModel(skills map[string]*model.Skill) (*model.CharacterStats, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("character %q: empty id", d.Name)
	}

	var errs []error
	if d.MaxHP < 1 {
		errs = append(errs, fmt.Errorf("character %q: max_hp %d < 1", d.ID, d.MaxHP))
	}
	for _, f := range []struct {
		name string
		v    int32
	}{
		{"max_mp", d.MaxMP},
		{"attack", d.Attack},
		{"defense", d.Defense},
		{"magic_attack", d.MagicAttack},
		{"magic_defense", d.MagicDefense},
		{"speed", d.Speed},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("character %q: %s %d < 0", d.ID, f.name, f.v))
		}
	}

	ch := &model.CharacterStats{
		ID:           d.ID,
		Name:         d.Name,
		MaxHP:        d.MaxHP,
		MaxMP:        d.MaxMP,
		Attack:       d.Attack,
		Defense:      d.Defense,
		MagicAttack:  d.MagicAttack,
		MagicDefense: d.MagicDefense,
		Speed:        d.Speed,
		Skills:       make([]*model.Skill, 0, len(d.Skills)),
	}
	for _, sid := range d.Skills {
		s, ok := skills[sid]
		if !ok {
			errs = append(errs, fmt.Errorf("character %q: skill %q: %w", d.ID, sid, ErrUnknownSkill))
			continue
		}
		ch.Skills = append(ch.Skills, s)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return ch, nil
}

func (d *EncounterDef) toModel(characters map[string]*model.CharacterStats) (*Encounter, error) {
	if d.ID == "" {
		return nil, errors.New("encounter: empty id")
	}

	mult := d.StatsMultiplier
	if mult == 0 {
		mult = 1
	}
	if mult < 0 {
		return nil, fmt.Errorf("encounter %q: stats_multiplier %v < 0", d.ID, mult)
	}

	var errs []error
	for _, cid := range d.Enemies {
		if _, ok := characters[cid]; !ok {
			errs = append(errs, fmt.Errorf("encounter %q: character %q: %w", d.ID, cid, ErrUnknownCharacter))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Encounter{
		ID:              d.ID,
		StatsMultiplier: mult,
		EnemyIDs:        append([]string(nil), d.Enemies...),
	}, nil
}
