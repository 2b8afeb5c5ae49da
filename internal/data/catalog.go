package data

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/turnbattle/internal/model"
)

var (
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownEncounter = errors.New("unknown encounter")
	ErrDuplicateID      = errors.New("duplicate id")
)

// Encounter is a fixed enemy group with a difficulty multiplier.
type Encounter struct {
	ID string

	// StatsMultiplier scales the enemies' HP and offensive/defensive stats.
	StatsMultiplier float64

	// EnemyIDs are character ids in spawn order. Repeats are allowed.
	EnemyIDs []string
}

// Catalog is the read-only set of skills, characters and encounters a
// battle is built from. Safe for concurrent reads.
type Catalog struct {
	skills     map[string]*model.Skill
	characters map[string]*model.CharacterStats
	encounters map[string]*Encounter

	// ids in definition order
	skillIDs     []string
	characterIDs []string
	encounterIDs []string
}

// Skill returns a skill definition by id.
func (c *Catalog) Skill(id string) (*model.Skill, error) {
	s, ok := c.skills[id]
	if !ok {
		return nil, fmt.Errorf("skill %q: %w", id, ErrUnknownSkill)
	}
	return s, nil
}

// Character returns a character template by id. The template is shared:
// callers must not modify it.
func (c *Catalog) Character(id string) (*model.CharacterStats, error) {
	ch, ok := c.characters[id]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", id, ErrUnknownCharacter)
	}
	return ch, nil
}

// Encounter returns an encounter by id.
func (c *Catalog) Encounter(id string) (*Encounter, error) {
	e, ok := c.encounters[id]
	if !ok {
		return nil, fmt.Errorf("encounter %q: %w", id, ErrUnknownEncounter)
	}
	return e, nil
}

// EncounterEnemies returns the enemies of an encounter in spawn order,
// each an independent copy scaled by the encounter's multiplier.
func (c *Catalog) EncounterEnemies(id string) ([]*model.CharacterStats, error) {
	e, err := c.Encounter(id)
	if err != nil {
		return nil, err
	}

	enemies := make([]*model.CharacterStats, 0, len(e.EnemyIDs))
	for _, cid := range e.EnemyIDs {
		tmpl, err := c.Character(cid)
		if err != nil {
			return nil, fmt.Errorf("encounter %q: %w", id, err)
		}
		scaled, err := model.ScaleStats(tmpl, e.StatsMultiplier)
		if err != nil {
			return nil, fmt.Errorf("encounter %q: %w", id, err)
		}
		enemies = append(enemies, scaled)
	}
	return enemies, nil
}

// SkillIDs returns skill ids in definition order.
func (c *Catalog) SkillIDs() []string { return slices.Clone(c.skillIDs) }

// CharacterIDs returns character ids in definition order.
func (c *Catalog) CharacterIDs() []string { return slices.Clone(c.characterIDs) }

// EncounterIDs returns encounter ids in definition order.
func (c *Catalog) EncounterIDs() []string { return slices.Clone(c.encounterIDs) }

// Build validates doc and resolves its references into a Catalog.
// Every problem found is reported, joined into one error.
func Build(doc Document) (*Catalog, error) {
	c := &Catalog{
		skills:     make(map[string]*model.Skill, len(doc.Skills)),
		characters: make(map[string]*model.CharacterStats, len(doc.Characters)),
		encounters: make(map[string]*Encounter, len(doc.Encounters)),
	}
	var errs []error

	for i := range doc.Skills {
		s, err := doc.Skills[i].toModel()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.skills[s.ID]; dup {
			errs = append(errs, fmt.Errorf("skill %q: %w", s.ID, ErrDuplicateID))
			continue
		}
		c.skills[s.ID] = s
		c.skillIDs = append(c.skillIDs, s.ID)
	}

	for i := range doc.Characters {
		def := &doc.Characters[i]
		ch, err := def.toModel(c.skills)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.characters[ch.ID]; dup {
			errs = append(errs, fmt.Errorf("character %q: %w", ch.ID, ErrDuplicateID))
			continue
		}
		c.characters[ch.ID] = ch
		c.characterIDs = append(c.characterIDs, ch.ID)
	}

	for i := range doc.Encounters {
		e, err := doc.Encounters[i].toModel(c.characters)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.encounters[e.ID]; dup {
			errs = append(errs, fmt.Errorf("encounter %q: %w", e.ID, ErrDuplicateID))
			continue
		}
		c.encounters[e.ID] = e
		c.encounterIDs = append(c.encounterIDs, e.ID)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	slog.Info("loaded catalog",
		"skills", len(c.skills),
		"characters", len(c.characters),
		"encounters", len(c.encounters))

	return c, nil
}
