package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/model"
)

// CatalogRepository читает и импортирует каталог скиллов, персонажей и энкаунтеров.
// Battle state is never written here.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository создаёт новый CatalogRepository.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads the whole catalog and validates it through data.Build.
func (r *CatalogRepository) Load(ctx context.Context) (*data.Catalog, error) {
	doc, err := r.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}

	c, err := data.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("building catalog from database: %w", err)
	}
	return c, nil
}

// LoadDocument reads the raw catalog rows in definition order.
func (r *CatalogRepository) LoadDocument(ctx context.Context) (data.Document, error) {
	var doc data.Document

	skills, err := r.loadSkills(ctx)
	if err != nil {
		return doc, err
	}
	characters, err := r.loadCharacters(ctx)
	if err != nil {
		return doc, err
	}
	encounters, err := r.loadEncounters(ctx)
	if err != nil {
		return doc, err
	}

	doc.Skills = skills
	doc.Characters = characters
	doc.Encounters = encounters
	return doc, nil
}

func (r *CatalogRepository) loadSkills(ctx context.Context) ([]data.SkillDef, error) {
	query := `
		SELECT id, name, type, mp_cost, power, speed_modifier, effect_amount,
		       accuracy, critical_chance, critical_multiplier,
		       target_enemies, target_allies, target_all, target_self,
		       target_single, target_random, target_dead
		FROM skills
		ORDER BY ordinal
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	skills := make([]data.SkillDef, 0, 32)
	for rows.Next() {
		var (
			s                       data.SkillDef
			power, acc, crit, cmult float64
			t                       data.TargetingDef
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.MPCost, &power, &s.SpeedModifier, &s.EffectAmount,
			&acc, &crit, &cmult,
			&t.Enemies, &t.Allies, &t.All, &t.Self, &t.Single, &t.Random, &t.Dead); err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		s.Power, s.Accuracy, s.CriticalChance, s.CriticalMultiplier = &power, &acc, &crit, &cmult
		s.Targeting = &t
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skill rows: %w", err)
	}

	return skills, nil
}

func (r *CatalogRepository) loadCharacters(ctx context.Context) ([]data.CharacterDef, error) {
	query := `
		SELECT id, name, max_hp, max_mp, attack, defense, magic_attack, magic_defense, speed
		FROM characters
		ORDER BY ordinal
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	characters := make([]data.CharacterDef, 0, 16)
	index := make(map[string]int, 16)
	for rows.Next() {
		var c data.CharacterDef
		if err := rows.Scan(&c.ID, &c.Name, &c.MaxHP, &c.MaxMP, &c.Attack, &c.Defense,
			&c.MagicAttack, &c.MagicDefense, &c.Speed); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		index[c.ID] = len(characters)
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating character rows: %w", err)
	}

	links, err := r.loadLinks(ctx, `SELECT character_id, skill_id FROM character_skills ORDER BY character_id, slot`)
	if err != nil {
		return nil, fmt.Errorf("loading character skills: %w", err)
	}
	for _, l := range links {
		if i, ok := index[l.owner]; ok {
			characters[i].Skills = append(characters[i].Skills, l.ref)
		}
	}

	return characters, nil
}

func (r *CatalogRepository) loadEncounters(ctx context.Context) ([]data.EncounterDef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, stats_multiplier FROM encounters ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("querying encounters: %w", err)
	}
	defer rows.Close()

	encounters := make([]data.EncounterDef, 0, 16)
	index := make(map[string]int, 16)
	for rows.Next() {
		var e data.EncounterDef
		if err := rows.Scan(&e.ID, &e.StatsMultiplier); err != nil {
			return nil, fmt.Errorf("scanning encounter row: %w", err)
		}
		index[e.ID] = len(encounters)
		encounters = append(encounters, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounter rows: %w", err)
	}

	links, err := r.loadLinks(ctx, `SELECT encounter_id, character_id FROM encounter_enemies ORDER BY encounter_id, slot`)
	if err != nil {
		return nil, fmt.Errorf("loading encounter enemies: %w", err)
	}
	for _, l := range links {
		if i, ok := index[l.owner]; ok {
			encounters[i].Enemies = append(encounters[i].Enemies, l.ref)
		}
	}

	return encounters, nil
}

type link struct {
	owner, ref string
}

func (r *CatalogRepository) loadLinks(ctx context.Context, query string) ([]link, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (link, error) {
		var l link
		err := row.Scan(&l.owner, &l.ref)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("collecting rows: %w", err)
	}
	return links, nil
}

// Import заменяет весь каталог содержимым doc в одной транзакции.
// doc is validated with data.Build first; nothing is written when it is invalid.
func (r *CatalogRepository) Import(ctx context.Context, doc data.Document) error {
	if _, err := data.Build(doc); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback после commit возвращает ErrTxClosed, это ожидаемо
		_ = tx.Rollback(ctx)
	}()

	for _, table := range []string{"encounter_enemies", "encounters", "character_skills", "characters", "skills"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for _, s := range doc.Skills {
		t := data.TargetingDef{Enemies: true, Single: true}
		if s.Targeting != nil {
			t = *s.Targeting
		}
		typ := s.Type
		if typ == "" {
			typ = "physical"
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		batch.Queue(`
			INSERT INTO skills (id, name, type, mp_cost, power, speed_modifier, effect_amount,
			                    accuracy, critical_chance, critical_multiplier,
			                    target_enemies, target_allies, target_all, target_self,
			                    target_single, target_random, target_dead)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			s.ID, name, typ, s.MPCost, orDefault(s.Power, model.DefaultPower), s.SpeedModifier, s.EffectAmount,
			orDefault(s.Accuracy, model.DefaultAccuracy),
			orDefault(s.CriticalChance, model.DefaultCriticalChance),
			orDefault(s.CriticalMultiplier, model.DefaultCriticalMultiplier),
			t.Enemies, t.Allies, t.All, t.Self, t.Single, t.Random, t.Dead)
	}
	for _, c := range doc.Characters {
		batch.Queue(`
			INSERT INTO characters (id, name, max_hp, max_mp, attack, defense, magic_attack, magic_defense, speed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, c.Name, c.MaxHP, c.MaxMP, c.Attack, c.Defense, c.MagicAttack, c.MagicDefense, c.Speed)
		for slot, sid := range c.Skills {
			batch.Queue(`INSERT INTO character_skills (character_id, slot, skill_id) VALUES ($1, $2, $3)`,
				c.ID, slot, sid)
		}
	}
	for _, e := range doc.Encounters {
		mult := e.StatsMultiplier
		if mult == 0 {
			mult = 1
		}
		batch.Queue(`INSERT INTO encounters (id, stats_multiplier) VALUES ($1, $2)`, e.ID, mult)
		for slot, cid := range e.Enemies {
			batch.Queue(`INSERT INTO encounter_enemies (encounter_id, slot, character_id) VALUES ($1, $2, $3)`,
				e.ID, slot, cid)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing catalog import: %w", err)
	}
	return nil
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
