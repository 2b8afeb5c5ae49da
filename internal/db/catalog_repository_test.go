package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/model"
	"github.com/udisondev/turnbattle/internal/testutil"
)

func TestCatalogRepository_LoadStarterCatalog(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := NewCatalogRepository(pool)

	c, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"slash", "heavy_blow", "fireball", "heal", "bite"}, c.SkillIDs())
	assert.Equal(t, []string{"hero", "goblin", "troll"}, c.CharacterIDs())

	hero, err := c.Character("hero")
	require.NoError(t, err)
	require.Len(t, hero.Skills, 4)
	assert.Equal(t, "Heavy Blow", hero.Skills[1].Name)
	assert.Equal(t, -3.0, hero.Skills[1].SpeedModifier)

	heal, err := c.Skill("heal")
	require.NoError(t, err)
	assert.Equal(t, model.SkillSupport, heal.Type)
	assert.True(t, heal.Targeting.Self)

	enemies, err := c.EncounterEnemies("goblin_pair")
	require.NoError(t, err)
	require.Len(t, enemies, 2)
	assert.Equal(t, "Goblin", enemies[1].Name)

	trolls, err := c.EncounterEnemies("bridge_troll")
	require.NoError(t, err)
	assert.Equal(t, int32(175), trolls[0].MaxHP)
}

func TestCatalogRepository_ImportRoundTrip(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := NewCatalogRepository(pool)

	raw, err := os.ReadFile(filepath.Join("..", "data", "testdata", "catalog.yaml"))
	require.NoError(t, err)
	var doc data.Document
	require.NoError(t, yaml.Unmarshal(raw, &doc))

	require.NoError(t, repo.Import(ctx, doc))

	want, err := data.Build(doc)
	require.NoError(t, err)
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.SkillIDs(), got.SkillIDs())
	assert.Equal(t, want.CharacterIDs(), got.CharacterIDs())
	assert.Equal(t, want.EncounterIDs(), got.EncounterIDs())

	for _, id := range want.SkillIDs() {
		ws, _ := want.Skill(id)
		gs, err := got.Skill(id)
		require.NoError(t, err)
		assert.Equal(t, ws, gs, "skill %s", id)
	}
	for _, id := range want.EncounterIDs() {
		we, _ := want.EncounterEnemies(id)
		ge, err := got.EncounterEnemies(id)
		require.NoError(t, err)
		assert.Equal(t, we, ge, "encounter %s", id)
	}
}

func TestCatalogRepository_ImportRejectsInvalid(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := NewCatalogRepository(pool)

	bad := data.Document{Characters: []data.CharacterDef{{ID: "x", MaxHP: 5, Skills: []string{"ghost"}}}}
	err := repo.Import(ctx, bad)
	require.ErrorIs(t, err, data.ErrUnknownSkill)

	// starter catalog untouched
	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c.CharacterIDs(), 3)
}
