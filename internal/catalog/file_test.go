package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
stages:
  - name: "Seed"
    description: "A beginning."
    threshold: 0
  - name: "Sprout"
    description: "Growth."
    threshold: 500
upgrades:
  0:
    click:
      - id: root_grip
        name: "Root Grip"
        effect: 1
        base_cost: 50
      - id: sap_reserve
        name: "Sap Reserve"
        effect: 10
        base_cost: 80
        energy: true
    passive:
      - id: photosynthesis
        name: "Photosynthesis"
        effect: 2
        base_cost: 120
tasks:
  - id: reach_sprout
    title: "Become a Sprout"
    reward: 1000
    auto_complete: true
    requires:
      kind: stage_at_least
      threshold: 1
boosters:
  - id: sun_burst
    name: "Sun Burst"
    duration_ms: 3600000
    price: 5
    currency: stars
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_ReplacesBuiltInsWholesale(t *testing.T) {
	c, err := LoadFile(writeCatalog(t, testCatalogYAML))
	require.NoError(t, err)

	assert.Equal(t, 1, c.MaxStage())
	st, ok := c.Stage(1)
	require.True(t, ok)
	assert.Equal(t, "Sprout", st.Name)

	u, ok := c.Upgrade(CategoryClick, 0, "sap_reserve")
	require.True(t, ok)
	assert.True(t, u.Energy)

	task, ok := c.Task("reach_sprout")
	require.True(t, ok)
	assert.True(t, task.AutoComplete)

	_, ok = c.Task("reach_amoeba")
	assert.False(t, ok, "built-in tasks are gone after a file load")
}

func TestLoadFile_MissingFileIsAnError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadFile_RejectsUnknownPredicateKind(t *testing.T) {
	bad := `
stages:
  - name: "Seed"
    threshold: 0
tasks:
  - id: broken
    title: "Broken"
    requires:
      kind: wished_hard_enough
      threshold: 1
`
	_, err := LoadFile(writeCatalog(t, bad))
	assert.Error(t, err)
}
