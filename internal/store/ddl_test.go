package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soclens/internal/analytics"
)

func TestViewDDLParameters(t *testing.T) {
	stmts := viewDDL(analytics.JoinParams{State: "md", ScaleID: "lv"})
	require.Len(t, stmts, 3)

	closest := stmts[2]
	assert.Contains(t, closest, "curated.vw_onet_closest_oews")
	assert.Contains(t, closest, "WHERE prim_state = 'md'")
	assert.Contains(t, closest, "s.scale_id = 'lv'")

	// Filter values are quoted, not trusted.
	hostile := viewDDL(analytics.JoinParams{State: "md'; DROP TABLE x; --", ScaleID: "lv"})[2]
	assert.Contains(t, hostile, "'md''; DROP TABLE x; --'")
}

func TestViewDDLExcludesSentinel(t *testing.T) {
	for _, stmt := range viewDDL(analytics.DefaultJoinParams()) {
		assert.Contains(t, stmt, "'00-0000'")
	}
}

func TestViewDDLDeterministicOrdering(t *testing.T) {
	stmts := viewDDL(analytics.DefaultJoinParams())
	assert.Contains(t, stmts[0], "ORDER BY s.occ_code, s.prim_state")
	assert.Contains(t, stmts[1], "ORDER BY w.occ_code, c.soc_code")
	assert.Contains(t, stmts[2], "ORDER BY c.occ_code, s.soc_code, s.element_id, s.scale_id")
}

func TestBaseDDLCoversCuratedTables(t *testing.T) {
	joined := strings.Join(baseDDL, "\n")
	assert.Contains(t, joined, "curated.oews_cleaned")
	assert.Contains(t, joined, "curated.onet_skills_cleaned")
	assert.Contains(t, joined, "CREATE SCHEMA IF NOT EXISTS raw")
}

func TestQuoteIdent(t *testing.T) {
	got, err := quoteIdent("occ_code")
	require.NoError(t, err)
	assert.Equal(t, `"occ_code"`, got)

	_, err = quoteIdent(`occ"code`)
	require.Error(t, err)
	_, err = quoteIdent("1starts_with_digit")
	require.Error(t, err)
	_, err = quoteIdent("")
	require.Error(t, err)
}

func TestViewTablesMatchRegistryNames(t *testing.T) {
	r := analytics.NewRegistry()
	for _, name := range r.Names() {
		_, ok := viewTables[name]
		assert.True(t, ok, "no SQL relation for view %s", name)
	}
}
