package layoutdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pmtarray/internal/geom"
)

func TestRecordLayoutRoundTrip(t *testing.T) {
	layout, err := geom.GenerateCenters(geom.LatticeSpec{Kind: geom.Hexagonal, Pitch: 80, Count: 19})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	id, err := db.RecordLayout("R11410", layout)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, err := db.LayoutUnits(id)
	require.NoError(t, err)
	require.Len(t, records, layout.NumUnits())
	for i, rec := range records {
		assert.Equal(t, i, rec.Index)
		assert.Equal(t, layout.Centers[i].X, rec.X)
		assert.Equal(t, layout.Centers[i].Y, rec.Y)
	}

	var model string
	var nUnits int
	require.NoError(t, db.QueryRow(
		`SELECT model, n_units FROM layouts WHERE layout_id = ?`, id).Scan(&model, &nUnits))
	assert.Equal(t, "R11410", model)
	assert.Equal(t, 19, nUnits)
}

func TestRecordLayoutDistinctIDs(t *testing.T) {
	layout, err := geom.GenerateCenters(geom.LatticeSpec{Kind: geom.Rectangular, Pitch: 57, Rows: 2, Cols: 2})
	require.NoError(t, err)

	db, err := NewDB(filepath.Join(t.TempDir(), "layout.db"))
	require.NoError(t, err)
	defer db.Close()

	first, err := db.RecordLayout("R12699", layout)
	require.NoError(t, err)
	second, err := db.RecordLayout("R12699", layout)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM units`).Scan(&count))
	assert.Equal(t, 2*layout.NumUnits(), count)
}
