package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fridgeplan/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "inventory.json"))
}

func sampleInventory() []models.Ingredient {
	return []models.Ingredient{
		{Name: "鸡胸肉", Quantity: 300, Unit: models.UnitGram, Expiry: models.NewDate(2025, time.June, 1), Category: models.CategoryMeat},
		{Name: "西兰花", Quantity: 0.5, Unit: models.UnitKilogram, Expiry: models.NewDate(2025, time.May, 28), Category: models.CategoryVegetable},
		{Name: "牛奶", Quantity: 1, Unit: models.UnitLiter, Expiry: models.NewDate(2025, time.June, 3), Category: models.CategoryBeverage},
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := testStore(t)

	inventory, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestLoadEmptyFile(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0644))

	inventory, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestRoundTrip(t *testing.T) {
	s := testStore(t)
	original := sampleInventory()

	require.NoError(t, s.Save(original))
	loaded, err := s.Load()
	require.NoError(t, err)

	require.Len(t, loaded, len(original))
	for i := range original {
		assert.Equal(t, original[i].Name, loaded[i].Name)
		assert.Equal(t, original[i].Quantity, loaded[i].Quantity)
		assert.Equal(t, original[i].Unit, loaded[i].Unit)
		assert.Equal(t, original[i].Category, loaded[i].Category)
		assert.True(t, loaded[i].Expiry.Equal(original[i].Expiry),
			"expiry %s != %s", loaded[i].Expiry, original[i].Expiry)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s := testStore(t)
	inventory := sampleInventory()

	require.NoError(t, s.Save(inventory))
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save(inventory))
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second, "two saves of the same inventory must be byte-identical")
}

func TestSavePreservesNonASCII(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(sampleInventory()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "鸡胸肉")
	assert.Contains(t, content, "肉")
	assert.NotContains(t, content, `\u`, "non-ASCII text must not be escaped")
	assert.Contains(t, content, "2025-06-01", "dates must render as ISO strings")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(sampleInventory()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inventory.json", entries[0].Name())
}

func TestSaveNilInventory(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(nil))

	inventory, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestLoadNormalizesTimestampDates(t *testing.T) {
	s := testStore(t)
	raw := `[{"name": "鸡胸肉", "quantity": 300, "unit": "g", "expiry": "2025-06-01T10:30:00Z", "category": "肉"}]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0644))

	inventory, err := s.Load()
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, "2025-06-01", inventory[0].Expiry.String())
}

func TestLoadMalformedDateFails(t *testing.T) {
	s := testStore(t)
	raw := `[
		{"name": "鸡胸肉", "quantity": 300, "unit": "g", "expiry": "2025-06-01", "category": "肉"},
		{"name": "牛奶", "quantity": 1, "unit": "L", "expiry": "sometime soon", "category": "饮料"}
	]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0644))

	_, err := s.Load()
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed), "want *MalformedRecordError, got %T", err)
	assert.Equal(t, 1, malformed.Index)
}

func TestLoadGarbageFileFails(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse"), "got: %v", err)
}
