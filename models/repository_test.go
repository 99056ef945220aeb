package models

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "items.sqlite3") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}, &Item{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func seedItems(t *testing.T, db *gorm.DB, items ...[2]string) {
	t.Helper()
	ctx := context.Background()
	categories := NewCategoriesRepository(db)
	repo := NewItemsRepository(db)
	for _, it := range items {
		categoryID, err := categories.ResolveOrCreate(ctx, it[1])
		require.NoError(t, err)
		_, err = repo.Insert(ctx, it[0], categoryID, it[0]+".jpg")
		require.NoError(t, err)
	}
}

func itemNames(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

// --- Tests: categories ---

func TestResolveOrCreate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCategoriesRepository(db)

	first, err := repo.ResolveOrCreate(ctx, "game")
	require.NoError(t, err)
	assert.NotZero(t, first)
	assert.Equal(t, int64(1), countRows(t, db, &Category{}))

	again, err := repo.ResolveOrCreate(ctx, "game")
	require.NoError(t, err)
	assert.Equal(t, first, again, "Same name should resolve to the same id")
	assert.Equal(t, int64(1), countRows(t, db, &Category{}), "No new row for a known name")

	other, err := repo.ResolveOrCreate(ctx, "Game")
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "Names are matched case-sensitively")
	assert.Equal(t, int64(2), countRows(t, db, &Category{}))
}

func TestResolveOrCreateEmptyName(t *testing.T) {
	repo := NewCategoriesRepository(newTestDB(t))

	_, err := repo.ResolveOrCreate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestResolveOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCategoriesRepository(db)

	// Serialize on one connection so SQLite does not report SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = repo.ResolveOrCreate(ctx, "fashion")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), countRows(t, db, &Category{}))
}

func TestGetAllCategories(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))

	for _, name := range []string{"toys", "game", "toys", "books"} {
		_, err := repo.ResolveOrCreate(ctx, name)
		require.NoError(t, err)
	}

	categories, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "toys", categories[0].Name)
	assert.Equal(t, "game", categories[1].Name)
	assert.Equal(t, "books", categories[2].Name)
}

// --- Tests: items ---

func TestInsertAndGetByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoriesRepository(db)
	repo := NewItemsRepository(db)

	categoryID, err := categories.ResolveOrCreate(ctx, "game")
	require.NoError(t, err)

	id, err := repo.Insert(ctx, "controller", categoryID, "abc.jpg")
	require.NoError(t, err)
	assert.NotZero(t, id)

	item, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "controller", item.Name)
	assert.Equal(t, categoryID, item.CategoryID)
	assert.Equal(t, "game", item.Category.Name)
	assert.Equal(t, "abc.jpg", item.ImageName)
}

func TestInsertDuplicateNamesAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categoryID, err := NewCategoriesRepository(db).ResolveOrCreate(ctx, "game")
	require.NoError(t, err)
	repo := NewItemsRepository(db)

	first, err := repo.Insert(ctx, "controller", categoryID, "abc.jpg")
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "controller", categoryID, "abc.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, int64(2), countRows(t, db, &Item{}))
}

func TestInsertUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemsRepository(db)

	_, err := repo.Insert(context.Background(), "orphan", 999, "abc.jpg")
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.Equal(t, int64(0), countRows(t, db, &Item{}))
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewItemsRepository(newTestDB(t))

	item, err := repo.GetByID(context.Background(), 42)
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetAllItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewItemsRepository(db)

	items, err := repo.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	seedItems(t, db,
		[2]string{"jacket", "fashion"},
		[2]string{"controller", "game"},
		[2]string{"scarf", "fashion"},
	)

	items, err = repo.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"jacket", "controller", "scarf"}, itemNames(items))
	assert.Equal(t, "fashion", items[0].Category.Name)
	assert.Equal(t, "game", items[1].Category.Name)
}

func TestSearchByName(t *testing.T) {
	db := newTestDB(t)
	seedItems(t, db,
		[2]string{"Game Controller", "game"},
		[2]string{"controller stand", "furniture"},
		[2]string{"jacket", "fashion"},
		[2]string{"100% cotton shirt", "fashion"},
		[2]string{"snake_case mug", "kitchen"},
		[2]string{"École bag", "fashion"},
		[2]string{"ÄRGER game", "game"},
	)
	repo := NewItemsRepository(db)

	testCases := []struct {
		name     string
		keyword  string
		expected []string
	}{
		{
			name:     "Empty keyword matches every item",
			keyword:  "",
			expected: []string{"Game Controller", "controller stand", "jacket", "100% cotton shirt", "snake_case mug", "École bag", "ÄRGER game"},
		},
		{
			name:     "Substring match ignores case",
			keyword:  "CONTROL",
			expected: []string{"Game Controller", "controller stand"},
		},
		{
			name:     "No match",
			keyword:  "bicycle",
			expected: []string{},
		},
		{
			name:     "Percent is matched literally",
			keyword:  "%",
			expected: []string{"100% cotton shirt"},
		},
		{
			name:     "Underscore is matched literally",
			keyword:  "_",
			expected: []string{"snake_case mug"},
		},
		{
			name:     "Non-ASCII keyword matches its own name",
			keyword:  "École",
			expected: []string{"École bag"},
		},
		{
			name:     "Upper-case non-ASCII keyword",
			keyword:  "ÄRGER",
			expected: []string{"ÄRGER game"},
		},
		{
			name:     "ASCII part of a non-ASCII name ignores case",
			keyword:  "BAG",
			expected: []string{"École bag"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := repo.SearchByName(context.Background(), tc.keyword)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, itemNames(items))
		})
	}
}

func TestDeletingCategoryCascadesToItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedItems(t, db,
		[2]string{"jacket", "fashion"},
		[2]string{"controller", "game"},
	)

	require.NoError(t, db.Where("name = ?", "fashion").Delete(&Category{}).Error)

	items, err := NewItemsRepository(db).GetAllItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"controller"}, itemNames(items))
}
