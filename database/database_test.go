package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite:"+filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open("mysql://localhost/db", false)
	assert.Error(t, err)
}

func TestRepositoryCreateAssignsIDAndAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[News](openTestDB(t))

	in := News{Title: "t", Content: "c", Category: "Policy", ImageURL: "/uploads/a.jpg"}
	in.ID = "caller-id"
	in.UpdatedBy = "Chirag.Mehta"

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)
	assert.NotEqual(t, "caller-id", created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chirag.Mehta", got.UpdatedBy)
	assert.Equal(t, DefaultAnalytics(), got.Stats())
	assert.Equal(t, "N/A", got.Stats().TopCountry)
}

func TestRepositoryDefaultsUpdatedBy(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[Course](openTestDB(t))

	created, err := repo.Create(ctx, Course{Title: "t", Provider: "p", Format: "online", Description: "d", ApplyLink: "l"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", created.UpdatedBy)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[Event](openTestDB(t))

	var ids []string
	for _, title := range []string{"first", "second", "third", "fourth"} {
		e, err := repo.Create(ctx, Event{Title: title, Date: "2025-01-01", Location: "Delhi", Description: "d", ApplyLink: "l"})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "fourth", all[0].Title)
	assert.Equal(t, "first", all[3].Title)

	limited, err := repo.ListLimited(ctx, 3)
	require.NoError(t, err)
	require.Len(t, limited, 3)
	assert.Equal(t, ids[3], limited[0].ID)
	assert.Equal(t, ids[1], limited[2].ID)
}

func TestRepositoryGetByIDMissing(t *testing.T) {
	repo := NewRepository[Job](openTestDB(t))
	_, err := repo.GetByID(context.Background(), "000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryUpdateKeepsIdentityAndAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[Job](openTestDB(t))

	created, err := repo.Create(ctx, Job{Title: "Analyst", Company: "Acme", Location: "Pune", Type: "Full-time", TypeColor: "green", Description: "d", ApplyLink: "l"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, func(j *Job) {
		j.ID = "hijack"
		j.Title = "Senior Analyst"
		j.UpdatedBy = "Jay.Monga"
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Analyst", got.Title)
	assert.Equal(t, "Jay.Monga", got.UpdatedBy)
	assert.Equal(t, DefaultAnalytics(), got.Stats())

	_, err = repo.Update(ctx, "000000000000000000000000", func(*Job) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[News](openTestDB(t))

	created, err := repo.Create(ctx, News{Title: "t", Content: "c", Category: "x", ImageURL: "/i.jpg"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}

func TestSpecialReportUpsertIsSingleton(t *testing.T) {
	ctx := context.Background()
	store := NewSpecialReportStore(openTestDB(t))

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := store.Upsert(ctx, func(r *SpecialReport) {
		r.Title = "Green Steel"
		r.UpdatedBy = "Chitra.Singla"
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Steel", first.Title)
	assert.Equal(t, PlaceholderReport().ImageURL, first.ImageURL)

	second, err := store.Upsert(ctx, func(r *SpecialReport) {
		r.Title = "Green Hydrogen"
		r.ImageURL = "/uploads/h2.jpg"
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Green Hydrogen", got.Title)
	assert.Equal(t, "/uploads/h2.jpg", got.ImageURL)
	assert.Equal(t, DefaultAnalytics(), got.Stats())
}

func TestSpecialReportEnsureCreatesPlaceholderOnce(t *testing.T) {
	ctx := context.Background()
	store := NewSpecialReportStore(openTestDB(t))

	a, err := store.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderReport().Title, a.Title)

	b, err := store.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpsertAdminUser(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, UpsertAdminUser(ctx, db, "jay", "hash-1"))
	require.NoError(t, UpsertAdminUser(ctx, db, "jay", "hash-2"))

	admin, err := GetAdminUser(ctx, db, "jay")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", admin.PasswordHash)

	_, err = GetAdminUser(ctx, db, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
