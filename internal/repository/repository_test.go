package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parampara/internal/model"
)

// openTestDB returns an in-memory SQLite database with foreign keys enforced,
// so cascade behaviour matches the production MySQL schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.LocationRecord{}, &model.Submission{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserRepository_UniqueIdentity(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "asha")

	err := repo.Create(ctx, &model.User{Username: "asha", Email: "other@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{Username: "other", Email: "asha@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	taken, err := repo.ExistsByUsernameOrEmail(ctx, "asha", "unused@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByUsernameOrEmail(ctx, "unused", "unused@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_FindByIdentity(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "ravi")

	byUsername, err := repo.FindByIdentity(ctx, "ravi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.FindByIdentity(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByIdentity(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepository_ListByUserOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "asha")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		sub := &model.Submission{
			UserID:      user.ID,
			Title:       title,
			Category:    model.CategoryFood,
			ContentType: model.ContentTypeText,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, sub))
	}

	submissions, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 3)
	assert.Equal(t, "newest", submissions[0].Title)
	assert.Equal(t, "middle", submissions[1].Title)
	assert.Equal(t, "oldest", submissions[2].Title)
}

func TestSubmissionRepository_ListByUserIsolatesOwners(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	asha := createTestUser(t, db, "asha")
	ravi := createTestUser(t, db, "ravi")

	require.NoError(t, repo.Create(ctx, &model.Submission{
		UserID: asha.ID, Title: "hers", Category: model.CategoryCulture, ContentType: model.ContentTypeText,
	}))

	mine, err := repo.ListByUser(ctx, ravi.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestUserDelete_CascadesToDependents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userRepo := NewUserRepository(db)
	locationRepo := NewLocationRepository(db)
	submissionRepo := NewSubmissionRepository(db)

	user := createTestUser(t, db, "asha")
	keeper := createTestUser(t, db, "ravi")

	lat, lng := 20.2961, 85.8245
	require.NoError(t, locationRepo.Create(ctx, &model.LocationRecord{UserID: user.ID, Latitude: &lat, Longitude: &lng}))
	require.NoError(t, submissionRepo.Create(ctx, &model.Submission{
		UserID: user.ID, Title: "gone soon", Category: model.CategoryFood, ContentType: model.ContentTypeText,
	}))
	require.NoError(t, submissionRepo.Create(ctx, &model.Submission{
		UserID: keeper.ID, Title: "kept", Category: model.CategoryFood, ContentType: model.ContentTypeText,
	}))

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	submissions, err := submissionRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, submissions)

	var orphanLocations, orphanSubmissions int64
	require.NoError(t, db.Model(&model.LocationRecord{}).Where("user_id = ?", user.ID).Count(&orphanLocations).Error)
	require.NoError(t, db.Model(&model.Submission{}).Where("user_id = ?", user.ID).Count(&orphanSubmissions).Error)
	assert.Zero(t, orphanLocations)
	assert.Zero(t, orphanSubmissions)

	// unrelated rows survive
	kept, err := submissionRepo.ListByUser(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestLocationRepository_LatestPicksNewest(t *testing.T) {
	db := openTestDB(t)
	repo := NewLocationRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "asha")

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	older := &model.LocationRecord{UserID: user.ID, Address: strP("Bhubaneswar"), RecordedAt: base}
	newer := &model.LocationRecord{UserID: user.ID, Address: strP("Cuttack"), RecordedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	latest, err := repo.Latest(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cuttack", *latest.Address)

	records, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSubmissionRepository_Stats(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "asha")

	odisha := "Odisha"
	kerala := "Kerala"
	rows := []*model.Submission{
		{UserID: user.ID, Title: "a", Category: model.CategoryFood, ContentType: model.ContentTypeText, Region: &odisha},
		{UserID: user.ID, Title: "b", Category: model.CategoryFood, ContentType: model.ContentTypeAudio, Region: &odisha},
		{UserID: user.ID, Title: "c", Category: model.CategoryCulture, ContentType: model.ContentTypeAudio, Region: &kerala},
		{UserID: user.ID, Title: "d", Category: model.CategoryCulture, ContentType: model.ContentTypeImage},
	}
	for _, row := range rows {
		require.NoError(t, repo.Create(ctx, row))
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.ByCategory["Food"])
	assert.Equal(t, int64(2), stats.ByCategory["Culture"])
	assert.Equal(t, int64(2), stats.ByContentType["Audio"])
	assert.Equal(t, int64(1), stats.ByContentType["Text"])
	assert.Equal(t, int64(2), stats.ByRegion["Odisha"])
	assert.Equal(t, int64(1), stats.ByRegion["Kerala"])
}

func strP(s string) *string { return &s }
