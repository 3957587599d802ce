package repository

import (
	"context"
	"testing"

	"fitcrm/internal/database"
	"fitcrm/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMemberRepo(t *testing.T) (*MemberRepository, *gorm.DB) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Profile{},
		&domain.MembershipType{},
		&domain.Member{},
	))

	return NewMemberRepository(db), db
}

func seedMember(t *testing.T, db *gorm.DB, studioID uuid.UUID, first, last string, status domain.MemberStatus) *domain.Member {
	profile := &domain.Profile{
		StudioID:  studioID,
		Role:      domain.RoleMember,
		FirstName: first,
		LastName:  last,
	}
	require.NoError(t, db.Create(profile).Error)

	member := &domain.Member{
		ProfileID: profile.ID,
		StudioID:  studioID,
		Status:    status,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestMemberRepository_GetByIDAndStudio_TenantIsolation(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioA := uuid.New()
	studioB := uuid.New()
	member := seedMember(t, db, studioA, "Anna", "Weber", domain.StatusActive)

	// Own studio sees the row with its profile preloaded.
	got, err := repo.GetByIDAndStudio(ctx, member.ID, studioA)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Anna", got.Profile.FirstName)

	// Another studio querying the same id gets a missing record.
	_, err = repo.GetByIDAndStudio(ctx, member.ID, studioB)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemberRepository_ListByStudio_OnlyOwnRows(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioA := uuid.New()
	studioB := uuid.New()
	seedMember(t, db, studioA, "Anna", "Weber", domain.StatusActive)
	seedMember(t, db, studioA, "Jonas", "Becker", domain.StatusPending)
	seedMember(t, db, studioB, "Lena", "Fischer", domain.StatusActive)

	rows, err := repo.ListByStudio(ctx, studioA)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, m := range rows {
		assert.Equal(t, studioA, m.StudioID)
	}
}

func TestMemberRepository_SearchByName_ScopedAndCaseInsensitive(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioA := uuid.New()
	studioB := uuid.New()
	seedMember(t, db, studioA, "Anna", "Weber", domain.StatusActive)
	seedMember(t, db, studioB, "Anna", "Klein", domain.StatusActive)

	// Two Annas exist, but only the caller's studio is searched.
	rows, err := repo.SearchByName(ctx, studioA, "anna", 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Weber", rows[0].Profile.LastName)

	// Last names match too.
	rows, err = repo.SearchByName(ctx, studioB, "kle", 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Klein", rows[0].Profile.LastName)
}

func TestMemberRepository_CreateWithProfile_RollsBackProfile(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioID := uuid.New()
	existing := seedMember(t, db, studioID, "Anna", "Weber", domain.StatusActive)

	profile := &domain.Profile{
		StudioID:  studioID,
		Role:      domain.RoleMember,
		FirstName: "Tim",
		LastName:  "Hoffmann",
	}
	// Reusing an existing primary key forces the member insert to fail
	// after the profile insert succeeded.
	member := &domain.Member{
		ID:       existing.ID,
		StudioID: studioID,
		Status:   domain.StatusPending,
	}

	err := repo.CreateWithProfile(ctx, profile, member)
	require.Error(t, err)

	// The transaction rolled the profile back as well.
	var count int64
	db.Model(&domain.Profile{}).Where("first_name = ?", "Tim").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMemberRepository_UpdateFields_PreservesUntouchedColumns(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioID := uuid.New()
	notes := "prefers morning classes"
	member := seedMember(t, db, studioID, "Anna", "Weber", domain.StatusActive)
	require.NoError(t, db.Model(member).Updates(map[string]interface{}{
		"notes":           notes,
		"credits_balance": 7,
	}).Error)

	rows, err := repo.UpdateFields(ctx, member.ID, studioID, map[string]interface{}{
		"loyalty_points": 120,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var got domain.Member
	require.NoError(t, db.First(&got, "id = ?", member.ID).Error)
	assert.Equal(t, 120, got.LoyaltyPoints)
	assert.Equal(t, 7, got.CreditsBalance)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)
}

func TestMemberRepository_UpdateFields_EmptyMapIsNoop(t *testing.T) {
	repo, _ := setupMemberRepo(t)

	rows, err := repo.UpdateFields(context.Background(), uuid.New(), uuid.New(), map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestMemberRepository_SetStatus_SoftDeleteRoundTrip(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioID := uuid.New()
	member := seedMember(t, db, studioID, "Anna", "Weber", domain.StatusActive)

	rows, err := repo.SetStatus(ctx, member.ID, studioID, domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var got domain.Member
	require.NoError(t, db.First(&got, "id = ?", member.ID).Error)
	assert.Equal(t, domain.StatusInactive, got.Status)

	// The row is still there, so the delete reverses cleanly.
	rows, err = repo.SetStatus(ctx, member.ID, studioID, domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, db.First(&got, "id = ?", member.ID).Error)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestMemberRepository_SetStatus_WrongStudioTouchesNothing(t *testing.T) {
	repo, db := setupMemberRepo(t)
	ctx := context.Background()

	studioA := uuid.New()
	member := seedMember(t, db, studioA, "Anna", "Weber", domain.StatusActive)

	rows, err := repo.SetStatus(ctx, member.ID, uuid.New(), domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	var got domain.Member
	require.NoError(t, db.First(&got, "id = ?", member.ID).Error)
	assert.Equal(t, domain.StatusActive, got.Status)
}
