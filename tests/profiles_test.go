package tests

import (
	"context"
	"testing"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func addProfile(t *testing.T, profiles *repositories.Profiles, uid, name string) {
	err := profiles.Add(context.Background(), models.UserProfile{
		UID:         uid,
		DisplayName: name,
		Email:       name + "@example.com",
		Role:        models.RoleEmployee,
	})
	assert.NoError(t, err)
}

func Test_Profiles_UpdateDetailsLeavesRoleAlone(t *testing.T) {

	defer clearDb()

	profiles := repositories.NewProfilesRepository(dbCtx.DB)
	addProfile(t, profiles, "u1", "ada")

	err := profiles.UpdateDetails(context.Background(), "u1",
		"Building things", "UNILAG", []string{"go", "sql"})
	assert.NoError(t, err)

	profile, err := profiles.GetByUID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Building things", profile.Bio)
	assert.Equal(t, "UNILAG", profile.Institution)
	assert.Equal(t, []string{"go", "sql"}, profile.SkillsAsArray())
	assert.Equal(t, models.RoleEmployee, profile.Role)
}

func Test_Profiles_PortfolioItemsAreAdditive(t *testing.T) {

	defer clearDb()

	profiles := repositories.NewProfilesRepository(dbCtx.DB)
	addProfile(t, profiles, "u1", "ada")

	first, err := profiles.AppendPortfolioItem(context.Background(), "u1",
		models.PortfolioItem{Title: "Logo pack", Link: "https://example.com/a"})
	assert.NoError(t, err)

	second, err := profiles.AppendPortfolioItem(context.Background(), "u1",
		models.PortfolioItem{Title: "Landing page", Link: "https://example.com/b"})
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	profile, err := profiles.GetByUID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, profile.PortfolioItems, 2)
}

func Test_Profiles_FollowUpdatesBothSidesIdempotently(t *testing.T) {

	defer clearDb()

	profiles := repositories.NewProfilesRepository(dbCtx.DB)
	addProfile(t, profiles, "u1", "ada")
	addProfile(t, profiles, "u2", "bola")

	assert.NoError(t, profiles.Follow(context.Background(), "u1", "u2"))
	assert.NoError(t, profiles.Follow(context.Background(), "u1", "u2"))

	follower, err := profiles.GetByUID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u2"}, follower.FollowingAsArray())
	assert.Empty(t, follower.FollowersAsArray())

	followed, err := profiles.GetByUID(context.Background(), "u2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followed.FollowersAsArray())
}

func Test_Profiles_UnfollowClearsBothSides(t *testing.T) {

	defer clearDb()

	profiles := repositories.NewProfilesRepository(dbCtx.DB)
	addProfile(t, profiles, "u1", "ada")
	addProfile(t, profiles, "u2", "bola")

	assert.NoError(t, profiles.Follow(context.Background(), "u1", "u2"))
	assert.NoError(t, profiles.Unfollow(context.Background(), "u1", "u2"))
	assert.NoError(t, profiles.Unfollow(context.Background(), "u1", "u2"))

	follower, err := profiles.GetByUID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Empty(t, follower.FollowingAsArray())

	followed, err := profiles.GetByUID(context.Background(), "u2")
	assert.NoError(t, err)
	assert.Empty(t, followed.FollowersAsArray())
}

func Test_Profiles_GetByUID_MissingProfileIsNil(t *testing.T) {

	profiles := repositories.NewProfilesRepository(dbCtx.DB)

	profile, err := profiles.GetByUID(context.Background(), "no-such-uid")
	assert.NoError(t, err)
	assert.Nil(t, profile)
}
