package access

import (
	"testing"

	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

var (
	visitor  *auth.Identity
	employee = &auth.Identity{UID: "emp-1", Email: "emp@example.com"}
	admin    = &auth.Identity{UID: "adm-1", Email: "adm@example.com"}

	employeeProfile = &models.UserProfile{UID: "emp-1", Role: models.RoleEmployee}
	adminProfile    = &models.UserProfile{UID: "adm-1", Role: models.RoleAdmin}
)

func Test_ParseFragment(t *testing.T) {
	assert.Equal(t, ViewGigs, ParseFragment("gigs"))
	assert.Equal(t, ViewAdmin, ParseFragment("admin"))
	assert.Equal(t, ViewAdmin, ParseFragment("adminoba"))
	assert.Equal(t, ViewHome, ParseFragment(""))
	assert.Equal(t, ViewHome, ParseFragment("no-such-view"))
}

func Test_Fragment_RoundTripsThroughParse(t *testing.T) {
	for _, view := range []View{ViewHome, ViewGigs, ViewPost, ViewDashboard, ViewAdmin, ViewAbout, ViewFounder, ViewLegal} {
		assert.Equal(t, view, ParseFragment(Fragment(view)))
	}
	assert.Equal(t, "adminoba", Fragment(ViewAdmin))
	assert.Equal(t, "", Fragment(ViewHome))
}

func Test_Allows(t *testing.T) {
	assert.False(t, Allows(visitor, nil, CanBrowse))
	assert.False(t, Allows(&auth.Identity{}, nil, CanPost))

	assert.True(t, Allows(employee, employeeProfile, CanBrowse))
	assert.True(t, Allows(employee, employeeProfile, CanPost))
	assert.False(t, Allows(employee, employeeProfile, CanAdmin))

	assert.True(t, Allows(admin, adminProfile, CanAdmin))
	assert.False(t, Allows(admin, nil, CanAdmin))
}

func Test_Resolve_PublicViewsAreAlwaysShown(t *testing.T) {
	for _, view := range []View{ViewHome, ViewAbout, ViewFounder, ViewLegal} {
		assert.Equal(t, PresentationView, Resolve(view, visitor, nil))
	}
}

func Test_Resolve_GatedViewsSendVisitorsToAuthWall(t *testing.T) {
	for _, view := range []View{ViewGigs, ViewPost, ViewDashboard, ViewAdmin} {
		assert.Equal(t, PresentationAuthWall, Resolve(view, visitor, nil))
	}
}

func Test_Resolve_AuthenticatedUserReachesGatedViews(t *testing.T) {
	for _, view := range []View{ViewGigs, ViewPost, ViewDashboard} {
		assert.Equal(t, PresentationView, Resolve(view, employee, employeeProfile))
	}
}

func Test_Resolve_NonAdminRequestingAdminIsForbidden(t *testing.T) {
	assert.Equal(t, PresentationForbidden, Resolve(ViewAdmin, employee, employeeProfile))
	assert.Equal(t, PresentationForbidden, Resolve(ViewAdmin, employee, nil))
	assert.Equal(t, PresentationView, Resolve(ViewAdmin, admin, adminProfile))
}
