// Package access decides which views an identity may open. The
// capability check is deliberately decoupled from view routing so the
// policy can be tested on its own.
package access

import (
	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
)

type View string

const (
	ViewHome      View = "home"
	ViewGigs      View = "gigs"
	ViewPost      View = "post"
	ViewDashboard View = "dashboard"
	ViewAdmin     View = "admin"
	ViewAbout     View = "about"
	ViewFounder   View = "founder"
	ViewLegal     View = "legal"
)

// adminAlias is the legacy obfuscated fragment for the admin console,
// kept so old bookmarks keep resolving. It is routing compatibility
// only, never an access control.
const adminAlias = "adminoba"

// ParseFragment maps a URL fragment to a view. Unknown fragments fall
// back to home, which is always reachable.
func ParseFragment(fragment string) View {
	if fragment == adminAlias {
		return ViewAdmin
	}

	switch View(fragment) {
	case ViewHome, ViewGigs, ViewPost, ViewDashboard, ViewAdmin, ViewAbout, ViewFounder, ViewLegal:
		return View(fragment)
	default:
		return ViewHome
	}
}

// Fragment is the inverse of ParseFragment; the admin view keeps its
// alias and home maps to the empty fragment.
func Fragment(view View) string {
	switch view {
	case ViewAdmin:
		return adminAlias
	case ViewHome:
		return ""
	default:
		return string(view)
	}
}

type Capability string

const (
	CanBrowse Capability = "browse"
	CanPost   Capability = "post"
	CanAdmin  Capability = "admin"
)

// Allows is the single capability check: browsing and posting need an
// identity, administration needs the stored admin role.
func Allows(identity *auth.Identity, profile *models.UserProfile, capability Capability) bool {
	authenticated := identity != nil && identity.UID != ""

	switch capability {
	case CanBrowse, CanPost:
		return authenticated
	case CanAdmin:
		return authenticated && profile != nil && profile.Role == models.RoleAdmin
	default:
		return false
	}
}

// Presentation is what the caller should actually render for a
// requested view.
type Presentation string

const (
	PresentationView      Presentation = "view"
	PresentationAuthWall  Presentation = "auth_wall"
	PresentationForbidden Presentation = "forbidden"
)

// Resolve gates a navigation request. Unauthenticated requests to gated
// views land on the auth wall; authenticated non-admins requesting the
// admin console are forbidden. No outcome is terminal.
func Resolve(view View, identity *auth.Identity, profile *models.UserProfile) Presentation {
	switch view {
	case ViewGigs, ViewPost, ViewDashboard:
		if !Allows(identity, profile, CanBrowse) {
			return PresentationAuthWall
		}
		return PresentationView
	case ViewAdmin:
		if identity == nil || identity.UID == "" {
			return PresentationAuthWall
		}
		if !Allows(identity, profile, CanAdmin) {
			return PresentationForbidden
		}
		return PresentationView
	default:
		return PresentationView
	}
}
