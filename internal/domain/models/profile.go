package models

import (
	"errors"
	"strings"
	"time"
)

type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleEmployer UserRole = "EMPLOYER"
	RoleAdmin    UserRole = "ADMIN"
)

func ToUserRole(s string) (UserRole, error) {
	switch s {
	case string(RoleEmployee):
		return RoleEmployee, nil
	case string(RoleEmployer):
		return RoleEmployer, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", errors.New("invalid user role")
	}
}

type PortfolioItem struct {
	ID          string `gorm:"primaryKey"`
	ProfileUID  string `gorm:"index"`
	Title       string
	Description string
	ImageURL    string
	Link        string
}

// UserProfile is keyed by the owning authentication identity. Role is set
// once at sign-up and never changed afterwards.
type UserProfile struct {
	UID            string `gorm:"primaryKey"`
	DisplayName    string
	Email          string
	Role           UserRole
	Bio            string
	Institution    string
	Skills         string
	PortfolioItems []PortfolioItem `gorm:"foreignKey:ProfileUID"`
	Following      string
	Followers      string

	// meaningful only when Role == RoleEmployer
	BusinessName        string
	BusinessAddress     string
	IsLegallyRegistered bool
	ContactPhone        string

	CreatedAt time.Time
}

func (p *UserProfile) SkillsAsArray() []string {
	return splitSet(p.Skills)
}

func (p *UserProfile) FollowingAsArray() []string {
	return splitSet(p.Following)
}

func (p *UserProfile) FollowersAsArray() []string {
	return splitSet(p.Followers)
}

func splitSet(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

func joinSet(items []string) string {
	return strings.Join(items, ",")
}

// AddToSet appends id to a comma-joined set if not already present.
func AddToSet(joined string, id string) string {
	items := splitSet(joined)
	for _, item := range items {
		if item == id {
			return joined
		}
	}
	return joinSet(append(items, id))
}

// RemoveFromSet drops id from a comma-joined set; absent ids are a no-op.
func RemoveFromSet(joined string, id string) string {
	items := splitSet(joined)
	kept := items[:0]
	for _, item := range items {
		if item != id {
			kept = append(kept, item)
		}
	}
	return joinSet(kept)
}

// Credential holds the local sign-in secret for an identity. Kept separate
// from the profile so profile reads never touch password material.
type Credential struct {
	UID          string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
}
