package api

import (
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/samber/lo"
)

type jobResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Description   string   `json:"description"`
	Requirements  string   `json:"requirements,omitempty"`
	Procedure     string   `json:"procedure,omitempty"`
	Location      string   `json:"location"`
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Salary        string   `json:"salary,omitempty"`
	PostedAt      string   `json:"postedAt"`
	IsAdminPosted bool     `json:"isAdminPosted"`
	Tags          []string `json:"tags"`
	CreatorID     string   `json:"creatorId"`
	CreatorName   string   `json:"creatorName,omitempty"`
	Logo          string   `json:"logo,omitempty"`
	Whatsapp      string   `json:"whatsapp,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Link          string   `json:"link,omitempty"`
}

func toJobResponse(job models.Job) jobResponse {
	return jobResponse{
		ID:            job.ID,
		Title:         job.Title,
		Company:       job.Company,
		Description:   job.Description,
		Requirements:  job.Requirements,
		Procedure:     job.Procedure,
		Location:      job.Location,
		Type:          string(job.Type),
		Category:      job.Category,
		Salary:        job.Salary,
		PostedAt:      job.PostedAt.UTC().Format(time.RFC3339),
		IsAdminPosted: job.IsAdminPosted,
		Tags:          job.TagsAsArray(),
		CreatorID:     job.CreatorID,
		CreatorName:   job.CreatorName,
		Logo:          job.Logo,
		Whatsapp:      job.Whatsapp,
		Phone:         job.Phone,
		Email:         job.Email,
		Link:          job.Link,
	}
}

func toJobResponses(jobs []models.Job) []jobResponse {
	return lo.Map(jobs, func(job models.Job, _ int) jobResponse {
		return toJobResponse(job)
	})
}

type portfolioItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link,omitempty"`
}

type profileResponse struct {
	UID            string                  `json:"uid"`
	DisplayName    string                  `json:"displayName"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	Bio            string                  `json:"bio,omitempty"`
	Institution    string                  `json:"institution,omitempty"`
	Skills         []string                `json:"skills"`
	PortfolioItems []portfolioItemResponse `json:"portfolioItems"`
	Following      []string                `json:"following"`
	Followers      []string                `json:"followers"`

	BusinessName        string `json:"businessName,omitempty"`
	BusinessAddress     string `json:"businessAddress,omitempty"`
	IsLegallyRegistered bool   `json:"isLegallyRegistered,omitempty"`
	ContactPhone        string `json:"contactPhone,omitempty"`

	CreatedAt string `json:"createdAt"`
}

func toProfileResponse(profile models.UserProfile) profileResponse {
	items := lo.Map(profile.PortfolioItems, func(item models.PortfolioItem, _ int) portfolioItemResponse {
		return portfolioItemResponse{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Link:        item.Link,
		}
	})
	if items == nil {
		items = []portfolioItemResponse{}
	}

	return profileResponse{
		UID:                 profile.UID,
		DisplayName:         profile.DisplayName,
		Email:               profile.Email,
		Role:                string(profile.Role),
		Bio:                 profile.Bio,
		Institution:         profile.Institution,
		Skills:              profile.SkillsAsArray(),
		PortfolioItems:      items,
		Following:           profile.FollowingAsArray(),
		Followers:           profile.FollowersAsArray(),
		BusinessName:        profile.BusinessName,
		BusinessAddress:     profile.BusinessAddress,
		IsLegallyRegistered: profile.IsLegallyRegistered,
		ContactPhone:        profile.ContactPhone,
		CreatedAt:           profile.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type signUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role" binding:"required"`

	BusinessName        string `json:"businessName"`
	BusinessAddress     string `json:"businessAddress"`
	ContactPhone        string `json:"contactPhone"`
	IsLegallyRegistered bool   `json:"isLegallyRegistered"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type processRequest struct {
	RawText string `json:"rawText" binding:"required"`
}

type logoRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
}

type portfolioItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        string `json:"link"`
}

type updateProfileRequest struct {
	Bio         string   `json:"bio"`
	Institution string   `json:"institution"`
	Skills      []string `json:"skills"`
}
