package api

import (
	"io"
	"net/http"

	"github.com/OBATA-VTU/oGig/internal/access"
	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/events"
	"github.com/OBATA-VTU/oGig/internal/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	identity, token, err := s.authenticator.SignUp(c.Request.Context(), auth.SignUpRequest{
		Email:               req.Email,
		Password:            req.Password,
		DisplayName:         req.DisplayName,
		Role:                req.Role,
		BusinessName:        req.BusinessName,
		BusinessAddress:     req.BusinessAddress,
		ContactPhone:        req.ContactPhone,
		IsLegallyRegistered: req.IsLegallyRegistered,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uid": identity.UID, "token": token})
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	identity, token, err := s.authenticator.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": identity.UID, "token": token})
}

func (s *Server) signOut(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		_ = s.authenticator.SignOut(c.Request.Context(), token)
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := s.authenticator.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listJobs(c *gin.Context) {
	jobs, err := s.board.Snapshot(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	filtered := services.FilterJobs(jobs, services.FilterCriteria{
		Search:   c.Query("search"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		State:    c.Query("state"),
	})

	c.JSON(http.StatusOK, gin.H{"jobs": toJobResponses(filtered)})
}

// streamJobs delivers the live board as server-sent events. Every event
// is a complete snapshot; the subscription is torn down when the client
// disconnects.
func (s *Server) streamJobs(c *gin.Context) {

	snapshots := make(chan events.JobsSnapshot, 8)
	feedErrors := make(chan events.JobsFeedError, 1)

	subscription, err := s.board.Subscribe(
		func(snapshot events.JobsSnapshot) {
			pushLatestSnapshot(snapshots, snapshot)
		},
		func(feedError events.JobsFeedError) {
			select {
			case feedErrors <- feedError:
			default:
			}
		},
	)
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer subscription.Unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot := <-snapshots:
			c.SSEvent("snapshot", gin.H{"jobs": toJobResponses(snapshot.Jobs)})
			return true
		case feedError := <-feedErrors:
			kind := faults.KindOf(feedError.Err)
			c.SSEvent("error", gin.H{"kind": string(kind), "retryable": kind != faults.Permission})
			// a permission denial is terminal for the feed
			return kind != faults.Permission
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// pushLatestSnapshot enqueues without ever blocking the publisher. When
// a slow client lets the buffer fill, the oldest snapshot is discarded:
// each snapshot carries the complete collection, so the newest one
// supersedes everything queued before it.
func pushLatestSnapshot(ch chan events.JobsSnapshot, snapshot events.JobsSnapshot) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func (s *Server) resolveView(c *gin.Context) {
	view := access.ParseFragment(c.Query("fragment"))

	var identity *auth.Identity
	var profile *models.UserProfile

	if token := bearerToken(c); token != "" {
		identity, _ = s.authenticator.IdentityFromToken(c.Request.Context(), token)
		if identity != nil {
			profile, _ = s.profiles.GetByUID(c.Request.Context(), identity.UID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"view":         string(view),
		"presentation": string(access.Resolve(view, identity, profile)),
		"fragment":     access.Fragment(view),
	})
}

func (s *Server) createJob(c *gin.Context) {
	var payload models.JobSubmission
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := s.submissions.Submit(c.Request.Context(), payload, identityFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toJobResponse(*job))
}

// deleteJob removes a posting. Only its creator or an admin may do so;
// deleting an already-gone posting succeeds.
func (s *Server) deleteJob(c *gin.Context) {
	identity := identityFrom(c)
	id := c.Param("id")

	job, err := s.board.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if job != nil && job.CreatorID != identity.UID {
		profile, err := s.profiles.GetByUID(c.Request.Context(), identity.UID)
		if err != nil {
			s.writeError(c, err)
			return
		}
		if !access.Allows(identity, profile, access.CanAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the creator or an admin can remove a posting"})
			return
		}
	}

	if err := s.board.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// myJobs lists the caller's own postings for their dashboard.
func (s *Server) myJobs(c *gin.Context) {
	identity := identityFrom(c)

	jobs, err := s.board.ByCreator(c.Request.Context(), identity.UID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": toJobResponses(jobs)})
}

func (s *Server) myProfile(c *gin.Context) {
	identity := identityFrom(c)

	profile, err := s.profiles.GetByUID(c.Request.Context(), identity.UID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(*profile))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	identity := identityFrom(c)
	if err := s.profileUpdates.UpdateDetails(c.Request.Context(), identity.UID, req.Bio, req.Institution, req.Skills); err != nil {
		s.writeError(c, err)
		return
	}
	s.profileCache.Invalidate(identity.UID)

	c.Status(http.StatusNoContent)
}

func (s *Server) appendPortfolioItem(c *gin.Context) {
	var req portfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	identity := identityFrom(c)
	id, err := s.profileUpdates.AppendPortfolioItem(c.Request.Context(), identity.UID, models.PortfolioItem{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.profileCache.Invalidate(identity.UID)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) followProfile(c *gin.Context) {
	identity := identityFrom(c)
	followedUID := c.Param("uid")

	if followedUID == identity.UID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return
	}

	if err := s.profileUpdates.Follow(c.Request.Context(), identity.UID, followedUID); err != nil {
		s.writeError(c, err)
		return
	}
	s.profileCache.Invalidate(identity.UID)
	s.profileCache.Invalidate(followedUID)

	c.Status(http.StatusNoContent)
}

func (s *Server) unfollowProfile(c *gin.Context) {
	identity := identityFrom(c)
	followedUID := c.Param("uid")

	if err := s.profileUpdates.Unfollow(c.Request.Context(), identity.UID, followedUID); err != nil {
		s.writeError(c, err)
		return
	}
	s.profileCache.Invalidate(identity.UID)
	s.profileCache.Invalidate(followedUID)

	c.Status(http.StatusNoContent)
}

func (s *Server) processRawPosting(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := s.formatter.FormatAndPublish(c.Request.Context(), req.RawText)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toJobResponse(*job))
}

func (s *Server) generateLogo(c *gin.Context) {
	var req logoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// an empty logo is not an error; generation is best effort
	logo := s.logos.GenerateLogo(c.Request.Context(), req.CompanyName)
	c.JSON(http.StatusOK, gin.H{"logo": logo})
}
