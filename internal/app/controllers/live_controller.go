package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/live"
	"github.com/rs/zerolog"
)

// LiveController serves the live views: the reconciled listings window
// and the per-user notification window. Both stay up in mock mode, where
// the listings view carries the demo dataset instead of a snapshot.
type LiveController struct {
	listings *live.Watcher[*models.JobListing]
	feed     *changefeed.Feed
	desktop  func(userID int64) live.DesktopNotifier
	logger   zerolog.Logger

	mu    sync.Mutex
	views map[int64]*live.NotificationView
}

// NewLiveController creates a new LiveController. desktop builds the
// per-user desktop notifier; nil disables desktop delivery.
func NewLiveController(listings *live.Watcher[*models.JobListing], feed *changefeed.Feed, desktop func(int64) live.DesktopNotifier, logger zerolog.Logger) *LiveController {
	return &LiveController{
		listings: listings,
		feed:     feed,
		desktop:  desktop,
		logger:   logger,
		views:    make(map[int64]*live.NotificationView),
	}
}

// Listings returns the live listings window
// @Summary Live job listings
// @Description Returns the current reconciled view of active listings. Served from the change feed, with a demo dataset when no backend is configured.
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.JobResponse} "Live job listings"
// @Router /jobs/live [get]
func (c *LiveController) Listings(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJobListings(c.listings.Rows()), "Live job listings"))
}

// Notifications returns the caller's recent notification window
// @Summary Recent notifications
// @Description Returns the most recent notifications for the authenticated user, newest first. The window starts filling on first access and is capped at ten entries.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.Notification} "Recent notifications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *LiveController) Notifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	view := c.viewFor(userID)
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(view.Notifications(), "Notifications retrieved"))
}

// viewFor lazily starts one notification view per user. The view keeps
// following the feed after the request, so later reads see what arrived
// in between.
func (c *LiveController) viewFor(userID int64) *live.NotificationView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if view, ok := c.views[userID]; ok {
		return view
	}

	var desktop live.DesktopNotifier
	if c.desktop != nil {
		desktop = c.desktop(userID)
	}
	view := live.NewNotificationView(userID, c.feed, desktop, c.logger)
	view.Start()
	c.views[userID] = view
	return view
}

// Stop shuts down every notification view
func (c *LiveController) Stop() {
	c.mu.Lock()
	views := make([]*live.NotificationView, 0, len(c.views))
	for _, view := range c.views {
		views = append(views, view)
	}
	c.views = make(map[int64]*live.NotificationView)
	c.mu.Unlock()

	for _, view := range views {
		view.Stop()
	}
}
