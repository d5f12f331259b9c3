package handlers

import (
	"net/http"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/relationship"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sendFriendRequestBody struct {
	RequestTo string `json:"requestTo"`
}

type resolveFriendRequestBody struct {
	RequestBy string `json:"requestBy"`
	Status    string `json:"status"`
}

// SendFriendRequest asks another user for friendship
// POST /api/v1/friend-requests
func (h *Handlers) SendFriendRequest(c *gin.Context) {
	currentUser, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var body sendFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.relationships.SendRequest(c.Request.Context(), currentUser.ID, body.RequestTo); err != nil {
		relationshipError(c, err)
		return
	}

	logger.Log.Info("Friend request sent",
		logger.WithUserID(currentUser.ID),
		logger.WithTargetID(body.RequestTo),
	)
	util.RespondSuccess(c, http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

// GetFriendRequests lists the users waiting for the caller's answer
// GET /api/v1/friend-requests
func (h *Handlers) GetFriendRequests(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	requests, err := h.relationships.ListInboundRequests(c.Request.Context(), userID)
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"friendRequests": requests})
}

// ResolveFriendRequest accepts or rejects a pending request
// POST /api/v1/friend-requests/resolve
func (h *Handlers) ResolveFriendRequest(c *gin.Context) {
	currentUser, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var body resolveFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	decision, err := relationship.ParseDecision(body.Status)
	if err != nil {
		relationshipError(c, err)
		return
	}

	outcome, err := h.relationships.ResolveRequest(c.Request.Context(), currentUser.ID, body.RequestBy, decision)
	if err != nil {
		relationshipError(c, err)
		return
	}

	logger.Log.Info("Friend request resolved",
		logger.WithUserID(currentUser.ID),
		logger.WithTargetID(body.RequestBy),
		zap.String("status", outcome.Status),
	)
	util.RespondSuccess(c, http.StatusOK, gin.H{
		"message": outcome.Message(),
		"status":  outcome.Status,
	})
}

// GetOutgoingFriendRequests lists the users the caller is waiting on
// GET /api/v1/friend-requests/outgoing
func (h *Handlers) GetOutgoingFriendRequests(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	requests, err := h.relationships.ListOutboundRequests(c.Request.Context(), userID)
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"friendRequests": requests})
}

// GetFriendRequestCount returns the number of pending inbound requests
// GET /api/v1/friend-requests/count
func (h *Handlers) GetFriendRequestCount(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	count, err := h.relationships.CountInboundRequests(c.Request.Context(), userID)
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"count": count})
}

// GetFriends lists the caller's friends
// GET /api/v1/friends
func (h *Handlers) GetFriends(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	friends, err := h.relationships.ListFriends(c.Request.Context(), userID)
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"friends": friends})
}

// GetRelationshipSnapshot returns the caller's friend and request id sets
// GET /api/v1/friends/snapshot
func (h *Handlers) GetRelationshipSnapshot(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	snapshot, err := h.relationships.Snapshot(c.Request.Context(), userID)
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"snapshot": snapshot})
}

// GetRelationshipStatus reports how the caller relates to another user
// GET /api/v1/users/:id/relationship
func (h *Handlers) GetRelationshipStatus(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	status, err := h.relationships.StatusBetween(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		relationshipError(c, err)
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"status": status})
}
