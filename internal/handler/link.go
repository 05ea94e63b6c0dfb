package handler

import (
	"strconv"

	"github.com/Lewin99/BuddyGet/internal/aggregator"
	"github.com/Lewin99/BuddyGet/internal/middleware"
	"github.com/Lewin99/BuddyGet/internal/store"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

// LinkHandler serves the aggregator onboarding flow: the dashboard asks for
// a link token, runs the aggregator's widget and posts back a public token.
type LinkHandler struct {
	Client              aggregator.Client
	Accounts            *store.AccountStore
	DefaultClientUserID string
}

func NewLinkHandler(client aggregator.Client, accounts *store.AccountStore, defaultClientUserID string) *LinkHandler {
	return &LinkHandler{Client: client, Accounts: accounts, DefaultClientUserID: defaultClientUserID}
}

type exchangeReq struct {
	PublicToken string `json:"public_token" binding:"required"`
}

func (h *LinkHandler) CreateLinkToken(c *gin.Context) {
	clientUserID := h.DefaultClientUserID
	if user, ok := middleware.CurrentUser(c); ok {
		clientUserID = strconv.FormatUint(uint64(user.ID), 10)
	}

	lt, err := h.Client.CreateLinkToken(c.Request.Context(), clientUserID)
	if err != nil {
		util.Fail(c, err, "failed to create link token")
		return
	}
	util.Success(c, util.Response{
		"link_token": lt.LinkToken,
		"expiration": lt.Expiration,
	})
}

// ExchangePublicToken trades a public token for an access credential. When
// the caller is signed in, the credential becomes their linked account.
func (h *LinkHandler) ExchangePublicToken(c *gin.Context) {
	var req exchangeReq
	if !bindJSON(c, &req) {
		return
	}

	ex, err := h.Client.ExchangePublicToken(c.Request.Context(), req.PublicToken)
	if err != nil {
		util.Fail(c, err, "failed to exchange public token")
		return
	}

	linked := false
	if user, ok := middleware.CurrentUser(c); ok {
		if err := h.Accounts.Link(c.Request.Context(), user.ID, ex.ItemID, ex.AccessToken); err != nil {
			util.Fail(c, err, "failed to link account")
			return
		}
		linked = true
	}

	util.Success(c, util.Response{
		"access_token": ex.AccessToken,
		"item_id":      ex.ItemID,
		"linked":       linked,
	})
}
