package handler

import (
	"github.com/Lewin99/BuddyGet/internal/store"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	Goals *store.GoalStore
}

func NewGoalHandler(goals *store.GoalStore) *GoalHandler {
	return &GoalHandler{Goals: goals}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req store.GoalInput
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.Goals.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		util.Fail(c, err, "failed to create goal")
		return
	}
	util.Created(c, util.Response{"goal": g})
}

func (h *GoalHandler) GetGoals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	goals, err := h.Goals.List(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err, "failed to load goals")
		return
	}
	util.Success(c, util.Response{"goals": goals})
}

// UpdateGoal adds amount to the goal's progress; it may not pass the target.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	delta, ok := bindAmount(c)
	if !ok {
		return
	}

	g, err := h.Goals.Update(c.Request.Context(), id, user.ID, delta)
	if err != nil {
		util.Fail(c, err, "failed to update goal")
		return
	}
	util.Success(c, util.Response{"goal": g})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Goals.Delete(c.Request.Context(), id, user.ID); err != nil {
		util.Fail(c, err, "failed to delete goal")
		return
	}
	util.Success(c, util.Response{"message": "goal deleted"})
}
