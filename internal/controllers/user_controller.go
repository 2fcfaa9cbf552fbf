package controllers

import (
	"net/http"
	"strconv"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users repository.UserRepository
}

func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	user, err := uc.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

type UpdatePreferencesRequest struct {
	EmailNotifications *bool `json:"emailNotifications"`
}

// UpdatePreferences lets a user toggle whether status changes on their
// reports also reach them by email.
func (uc *UserController) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	user, err := uc.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}

	if err := uc.users.Save(user); err != nil {
		respondError(c, err)
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (uc *UserController) GetUsers(c *gin.Context) {
	if !uc.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
		return
	}

	users, err := uc.users.List()
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

type UpdateRolesRequest struct {
	Grant  []string `json:"grant"`
	Revoke []string `json:"revoke"`
}

// UpdateRoles grants and revokes granular roles on a user. Admin only.
// Granting a role the user already holds is a conflict.
func (uc *UserController) UpdateRoles(c *gin.Context) {
	if !uc.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	var req UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	user, err := uc.users.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	for _, raw := range req.Grant {
		role, ok := models.ParseRole(raw)
		if !ok {
			respondError(c, services.NewValidationError("unknown role %q", raw))
			return
		}
		if user.HasRole(role) {
			respondError(c, services.NewConflictError("user already holds role %s", role))
			return
		}
		user.Roles = append(user.Roles, string(role))
	}

	for _, raw := range req.Revoke {
		role, ok := models.ParseRole(raw)
		if !ok {
			respondError(c, services.NewValidationError("unknown role %q", raw))
			return
		}
		kept := user.Roles[:0]
		for _, held := range user.Roles {
			if models.Role(held) != role {
				kept = append(kept, held)
			}
		}
		user.Roles = kept
	}

	if len(user.Roles) > 0 && user.UserType == models.UserTypeCitizen {
		user.UserType = models.UserTypeMunicipality
	}

	if err := uc.users.Save(user); err != nil {
		respondError(c, err)
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (uc *UserController) isAdmin(c *gin.Context) bool {
	t, exists := c.Get("user_type")
	if !exists {
		return false
	}
	s, ok := t.(string)
	return ok && models.IsAdmin(models.UserType(s))
}
