package handlers

import (
	"net/http"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/users/me
func GetMe(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	user, err := repositories.UserRepository{}.GetByID(session.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// PUT /api/users/me
func UpdateMe(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.UserRepository{}
	if err := repo.Update(session.UserID, req.FullName, req.Phone, ""); err != nil {
		RespondDomainError(c, err)
		return
	}
	user, err := repo.GetByID(session.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}

// GET /api/admin/users
func GetUsers(c *gin.Context) {
	users, err := repositories.UserRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]any, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GET /api/admin/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}

type adminUpdateUserRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// PUT /api/admin/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req adminUpdateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Role != "" && req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		RespondDomainError(c, domain.ValidationError{Field: "role", Msg: "unknown role " + req.Role})
		return
	}
	repo := repositories.UserRepository{}
	if err := repo.Update(id, req.FullName, req.Phone, req.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}

// DELETE /api/admin/users/:id
func DeleteUser(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if id == session.UserID {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "cannot delete your own account"})
		return
	}
	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
