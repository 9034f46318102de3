package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
	"github.com/shashiranjanraj/decorhub/pkg/response"
)

type accountStatusInput struct {
	AccountStatus string `json:"accountStatus" validate:"required,max=40"`
}

type roleInput struct {
	Role string `json:"role" validate:"required,oneof=user decorator admin"`
}

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register handles POST /users.
func (uc *UserController) Register(c *ctx.Context) {
	var in services.CreateUserInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := uc.users.Register(c.Context(), c.Email(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Message: res.Message, Data: res.InsertResult})
}

// TouchLogin handles PATCH /users.
func (uc *UserController) TouchLogin(c *ctx.Context) {
	res, err := uc.users.TouchLogin(c.Context(), c.Email())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

// Role handles GET /users/role/{email}.
func (uc *UserController) Role(c *ctx.Context) {
	role, err := uc.users.Role(c.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	var out *string
	if role != "" {
		out = &role
	}
	c.Success(map[string]*string{"role": out})
}

// List handles GET /users.
func (uc *UserController) List(c *ctx.Context) {
	users, err := uc.users.NonAdmins(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(users)
}

// Decorators handles GET /users/decorators.
func (uc *UserController) Decorators(c *ctx.Context) {
	users, err := uc.users.AvailableDecorators(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(users)
}

// Me handles GET /login-users.
func (uc *UserController) Me(c *ctx.Context) {
	u, err := uc.users.Me(c.Context(), c.Email())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(u)
}

// SetAccountStatus handles PATCH /users/account-status/{id}.
func (uc *UserController) SetAccountStatus(c *ctx.Context) {
	var in accountStatusInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := uc.users.SetAccountStatus(c.Context(), c.Param("id"), in.AccountStatus)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

// SetRole handles PATCH /users/role/{id}.
func (uc *UserController) SetRole(c *ctx.Context) {
	var in roleInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := uc.users.SetRole(c.Context(), c.Param("id"), in.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

// Delete handles DELETE /users/delete-user/{id}.
func (uc *UserController) Delete(c *ctx.Context) {
	res, err := uc.users.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}
