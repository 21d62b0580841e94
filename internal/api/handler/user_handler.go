package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-system/internal/api/metrics"
	"github.com/usermgmt/user-system/internal/api/middleware"
	"github.com/usermgmt/user-system/internal/core/ports"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       / [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /:id.
//
// @Summary      Get a single user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /.
//
// @Summary      Add a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      422   {object}  map[string]string
// @Router       / [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Password:  req.HashedPass,
		IsActive:  req.IsActive,
		LastLogin: req.LastLogin,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /:id. Only fields present in the body are applied; the
// role check has already run in the access-control middleware.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /:id (admin-only, enforced by middleware).
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Login handles POST /login and returns the credential digest used as the
// bearer token on subsequent requests.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      201   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.HashedPass,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, loginResponse{HashPass: token})
}

// Logout handles GET /logout. The caller is identified by the hashed_pass
// header; an unknown credential yields 404.
//
// @Summary      Logout
// @Tags         auth
// @Param        hashed_pass  header  string  true  "Bearer credential"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /logout [get]
func (h *UserHandler) Logout(c echo.Context) error {
	credential := c.Request().Header.Get(middleware.CredentialHeader)
	if err := h.service.Logout(c.Request().Context(), credential); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
