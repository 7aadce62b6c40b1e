package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"profilehub/internal/auth"
	"profilehub/internal/domain"
	"profilehub/internal/service"
)

const identityKey = "identity"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	profiles service.ProfileService
	tokens   *auth.TokenIssuer
	log      *logrus.Logger
}

func NewHandler(users service.UserService, profiles service.ProfileService, tokens *auth.TokenIssuer, log *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api/auth")
	{
		api.GET("/get", h.listUsers)
		api.GET("/get/:userId", h.getUser)
		api.POST("/register", h.register)
		api.POST("/login", h.login)

		protected := api.Group("", h.requireAuth())
		protected.GET("/load", h.loadUser)
		protected.PATCH("/update-user", h.updateUser)
		protected.DELETE("/delete-user/:userId", h.deleteUser)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth is the session guard: it verifies the bearer token and
// exposes the decoded identity to downstream handlers.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failed("auth failed"))
			return
		}

		identity, err := h.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failed("auth failed"))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func callerIdentity(c *gin.Context) auth.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(auth.Identity)
	return identity
}

// Response is the uniform envelope every route answers with. Workflow
// failures stay HTTP 200 and flip the status discriminator instead.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

func failed(message string) Response {
	return Response{Status: statusFailed, Message: message}
}

// toFailure shapes a workflow error into the envelope. Tagged errors keep
// their message; anything else is reported as a generic request error.
func (h *Handler) toFailure(c *gin.Context, err error) Response {
	var werr *service.Error
	if errors.As(err, &werr) && werr.Kind != service.KindStore {
		return failed(werr.Msg)
	}
	h.log.WithError(err).Warnf("%s %s failed", c.Request.Method, c.FullPath())
	resp := failed("request error")
	resp.Error = err.Error()
	return resp
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	Battery    int    `json:"battery"`
	Remote     bool   `json:"remote"`
	Signal     int    `json:"signal"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Avatar     string `json:"avatar"`
	Status     string `json:"status"`
	Battery    int    `json:"battery"`
	Remote     bool   `json:"remote"`
	Signal     int    `json:"signal"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Occupation: user.Occupation,
		Gender:     user.Gender,
		Address:    user.Address,
		Phone:      user.Phone,
		Avatar:     user.Avatar,
		Status:     user.Status,
		Battery:    user.Battery,
		Remote:     user.Remote,
		Signal:     user.Signal,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.profiles.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	data := make([]UserResponse, len(users))
	for i := range users {
		data[i] = userToResponse(users[i])
	}
	count := len(data)
	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "data fetch successfully",
		Count:   &count,
		Data:    data,
	})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.profiles.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "data fetch successfully",
		Data:    userToResponse(*user),
	})
}

func (h *Handler) loadUser(c *gin.Context) {
	user, err := h.profiles.Load(c.Request.Context(), callerIdentity(c))
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "data fetch successfully",
		Data:    userToResponse(*user),
	})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, failed("invalid request body"))
		return
	}

	token, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Occupation: req.Occupation,
		Gender:     req.Gender,
		Address:    req.Address,
		Phone:      req.Phone,
		Status:     req.Status,
		Battery:    req.Battery,
		Remote:     req.Remote,
		Signal:     req.Signal,
	})
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "User was created",
		Token:   token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, failed("invalid request body"))
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "login successfully",
		Token:   token,
	})
}

// updateUser accepts a multipart form so profile fields and the avatar
// file travel in one request. Absent fields stay untouched.
func (h *Handler) updateUser(c *gin.Context) {
	update := service.ProfileUpdate{
		Name:       formField(c, "name"),
		Address:    formField(c, "address"),
		Phone:      formField(c, "phone"),
		Occupation: formField(c, "occupation"),
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusOK, failed("invalid avatar attachment"))
			return
		}
		defer src.Close()
		update.Avatar = &service.AvatarUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Body:        src,
		}
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), callerIdentity(c), update)
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "data update successfully",
		Data:    userToResponse(*user),
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := h.profiles.Delete(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusOK, h.toFailure(c, err))
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  statusSuccess,
		Message: "data delete successfully",
		ID:      id,
	})
}

func formField(c *gin.Context, name string) *string {
	if value, ok := c.GetPostForm(name); ok {
		return &value
	}
	return nil
}
