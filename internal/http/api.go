package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sourceboard/internal/domain"
	"sourceboard/internal/service"
)

// SessionCookie is the name of the login cookie.
const SessionCookie = "sourceboard_session"

// Handler wires HTTP routes to domain services.
type Handler struct {
	sources      service.SourceService
	users        service.UserService
	sessions     service.SessionService
	logger       *logrus.Logger
	secureCookie bool
}

func NewHandler(
	sources service.SourceService,
	users service.UserService,
	sessions service.SessionService,
	logger *logrus.Logger,
	secureCookie bool,
) *Handler {
	return &Handler{
		sources:      sources,
		users:        users,
		sessions:     sessions,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.resolveIdentity())

	router.GET("/", h.listSources)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.POST("/register", h.register)
	router.GET("/source/:id", h.getSource)

	authed := router.Group("/", h.requireUser())
	{
		authed.POST("/logout", h.logout)
		authed.GET("/profile", h.profile)
		authed.GET("/create", h.createForm)
		authed.POST("/create", h.createSource)
		authed.POST("/source/:id", h.updateSource)
		authed.POST("/source/:id/delete", h.deleteSource)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})
}

type registerRequest struct {
	Username       string `form:"username" json:"username"`
	Password       string `form:"password" json:"password"`
	RegisterSecret string `form:"register_secret" json:"register_secret"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Remember bool   `form:"remember" json:"remember"`
}

type sourceRequest struct {
	Title string `form:"title" json:"title"`
	URL   string `form:"url" json:"url"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.RegisterSecret)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.logger.Infof("registered user %q", user.Username)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) loginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"username", "password", "remember"}})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, expiresAt, err := h.sessions.Start(c.Request.Context(), user.ID, req.Remember)
	if err != nil {
		h.renderError(c, err)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(SessionCookie, token, maxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) logout(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.sessions.End(c.Request.Context(), token); err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) profile(c *gin.Context) {
	userID, _ := currentIdentity(c).UserID()
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) listSources(c *gin.Context) {
	sources, err := h.sources.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	identity := currentIdentity(c)
	resp := make([]SourceResponse, len(sources))
	for i := range sources {
		resp[i] = sourceToResponse(sources[i], identity)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"title", "url"}})
}

func (h *Handler) createSource(c *gin.Context) {
	var req sourceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.sources.Create(c.Request.Context(), currentIdentity(c), req.Title, req.URL); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) getSource(c *gin.Context) {
	id, ok := sourceID(c)
	if !ok {
		return
	}

	source, err := h.sources.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, sourceToResponse(*source, currentIdentity(c)))
}

func (h *Handler) updateSource(c *gin.Context) {
	id, ok := sourceID(c)
	if !ok {
		return
	}

	var req sourceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.sources.Update(c.Request.Context(), currentIdentity(c), id, req.Title, req.URL); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/source/"+strconv.FormatInt(id, 10))
}

func (h *Handler) deleteSource(c *gin.Context) {
	id, ok := sourceID(c)
	if !ok {
		return
	}

	if err := h.sources.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func sourceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source id"})
		return 0, false
	}
	return id, true
}

// renderError maps service errors onto HTTP outcomes. Anything unclassified
// is treated as a transient storage failure: logged, reported as retryable,
// and nothing was committed.
func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "fields can not be empty", "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrInvalidRegistrationPassword):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid registration password"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may do that"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Errorf("storage failure: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "error while saving. Try again later"})
	}
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type SourceResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	AuthorID  *int64 `json:"author_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Editable  bool   `json:"editable"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func sourceToResponse(source domain.Source, identity domain.Identity) SourceResponse {
	return SourceResponse{
		ID:        source.ID,
		Title:     source.Title,
		URL:       source.URL,
		AuthorID:  source.AuthorID,
		CreatedAt: source.CreatedAt.Format(time.RFC3339),
		UpdatedAt: source.UpdatedAt.Format(time.RFC3339),
		Editable:  source.CanBeMutatedBy(identity),
	}
}
