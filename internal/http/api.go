package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artist-admin/internal/auth"
	"artist-admin/internal/domain"
	"artist-admin/internal/repository"
	"artist-admin/internal/service"
	"artist-admin/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	artists        service.ArtistService
	tokens         *auth.TokenService
	storage        storage.Service
	bucket         string
	keyPrefix      string
	protectArtists bool
}

// Options configures optional handler behavior.
type Options struct {
	// Storage and Bucket enable the snapshot export endpoints.
	Storage   storage.Service
	Bucket    string
	KeyPrefix string
	// ProtectArtists places the artist routes behind token verification.
	// The upstream dashboard shipped them open; this restores the gate.
	ProtectArtists bool
}

func NewHandler(users service.UserService, artists service.ArtistService, tokens *auth.TokenService, opts Options) *Handler {
	return &Handler{
		users:          users,
		artists:        artists,
		tokens:         tokens,
		storage:        opts.Storage,
		bucket:         opts.Bucket,
		keyPrefix:      opts.KeyPrefix,
		protectArtists: opts.ProtectArtists,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", h.welcome)
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/profile", RequireAuth(h.tokens), h.profile)

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		artists := api.Group("")
		if h.protectArtists {
			artists.Use(RequireAuth(h.tokens))
		}
		artists.POST("/artist", h.createArtist)
		artists.GET("/artists", h.listArtists)
		artists.GET("/artist/:id", h.getArtist)
		artists.PUT("/artist/:id", h.updateArtist)
		artists.DELETE("/artist/:id", h.deleteArtist)

		exports := api.Group("", RequireAuth(h.tokens))
		exports.POST("/export", h.exportArtists)
		exports.GET("/exports", h.listExports)
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "artist admin api"})
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) profile(c *gin.Context) {
	ident, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	// the token only asserts identity; the account itself must still exist
	user, err := h.users.GetByID(c.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

type createArtistRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Address string `json:"address"`
}

type updateArtistRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type ArtistResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) createArtist(c *gin.Context) {
	var req createArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	artist, err := h.artists.Create(c.Request.Context(), req.Name, req.Email, req.Address)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, artistToResponse(*artist))
}

func (h *Handler) listArtists(c *gin.Context) {
	artists, err := h.artists.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ArtistResponse, len(artists))
	for i := range artists {
		resp[i] = artistToResponse(artists[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getArtist(c *gin.Context) {
	artist, err := h.artists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, artistToResponse(*artist))
}

func (h *Handler) updateArtist(c *gin.Context) {
	var req updateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artist payload"})
		return
	}

	artist, err := h.artists.Update(c.Request.Context(), c.Param("id"), service.ArtistUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, artistToResponse(*artist))
}

func (h *Handler) deleteArtist(c *gin.Context) {
	if err := h.artists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) exportArtists(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	artists, err := h.artists.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ArtistResponse, len(artists))
	for i := range artists {
		resp[i] = artistToResponse(artists[i])
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		h.writeError(c, err)
		return
	}

	key := fmt.Sprintf("%s/artists-%s.json", h.keyPrefix, time.Now().UTC().Format("20060102T150405Z"))
	location, err := h.storage.UploadSnapshot(c.Request.Context(), storage.UploadOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: "application/json",
	}, payload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location, "count": len(artists)})
}

func (h *Handler) listExports(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.keyPrefix)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func artistToResponse(artist domain.Artist) ArtistResponse {
	return ArtistResponse{
		ID:        artist.ID,
		Name:      artist.Name,
		Email:     artist.Email,
		Address:   artist.Address,
		CreatedAt: artist.CreatedAt.Format(time.RFC3339),
		UpdatedAt: artist.UpdatedAt.Format(time.RFC3339),
	}
}

// writeError maps service failures onto the response taxonomy. Anything
// unmapped is an internal failure and must not leak store detail.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrArtistAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "artist already exists"})
	case errors.Is(err, service.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
