package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	internalRedis "cab/internal/redis"
	"cab/internal/repository"
)

// ClientHandler handles HTTP requests for the client directory.
type ClientHandler struct {
	clientRepo repository.ClientRepository
	cache      internalRedis.CacheStoreInterface
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientRepo repository.ClientRepository, cache internalRedis.CacheStoreInterface) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, cache: cache}
}

// ClientRequest is the HTTP request body for creating or updating a client.
type ClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CreditCard string `json:"credit_card"`
}

// ClientResponse is the HTTP response for client data.
type ClientResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	CreditCard string `json:"credit_card,omitempty"`
}

func clientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:         client.ID,
		Name:       client.Name,
		Email:      client.Email,
		Phone:      client.Phone,
		Address:    client.Address,
		CreditCard: client.CreditCard,
	}
}

// Create handles POST /v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and email are required"})
		return
	}

	// Check if a client is already registered under this email
	existing, err := h.clientRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Client already registered",
			"client":  clientResponse(existing),
		})
		return
	}

	client := &domain.Client{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CreditCard: req.CreditCard,
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, clientResponse(client))
}

// Get handles GET /v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	// Cache-aside read: serve from Redis when possible.
	if cached, err := h.cache.GetClient(ctx, id); err == nil && cached != nil {
		respondJSON(c, http.StatusOK, ClientResponse{
			ID:         cached.ID,
			Name:       cached.Name,
			Email:      cached.Email,
			Phone:      cached.Phone,
			Address:    cached.Address,
			CreditCard: cached.CreditCard,
		})
		return
	}

	client, err := h.clientRepo.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = h.cache.SetClient(ctx, &internalRedis.CachedClient{
		ID:         client.ID,
		Name:       client.Name,
		Email:      client.Email,
		Phone:      client.Phone,
		Address:    client.Address,
		CreditCard: client.CreditCard,
	})

	respondJSON(c, http.StatusOK, clientResponse(client))
}

// GetAll handles GET /v1/clients
func (h *ClientHandler) GetAll(c *gin.Context) {
	clients, err := h.clientRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, clientResponse(client))
	}

	respondJSON(c, http.StatusOK, response)
}

// Update handles PUT /v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and email are required"})
		return
	}

	client := &domain.Client{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CreditCard: req.CreditCard,
	}

	if err := h.clientRepo.Update(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	_ = h.cache.InvalidateClient(c.Request.Context(), id)

	respondJSON(c, http.StatusOK, clientResponse(client))
}

// Delete handles DELETE /v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := h.clientRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	_ = h.cache.InvalidateClient(c.Request.Context(), id)

	c.Status(http.StatusNoContent)
}

func parseClientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid client id"})
		return 0, false
	}
	return id, true
}
