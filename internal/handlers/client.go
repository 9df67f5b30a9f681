package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/services"
  "github.com/andrelobo/zoe-backend/internal/types"
)

type ClientHandler struct {
  log           *logger.Logger
  clientService services.ClientService
}

func NewClientHandler(log *logger.Logger, clientService services.ClientService) *ClientHandler {
  handlerLog := log.With("handler", "ClientHandler")
  return &ClientHandler{log: handlerLog, clientService: clientService}
}

func (ch *ClientHandler) CreateClient(c *gin.Context) {
  var req struct {
    Name    string `json:"name"`
    Email   string `json:"email"`
    Phone   string `json:"phone"`
    Address string `json:"address"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  client := types.Client{
    Name:    req.Name,
    Email:   req.Email,
    Phone:   req.Phone,
    Address: req.Address,
  }
  created, err := ch.clientService.CreateClient(c.Request.Context(), &client)
  if err != nil {
    RespondServiceError(c, ch.log, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"client": created})
}

func (ch *ClientHandler) GetAllClients(c *gin.Context) {
  clients, err := ch.clientService.GetAllClients(c.Request.Context())
  if err != nil {
    RespondServiceError(c, ch.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (ch *ClientHandler) GetClientByID(c *gin.Context) {
  raw := c.Param("clientId")
  if raw == "" {
    RespondError(c, http.StatusBadRequest, "missing_field", errors.New("Client ID is required"))
    return
  }
  clientID, err := uuid.Parse(raw)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("Client ID is not a valid id"))
    return
  }
  client, sErr := ch.clientService.GetClientByID(c.Request.Context(), clientID)
  if sErr != nil {
    RespondServiceError(c, ch.log, sErr)
    return
  }
  c.JSON(http.StatusOK, gin.H{"client": client})
}
