package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/services"
)

type PurchaseHandler struct {
  log             *logger.Logger
  purchaseService services.PurchaseService
}

func NewPurchaseHandler(log *logger.Logger, purchaseService services.PurchaseService) *PurchaseHandler {
  handlerLog := log.With("handler", "PurchaseHandler")
  return &PurchaseHandler{log: handlerLog, purchaseService: purchaseService}
}

func (ph *PurchaseHandler) GetAllPurchases(c *gin.Context) {
  purchases, err := ph.purchaseService.GetAllPurchases(c.Request.Context())
  if err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func (ph *PurchaseHandler) CreatePurchase(c *gin.Context) {
  // The payload is bound as a raw map so validation can tell a missing key
  // from a mistyped value.
  var payload map[string]interface{}
  if err := c.ShouldBindJSON(&payload); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  purchase, err := ph.purchaseService.CreatePurchase(c.Request.Context(), payload)
  if err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

func (ph *PurchaseHandler) GetPurchaseByID(c *gin.Context) {
  purchaseID, ok := ph.parseIDParam(c, "id")
  if !ok {
    return
  }
  purchase, err := ph.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
  if err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

func (ph *PurchaseHandler) UpdatePurchaseByID(c *gin.Context) {
  purchaseID, ok := ph.parseIDParam(c, "id")
  if !ok {
    return
  }
  var input services.UpdatePurchaseInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  purchase, err := ph.purchaseService.UpdatePurchaseByID(c.Request.Context(), purchaseID, input)
  if err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

func (ph *PurchaseHandler) DeletePurchaseByID(c *gin.Context) {
  purchaseID, ok := ph.parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := ph.purchaseService.DeletePurchaseByID(c.Request.Context(), purchaseID); err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted successfully"})
}

func (ph *PurchaseHandler) GetPurchasesByClientID(c *gin.Context) {
  clientID, ok := ph.parseIDParam(c, "clientId")
  if !ok {
    return
  }
  purchases, err := ph.purchaseService.GetPurchasesByClientID(c.Request.Context(), clientID)
  if err != nil {
    RespondServiceError(c, ph.log, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func (ph *PurchaseHandler) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  raw := c.Param(name)
  if raw == "" {
    RespondError(c, http.StatusBadRequest, "missing_field", errors.New("ID is required"))
    return uuid.Nil, false
  }
  id, err := uuid.Parse(raw)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("ID is not a valid id"))
    return uuid.Nil, false
  }
  return id, true
}
