package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/andrelobo/zoe-backend/internal/logger"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation and not-found failures carry their specific reason to the
// caller; anything else is a store/infrastructure failure reported
// generically, with the detail kept in server logs only.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error) {
  switch {
  case errors.Is(err, errs.ErrMissingField):
    RespondError(c, http.StatusBadRequest, "missing_field", err)
  case errors.Is(err, errs.ErrTypeMismatch):
    RespondError(c, http.StatusBadRequest, "type_mismatch", err)
  case errors.Is(err, errs.ErrInvalidDate):
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
  case errors.Is(err, errs.ErrDuplicatePurchase):
    RespondError(c, http.StatusBadRequest, "duplicate_purchase", err)
  case errors.Is(err, errs.ErrInvalidArgument):
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
  case errors.Is(err, errs.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, errs.ErrUnauthorized):
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
  default:
    if log != nil {
      log.Error("internal error", "error", err)
    }
    RespondError(c, http.StatusInternalServerError, "internal", errors.New("Internal server error"))
  }
}
