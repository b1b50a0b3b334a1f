package webhook

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/avolkhin/shopbot/internal/telegram"
)

// Dispatcher — точка входа событий в сессионный слой.
type Dispatcher interface {
	Dispatch(u *telegram.Update)
}

type UpdateHandler struct {
	secret     string
	dispatcher Dispatcher
}

func NewUpdateHandler(secret string, dispatcher Dispatcher) *UpdateHandler {
	return &UpdateHandler{secret: secret, dispatcher: dispatcher}
}

// Handle разбирает событие и синхронно передает его диспетчеру. Кривой JSON
// отвечает 400, чтобы платформа не ретраила заведомо нечитаемое событие.
func (h *UpdateHandler) Handle(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var update telegram.Update
	if bindErr := c.ShouldBindJSON(&update); bindErr != nil {
		_ = c.Error(errors.Wrap(bindErr, "decoding update"))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if update.UserID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if update.ChatID == 0 {
		update.ChatID = update.UserID
	}

	h.dispatcher.Dispatch(&update)
	c.Status(http.StatusOK)
}
