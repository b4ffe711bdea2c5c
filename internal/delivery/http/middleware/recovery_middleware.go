package middleware

import (
	"net/http"
	"runtime/debug"

	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/pkg/response"

	"github.com/sirupsen/logrus"
)

// MsgGenericFailure is the only text shown to users when an unexpected
// programming error escapes a handler. Full detail stays in the server log.
const MsgGenericFailure = "I apologize, but I encountered an error. Please try again or rephrase your request."

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.Errorf("Panic handling %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				response.JSON(w, http.StatusInternalServerError, dto.ChatResponse{
					Response: MsgGenericFailure,
					Agent:    entity.ResponderSystem,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
