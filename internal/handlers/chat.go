// internal/handlers/chat.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

const chatPreamble = "You are an agricultural advisor helping smallholder " +
	"farmers and agrovet shop owners in East Africa. Give practical, concise " +
	"advice about crops, livestock, inputs, and farm business."

type ChatHandler struct {
	aiService *services.AIService
}

func NewChatHandler(aiService *services.AIService) *ChatHandler {
	return &ChatHandler{
		aiService: aiService,
	}
}

// POST /chat
//
// General advisory chat. Unlike disease detection there is no fallback text;
// when the model is unreachable the client gets an error envelope.
func (h *ChatHandler) Chat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Message string `json:"message" validate:"required,min=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	reply, err := h.aiService.Chat(c.Request.Context(), req.Message, chatPreamble)
	if err != nil {
		if errors.Is(err, services.ErrAIUnavailable) {
			utils.ErrorResponse(c, 503, "AI_UNAVAILABLE", err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"reply": reply})
}
