package handler

import (
	"net/http"

	"github.com/vfg2006/petshop-admin-api/internal/usecases/conversations"
)

func ListConversations(service conversations.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.List(r.Context())
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
