package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Mainginick/market-speculation-hub/internal/models"
)

type ProfileResponse struct {
	User  UserResponse  `json:"user"`
	Posts []models.Post `json:"posts"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// get user by id
	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	response := UserResponse{
		UserId:   user.UserID,
		Username: user.Username,
	}

	WriteJSON(w, response, http.StatusOK)
}

// GetUserPosts - профиль пользователя: его посты, новые сверху
func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.UserRepo.GetUserByUsername(r.Context(), username)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	posts, err := h.PostService.GetByAuthorID(r.Context(), user.UserID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	response := ProfileResponse{
		User: UserResponse{
			UserId:   user.UserID,
			Username: user.Username,
		},
		Posts: posts,
	}

	WriteJSON(w, response, http.StatusOK)
}
