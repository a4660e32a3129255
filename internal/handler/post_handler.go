package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/Mainginick/market-speculation-hub/internal/models"
)

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type PostsGetResponse struct {
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type PostResponse struct {
	PostId    string    `json:"postId"`
	AuthorId  string    `json:"authorId"`
	Caption   string    `json:"caption"`
	ImageUrl  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// formats image
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	// Pagination parameters
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.PostService.GetFeed(r.Context(), limit, (page-1)*limit)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	response := PostsGetResponse{
		Posts: posts,
		Pagination: PaginationResponse{
			Page:  page,
			Limit: limit,
		},
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	// getting the file
	file, handler, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// check formats
	contentType := handler.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF", http.StatusBadRequest)
		return
	}

	caption := r.FormValue("caption")
	if utf8.RuneCountInString(caption) > 500 {
		WriteError(w, "Подпись не должна превышать 500 символов", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), authorID, caption, handler.Filename, file, handler.Size)
	if err != nil {
		WriteError(w, "Ошибка создания поста", http.StatusInternalServerError)
		return
	}

	response := PostResponse{
		PostId:    post.PostID,
		AuthorId:  post.AuthorID,
		Caption:   post.Caption,
		ImageUrl:  post.ImageURL,
		CreatedAt: post.CreatedAt,
	}

	WriteJSON(w, response, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	requesterID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	err := h.PostService.DeletePost(r.Context(), postID, requesterID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "доступ запрещен") {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}
