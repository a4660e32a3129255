package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/Mainginick/market-speculation-hub/internal/models"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
	"github.com/Mainginick/market-speculation-hub/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID, caption, fileName string, file io.Reader, size int64) (*models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetFeed(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID, caption, fileName string, file io.Reader, size int64) (*models.Post, error) {
	objectName, imageURL, err := p.storage.UploadImage(ctx, authorID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	post := &models.Post{
		AuthorID: authorID,
		Caption:  caption,
		ImageURL: imageURL,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		// компенсация: картинка без записи в БД никому не нужна
		p.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения поста в БД: %w", err)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return fmt.Errorf("доступ запрещен: пост принадлежит другому пользователю")
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if objectName := objectNameFromURL(post.ImageURL); objectName != "" {
		if err := p.storage.DeleteImage(ctx, objectName); err != nil {
			fmt.Printf("Предупреждение: не удалось удалить изображение: %v\n", err)
		}
	}

	return nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetFeed(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return p.postRepo.GetFeed(ctx, limit, offset)
}

func (p *postService) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	return p.postRepo.GetByAuthorID(ctx, authorID)
}

// objectNameFromURL вырезает имя объекта из сохранённого URL изображения:
// для локального хранилища это /uploads/<file>, для MinIO - полный URL
// вида http(s)://endpoint/bucket/object/path
func objectNameFromURL(imageURL string) string {
	if strings.HasPrefix(imageURL, "/uploads/") {
		return strings.TrimPrefix(imageURL, "/uploads/")
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return path.Base(imageURL)
	}

	// первый сегмент пути - бакет, остальное - имя объекта
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) == 2 {
		return parts[1]
	}

	return path.Base(imageURL)
}
