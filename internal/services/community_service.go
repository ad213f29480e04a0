package services

import (
	"errors"
	"fmt"

	"github.com/cropcareai/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("not the owner of this post")
	ErrParentMismatch  = errors.New("parent comment belongs to a different post")
	ErrInvalidTarget   = errors.New("target_type must be post or comment")
)

// CommunityService handles post, comment and like CRUD.
type CommunityService struct {
	db *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

func (s *CommunityService) ListPosts(page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	offset := (page - 1) * limit

	if err := s.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (s *CommunityService) CreatePost(userID uuid.UUID, title, content string) (*models.Post, error) {
	post := &models.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *CommunityService) GetPost(postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// DeletePost soft-deletes the post; only its author may delete it.
func (s *CommunityService) DeletePost(userID, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Delete(&post).Error
}

// AddComment attaches a comment (optionally threaded under a parent on the
// same post) and bumps the post's comment counter.
func (s *CommunityService) AddComment(userID, postID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.db.Where("id = ?", *parentID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", gorm.Expr("comment_count + 1"))

	return comment, nil
}

func (s *CommunityService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var post models.Post
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// ToggleLike records or removes a like. The (user, target) unique row gives
// natural dedup; the denormalized counter on the target moves with it.
// Returns whether the target is liked after the call.
func (s *CommunityService) ToggleLike(userID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	counter, err := s.checkTarget(targetType, targetID)
	if err != nil {
		return false, err
	}

	var existing models.Like
	err = s.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return true, err
		}
		counter.Update("like_count", gorm.Expr("like_count - 1"))
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &models.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := s.db.Create(like).Error; err != nil {
		return false, err
	}
	counter.Update("like_count", gorm.Expr("like_count + 1"))
	return true, nil
}

// checkTarget verifies the like/report target exists and returns a query
// scoped to its counter row.
func (s *CommunityService) checkTarget(targetType string, targetID uuid.UUID) (*gorm.DB, error) {
	switch targetType {
	case models.TargetPost:
		var post models.Post
		if err := s.db.Where("id = ?", targetID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		return s.db.Model(&models.Post{}).Where("id = ?", targetID), nil
	case models.TargetComment:
		var comment models.Comment
		if err := s.db.Where("id = ?", targetID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		return s.db.Model(&models.Comment{}).Where("id = ?", targetID), nil
	}
	return nil, ErrInvalidTarget
}
