package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cropcareai/backend/internal/models"
	"github.com/google/uuid"
)

func emptyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func TestToggleLikeUnknownPost(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)

	mock.ExpectQuery(`SELECT \* FROM "posts"`).WillReturnRows(emptyRows())

	_, err := svc.ToggleLike(uuid.New(), models.TargetPost, uuid.New())
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestToggleLikeRejectsUnknownTargetType(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewCommunityService(db)

	_, err := svc.ToggleLike(uuid.New(), "user", uuid.New())
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestToggleLikeLikes(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)
	postID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectQuery(`SELECT \* FROM "likes"`).WillReturnRows(emptyRows())
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "posts" SET "like_count"=like_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	liked, err := svc.ToggleLike(uuid.New(), models.TargetPost, postID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !liked {
		t.Error("liked = false, want true after first toggle")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestToggleLikeUnlikes(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)
	userID := uuid.New()
	postID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "target_type", "target_id"}).
			AddRow(uuid.New().String(), userID.String(), models.TargetPost, postID.String()))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "like_count"=like_count - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	liked, err := svc.ToggleLike(userID, models.TargetPost, postID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if liked {
		t.Error("liked = true, want false after second toggle")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)

	mock.ExpectQuery(`SELECT \* FROM "posts"`).WillReturnRows(emptyRows())

	_, err := svc.AddComment(uuid.New(), uuid.New(), "nice crop", nil)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestAddCommentUnknownParent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)
	postID := uuid.New()
	parentID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectQuery(`SELECT \* FROM "comments"`).WillReturnRows(emptyRows())

	_, err := svc.AddComment(uuid.New(), postID, "reply", &parentID)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("err = %v, want ErrCommentNotFound", err)
	}
}

func TestAddCommentParentOnOtherPost(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)
	postID := uuid.New()
	parentID := uuid.New()
	otherPostID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectQuery(`SELECT \* FROM "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id"}).
			AddRow(parentID.String(), otherPostID.String()))

	_, err := svc.AddComment(uuid.New(), postID, "reply", &parentID)
	if !errors.Is(err, ErrParentMismatch) {
		t.Errorf("err = %v, want ErrParentMismatch", err)
	}
}

func TestAddCommentBumpsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommunityService(db)
	userID := uuid.New()
	postID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "posts" SET "comment_count"=comment_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	comment, err := svc.AddComment(userID, postID, "looking healthy", nil)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.PostID != postID || comment.UserID != userID {
		t.Errorf("comment %+v not bound to post/user", comment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
