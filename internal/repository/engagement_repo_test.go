package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

func TestLikeRepositoryScopesPostAndCommentTargets(t *testing.T) {
	db := openRepositoryDB(t, &models.Like{})
	repo := NewLikeRepository(db)

	postID := stringRef("11111111-1111-4111-8111-111111111111")
	commentID := stringRef("22222222-2222-4222-8222-222222222222")

	require.NoError(t, repo.Create(context.Background(), &models.Like{UserID: "user-1", PostID: postID}))
	require.NoError(t, repo.Create(context.Background(), &models.Like{UserID: "user-1", CommentID: commentID}))
	require.NoError(t, repo.Create(context.Background(), &models.Like{UserID: "user-2", PostID: postID}))

	postLikes, err := repo.Count(context.Background(), postID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), postLikes)

	commentLikes, err := repo.Count(context.Background(), nil, commentID)
	require.NoError(t, err)
	require.Equal(t, int64(1), commentLikes)

	// A like on the post must not satisfy a lookup for the comment.
	like, err := repo.Find(context.Background(), "user-2", nil, commentID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	like, err = repo.Find(context.Background(), "user-2", postID, nil)
	require.NoError(t, err)
	require.Equal(t, "user-2", like.UserID)

	require.NoError(t, repo.Delete(context.Background(), like.ID))
	postLikes, err = repo.Count(context.Background(), postID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), postLikes)
}

func TestRatingRepositoryAverageForComment(t *testing.T) {
	db := openRepositoryDB(t, &models.Rating{})
	repo := NewRatingRepository(db)

	commentID := stringRef("22222222-2222-4222-8222-222222222222")

	average, err := repo.AverageForComment(context.Background(), *commentID)
	require.NoError(t, err)
	require.Zero(t, average)

	require.NoError(t, repo.Create(context.Background(), &models.Rating{UserID: "user-1", CommentID: commentID, Rating: 4}))
	require.NoError(t, repo.Create(context.Background(), &models.Rating{UserID: "user-2", CommentID: commentID, Rating: 5}))

	average, err = repo.AverageForComment(context.Background(), *commentID)
	require.NoError(t, err)
	require.InDelta(t, 4.5, average, 0.001)
}
