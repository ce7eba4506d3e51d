package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"gorm.io/gorm"
)

type postFixture struct {
	db      *gorm.DB
	service PostService
	gateway *stubGateway
	user    models.User
}

func newPostFixture(t *testing.T) postFixture {
	t.Helper()

	db := openTestDB(t)
	user := models.User{Username: "hocsinh", Email: "hocsinh@example.com", Password: "x", Name: "Học Sinh"}
	require.NoError(t, db.Create(&user).Error)

	gateway := &stubGateway{answer: "Đáp án là x = 1."}
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		stubProvider{model: "deepseek/deepseek-r1-distill-qwen-14b:free"},
		gateway,
		testValidator(),
		testLogger(),
	)

	return postFixture{db: db, service: svc, gateway: gateway, user: user}
}

func TestPostCreateGetsAIReply(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.service.Create(context.Background(), f.user.ID, dto.PostCreateRequest{
		Title:   "Giải phương trình",
		Content: "x + 1 = 2 thì x bằng bao nhiêu?",
	})
	require.NoError(t, err)

	var comments []models.Comment
	require.NoError(t, f.db.Where("post_id = ?", post.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	require.True(t, comments[0].IsAIResponse)
	require.Nil(t, comments[0].UserID)
	require.Equal(t, "Đáp án là x = 1.", comments[0].Content)

	// The prompt combines title and body.
	require.Len(t, f.gateway.requests, 1)
	prompt := f.gateway.requests[0].messages[1].Content
	require.True(t, strings.Contains(prompt, "Giải phương trình"))
	require.True(t, strings.Contains(prompt, "x + 1 = 2"))
}

func TestPostCreateSkipsAIReplyForImagePost(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.service.Create(context.Background(), f.user.ID, dto.PostCreateRequest{
		Content:  "Mọi người xem giúp bài này",
		ImageURL: "https://cdn.limva.vn/uploads/bai-tap.png",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.Zero(t, count)
	require.Empty(t, f.gateway.requests)
}

func TestPostCreateSurvivesAIFailure(t *testing.T) {
	f := newPostFixture(t)
	failing := NewPostService(
		repository.NewPostRepository(f.db),
		repository.NewCommentRepository(f.db),
		stubProvider{err: ErrAIUnavailable},
		f.gateway,
		testValidator(),
		testLogger(),
	)

	post, err := failing.Create(context.Background(), f.user.ID, dto.PostCreateRequest{
		Content: "Câu hỏi không có trợ lý",
	})
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestPostCreateSanitizesMarkup(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.service.Create(context.Background(), f.user.ID, dto.PostCreateRequest{
		Title:   `<script>alert("x")</script>Hỏi bài`,
		Content: `Nội dung <b>quan trọng</b><script>steal()</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "Hỏi bài", post.Title)
	require.False(t, strings.Contains(post.Content, "<script>"))
	require.True(t, strings.Contains(post.Content, "<b>quan trọng</b>"))
}

func TestPostDeleteAuthorization(t *testing.T) {
	f := newPostFixture(t)
	other := models.User{Username: "khac", Email: "khac@example.com", Password: "x", Name: "Người Khác"}
	require.NoError(t, f.db.Create(&other).Error)

	post, err := f.service.Create(context.Background(), f.user.ID, dto.PostCreateRequest{Content: "Bài của tôi"})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), other.ID, false, post.ID)
	require.ErrorIs(t, err, ErrPostForbidden)

	// Admins may remove any post.
	require.NoError(t, f.service.Delete(context.Background(), other.ID, true, post.ID))

	err = f.service.Delete(context.Background(), f.user.ID, false, post.ID)
	require.ErrorIs(t, err, ErrPostNotFound)
}
