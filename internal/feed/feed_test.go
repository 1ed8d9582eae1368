package feed

import (
	"fmt"
	"testing"
	"time"

	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// One connection, or each pooled conn would get its own :memory: db
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func makeUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

func makePost(t *testing.T, gdb *gorm.DB, author *models.User, groupID *uint, text string, createdAt time.Time) *models.Post {
	t.Helper()
	p := models.Post{Text: text, AuthorID: author.ID, GroupID: groupID, CreatedAt: createdAt}
	require.NoError(t, gdb.Create(&p).Error)
	return &p
}

func TestGlobalOrdering(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	author := makeUser(t, gdb, "leo")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		makePost(t, gdb, author, nil, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	posts, meta := svc.Global(1)
	require.Len(t, posts, 5)
	assert.Equal(t, 1, meta.TotalPages)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt),
			"post %d is newer than post %d", i, i-1)
	}
	assert.Equal(t, "post 4", posts[0].Text)
	assert.Equal(t, "leo", posts[0].Author.Username)
}

func TestGlobalPagination(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	author := makeUser(t, gdb, "leo")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	total := pagination.PerPage + 3
	for i := 0; i < total; i++ {
		makePost(t, gdb, author, nil, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	posts, meta := svc.Global(1)
	assert.Len(t, posts, pagination.PerPage)
	assert.Equal(t, 2, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	posts, meta = svc.Global(2)
	assert.Len(t, posts, 3)
	assert.True(t, meta.HasPrev)
	assert.False(t, meta.HasNext)

	// Far out of range clamps to the last page
	posts, meta = svc.Global(99)
	assert.Equal(t, 2, meta.Number)
	assert.Len(t, posts, 3)
}

func TestGroupFeed(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	author := makeUser(t, gdb, "leo")

	group := models.Group{Title: "g", Slug: "s", Description: "d"}
	require.NoError(t, gdb.Create(&group).Error)

	makePost(t, gdb, author, &group.ID, "hello", time.Now())
	makePost(t, gdb, author, nil, "ungrouped", time.Now())

	got, posts, _, err := svc.Group("s", 1)
	require.NoError(t, err)
	assert.Equal(t, "g", got.Title)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Text)

	_, _, _, err = svc.Group("other", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileFeed(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	leo := makeUser(t, gdb, "leo")
	mia := makeUser(t, gdb, "mia")

	makePost(t, gdb, leo, nil, "by leo", time.Now())
	makePost(t, gdb, mia, nil, "by mia", time.Now())

	author, following, posts, _, err := svc.Profile("leo", mia.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, leo.ID, author.ID)
	assert.False(t, following)
	require.Len(t, posts, 1)
	assert.Equal(t, "by leo", posts[0].Text)

	require.NoError(t, gdb.Create(&models.Follow{UserID: mia.ID, AuthorID: leo.ID}).Error)
	_, following, _, _, err = svc.Profile("leo", mia.ID, 1)
	require.NoError(t, err)
	assert.True(t, following)

	// Anonymous viewer never follows anyone
	_, following, _, _, err = svc.Profile("leo", 0, 1)
	require.NoError(t, err)
	assert.False(t, following)

	_, _, _, _, err = svc.Profile("nobody", 0, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFollowFeedExclusivity(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	viewer := makeUser(t, gdb, "viewer")
	followed := makeUser(t, gdb, "followed")
	stranger := makeUser(t, gdb, "stranger")

	makePost(t, gdb, followed, nil, "followed post", time.Now())
	makePost(t, gdb, stranger, nil, "stranger post", time.Now())

	follow := models.Follow{UserID: viewer.ID, AuthorID: followed.ID}
	require.NoError(t, gdb.Create(&follow).Error)

	posts, _ := svc.Following(viewer.ID, 1)
	require.Len(t, posts, 1)
	assert.Equal(t, "followed post", posts[0].Text)

	// Removing the follow removes the author's posts on the next read
	require.NoError(t, gdb.Delete(&follow).Error)
	posts, meta := svc.Following(viewer.ID, 1)
	assert.Empty(t, posts)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestIsFollowing(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	a := makeUser(t, gdb, "a")
	b := makeUser(t, gdb, "b")

	assert.False(t, svc.IsFollowing(a.ID, b.ID))
	require.NoError(t, gdb.Create(&models.Follow{UserID: a.ID, AuthorID: b.ID}).Error)
	assert.True(t, svc.IsFollowing(a.ID, b.ID))
	assert.False(t, svc.IsFollowing(b.ID, a.ID), "follow is directed")
}

func TestCommentCounts(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	author := makeUser(t, gdb, "leo")
	post := makePost(t, gdb, author, nil, "commented", time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, gdb.Create(&models.Comment{
			PostID: post.ID, AuthorID: author.ID, Text: "hi",
		}).Error)
	}

	posts, _ := svc.Global(1)
	require.Len(t, posts, 1)
	assert.Equal(t, 3, posts[0].CommentCount)
}
