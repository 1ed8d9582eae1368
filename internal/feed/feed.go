// Package feed builds the ordered post lists shown to a viewer: the global
// index, a single group, a single author's profile, and the follow feed.
// Every feed is ordered by descending creation time and paginated with the
// shared page size.
package feed

import (
	"yatube/internal/models"
	"yatube/internal/pagination"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) posts() *gorm.DB {
	return s.db.Model(&models.Post{}).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC")
}

func (s *Service) paginate(q *gorm.DB, page int) ([]models.Post, pagination.Meta) {
	var total int64
	q.Session(&gorm.Session{}).Count(&total)

	offset, meta := pagination.Window(int(total), page)

	var posts []models.Post
	q.Limit(pagination.PerPage).Offset(offset).Find(&posts)
	s.fillCommentCounts(posts)
	return posts, meta
}

// Global returns the page of all posts, newest first.
func (s *Service) Global(page int) ([]models.Post, pagination.Meta) {
	return s.paginate(s.posts(), page)
}

// Group resolves a group by slug and returns its posts. Unknown slugs
// surface gorm.ErrRecordNotFound.
func (s *Service) Group(slug string, page int) (*models.Group, []models.Post, pagination.Meta, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, nil, pagination.Meta{}, err
	}
	posts, meta := s.paginate(s.posts().Where("group_id = ?", group.ID), page)
	return &group, posts, meta, nil
}

// Profile resolves an author by username and returns their posts plus
// whether the viewer already follows them. viewerID 0 means anonymous.
func (s *Service) Profile(username string, viewerID uint, page int) (*models.User, bool, []models.Post, pagination.Meta, error) {
	var author models.User
	if err := s.db.Where("username = ?", username).First(&author).Error; err != nil {
		return nil, false, nil, pagination.Meta{}, err
	}
	posts, meta := s.paginate(s.posts().Where("author_id = ?", author.ID), page)
	return &author, s.IsFollowing(viewerID, author.ID), posts, meta, nil
}

// Following returns posts by every author the viewer follows. The caller
// must have checked authentication already; viewerID 0 yields nothing.
func (s *Service) Following(viewerID uint, page int) ([]models.Post, pagination.Meta) {
	q := s.posts().
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", viewerID)
	return s.paginate(q, page)
}

// IsFollowing reports whether a Follow row (viewer, author) exists.
func (s *Service) IsFollowing(viewerID, authorID uint) bool {
	if viewerID == 0 {
		return false
	}
	var count int64
	s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", viewerID, authorID).
		Count(&count)
	return count > 0
}

// fillCommentCounts batch-fills CommentCount for list views.
func (s *Service) fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
