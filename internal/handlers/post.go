package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"yatube/internal/access"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/feed"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/store"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// indexCacheKey is the single fixed key for the rendered index page. The
// cached slot covers the unpaginated request only.
const indexCacheKey = "posts:index"

type PostHandler struct {
	feed   *feed.Service
	store  *store.Store
	cache  *cache.PageCache
	images *services.ImageStore
}

func NewPostHandler(pageCache *cache.PageCache) *PostHandler {
	return &PostHandler{
		feed:   feed.NewService(db.DB),
		store:  store.NewStore(db.DB),
		cache:  pageCache,
		images: services.NewImageStore("./web/uploads/posts", "/media/posts"),
	}
}

func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if n := utils.StringToInt(p); n != 0 {
			page = n
		}
	}
	return page
}

// bodyCapture tees the rendered response into a buffer so the index
// handler can cache the exact bytes sent to the client.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Index is the global feed. The unpaginated page is served from the
// response cache; entries expire on the TTL alone, never on writes, so a
// just-deleted post may linger until expiry.
func (h *PostHandler) Index(c *gin.Context) {
	page := pageParam(c)
	cacheable := page <= 1

	if cacheable {
		if body, ok := h.cache.Get(indexCacheKey); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			return
		}
	}

	posts, meta := h.feed.Global(page)

	if !cacheable {
		Render(c, http.StatusOK, "posts/index.html", gin.H{
			"Title":  "Latest posts",
			"Posts":  posts,
			"Paging": meta,
		})
		return
	}

	orig := c.Writer
	capture := &bodyCapture{ResponseWriter: orig}
	c.Writer = capture
	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title":  "Latest posts",
		"Posts":  posts,
		"Paging": meta,
	})
	c.Writer = orig
	if capture.Status() == http.StatusOK {
		h.cache.Set(indexCacheKey, capture.buf.Bytes())
	}
}

// GroupPosts lists one group's feed, looked up by slug.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	group, posts, meta, err := h.feed.Group(slug, pageParam(c))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Group not found")
		return
	}

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title":  group.Title,
		"Group":  group,
		"Posts":  posts,
		"Paging": meta,
	})
}

// Profile lists an author's feed plus whether the viewer follows them.
func (h *PostHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	viewerID := uint(0)
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
	}

	author, following, posts, meta, err := h.feed.Profile(username, viewerID, pageParam(c))
	if err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Following": following,
		"Posts":     posts,
		"Paging":    meta,
	})
}

// FollowIndex lists posts by every author the current user follows.
func (h *PostHandler) FollowIndex(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	posts, meta := h.feed.Following(user.ID, pageParam(c))

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title":  "Your feed",
		"Posts":  posts,
		"Paging": meta,
	})
}

func (h *PostHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	var post models.Post
	err := db.DB.Preload("Author").Preload("Group").First(&post, c.Param("id")).Error
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return nil, false
	}
	return &post, true
}

func (h *PostHandler) renderDetail(c *gin.Context, post *models.Post, code int, commentError string) {
	var comments []models.Comment
	db.DB.Preload("Author").Where("post_id = ?", post.ID).Order("created_at ASC").Find(&comments)

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{Comment: com, TextHTML: utils.RenderMarkdown(com.Text)}
	}

	following := false
	user := middleware.CurrentUser(c)
	if user != nil {
		following = h.feed.IsFollowing(user.ID, post.AuthorID)
	}

	canModify := access.CanModifyPost(user, post)

	Render(c, code, "posts/detail.html", gin.H{
		"Title":        post.Text,
		"Post":         post,
		"PostText":     utils.RenderMarkdown(post.Text),
		"Comments":     rendered,
		"Following":    following,
		"CanModify":    canModify,
		"CommentError": commentError,
	})
}

// Detail shows one post with its comments and the comment form.
func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	h.renderDetail(c, post, http.StatusOK, "")
}

func (h *PostHandler) groupOptions() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

// parseGroupID maps the form's group select to a nullable group reference.
func (h *PostHandler) parseGroupID(c *gin.Context) *uint {
	idStr := c.PostForm("group")
	if idStr == "" {
		return nil
	}
	var group models.Group
	if err := db.DB.First(&group, utils.StringToInt(idStr)).Error; err != nil {
		return nil
	}
	return &group.ID
}

// saveImage stores an optional uploaded image, returning its public path.
// A request without a file is not an error.
func (h *PostHandler) saveImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	defer file.Close()
	return h.images.Save(file, header)
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "posts/create.html", gin.H{
		"Title":  "New post",
		"Groups": h.groupOptions(),
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	text := c.PostForm("text")
	if text == "" {
		Render(c, http.StatusBadRequest, "posts/create.html", gin.H{
			"Title":  "New post",
			"Error":  "Text must not be empty",
			"Groups": h.groupOptions(),
		})
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		Render(c, http.StatusBadRequest, "posts/create.html", gin.H{
			"Title":  "New post",
			"Error":  "Could not save the image",
			"Groups": h.groupOptions(),
		})
		return
	}

	post := models.Post{
		Text:     text,
		AuthorID: user.ID,
		GroupID:  h.parseGroupID(c),
		Image:    image,
	}
	if err := h.store.CreatePost(&post); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !access.CanModifyPost(user, post) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
		return
	}

	Render(c, http.StatusOK, "posts/edit.html", gin.H{
		"Title":         "Edit post",
		"Post":          post,
		"Groups":        h.groupOptions(),
		"SelectedGroup": groupIDValue(post),
	})
}

// groupIDValue flattens the nullable group reference for the edit form's
// select box; 0 means no group.
func groupIDValue(post *models.Post) uint {
	if post.GroupID == nil {
		return 0
	}
	return *post.GroupID
}

func (h *PostHandler) Edit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !access.CanModifyPost(user, post) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
		return
	}

	text := c.PostForm("text")
	if text == "" {
		Render(c, http.StatusBadRequest, "posts/edit.html", gin.H{
			"Title":         "Edit post",
			"Error":         "Text must not be empty",
			"Post":          post,
			"Groups":        h.groupOptions(),
			"SelectedGroup": groupIDValue(post),
		})
		return
	}

	post.Text = text
	post.GroupID = h.parseGroupID(c)
	if image, err := h.saveImage(c); err == nil && image != "" {
		post.Image = image
	}

	if err := h.store.UpdatePost(post); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !access.CanModifyPost(user, post) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
		return
	}

	if err := h.store.DeletePost(post); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the post")
		return
	}

	// The cached index is left alone on purpose; it expires on its own.
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	text := c.PostForm("text")
	if text == "" {
		h.renderDetail(c, post, http.StatusBadRequest, "Comment must not be empty")
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := h.store.CreateComment(&comment); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the comment")
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("cid")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Comment not found")
		return
	}

	if !access.CanDeleteComment(user, &comment, post) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
		return
	}

	if err := h.store.DeleteComment(&comment); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the comment")
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+c.Param("id"))
}
