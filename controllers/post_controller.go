package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/middleware"
	"github.com/iamatos3/roamer-api/models"
	"github.com/iamatos3/roamer-api/utils"
)

// PostController manages CRUD operations for travel review posts.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// updatableFields are the only post columns a client may touch through
// Update. Everything else, owner above all, is server-controlled.
var updatableFields = map[string]bool{
	"title":    true,
	"location": true,
	"content":  true,
	"rating":   true,
}

// Index returns every post, newest first. Listing is deliberately not scoped
// to the principal: any authenticated user may browse all reviews.
func (p *PostController) Index(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:posts:list"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.Preload("Owner").Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	payload := gin.H{"posts": posts}
	if b, err := json.Marshal(payload); err == nil {
		utils.CacheSetBytes("cache:posts:list", b, 0)
	}
	ctx.JSON(http.StatusOK, payload)
}

// Show returns a single post by identifier.
func (p *PostController) Show(ctx *gin.Context) {
	postID := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:posts:detail:" + postID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	err := p.db.Preload("Owner").First(&post, "id = ?", postID).Error
	if err := utils.EnsureFound(err, "post", postID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	payload := gin.H{"post": post}
	if b, err := json.Marshal(payload); err == nil {
		utils.CacheSetBytes("cache:posts:detail:"+postID, b, 0)
	}
	ctx.JSON(http.StatusOK, payload)
}

// Create persists a new post owned by the authenticated principal. Any
// client-supplied owner value is discarded.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Post struct {
			Title    string `json:"title"`
			Location string `json:"location"`
			Content  string `json:"content"`
			Rating   *int   `json:"rating"`
		} `json:"post"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, utils.NewBadRequestError("invalid request payload"))
		return
	}

	userID, ok := principalID(ctx)
	if !ok {
		utils.RespondError(ctx, utils.NewUnauthorizedError("unauthorized"))
		return
	}

	rating := -1
	if req.Post.Rating != nil {
		rating = *req.Post.Rating
	}

	post := models.Post{
		Title:    utils.Sanitize(strings.TrimSpace(req.Post.Title)),
		Location: utils.Sanitize(strings.TrimSpace(req.Post.Location)),
		Content:  utils.Sanitize(req.Post.Content),
		Rating:   rating,
		OwnerID:  userID,
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")

	// Reload with the owner association for the response body.
	_ = p.db.Preload("Owner").First(&post, post.ID).Error
	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// Update applies a partial update to a post the principal owns. The owner
// field is stripped unconditionally and blank fields are dropped, so only
// fields the client meaningfully supplied are persisted.
func (p *PostController) Update(ctx *gin.Context) {
	var req struct {
		Post map[string]interface{} `json:"post"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Post == nil {
		utils.RespondError(ctx, utils.NewBadRequestError("invalid request payload"))
		return
	}

	// Ownership is immutable: drop any client-supplied owner before anything
	// else looks at the payload.
	delete(req.Post, "owner")
	updates := utils.RemoveBlankFields(req.Post)

	postID := ctx.Param("id")
	var post models.Post
	err := p.db.First(&post, "id = ?", postID).Error
	if err := utils.EnsureFound(err, "post", postID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	userID, ok := principalID(ctx)
	if !ok {
		utils.RespondError(ctx, utils.NewUnauthorizedError("unauthorized"))
		return
	}
	if err := utils.EnsureOwnership(userID, post.OwnerID, "post"); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	merged, mergeErr := mergePostUpdates(&post, updates)
	if mergeErr != nil {
		utils.RespondError(ctx, mergeErr)
		return
	}
	if len(merged) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}
	if err := post.Validate(); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := p.db.Model(&post).Updates(merged).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.Status(http.StatusNoContent)
}

// Destroy deletes a post the principal owns.
func (p *PostController) Destroy(ctx *gin.Context) {
	postID := ctx.Param("id")
	var post models.Post
	err := p.db.First(&post, "id = ?", postID).Error
	if err := utils.EnsureFound(err, "post", postID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	userID, ok := principalID(ctx)
	if !ok {
		utils.RespondError(ctx, utils.NewUnauthorizedError("unauthorized"))
		return
	}
	if err := utils.EnsureOwnership(userID, post.OwnerID, "post"); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.Status(http.StatusNoContent)
}

// mergePostUpdates applies the blank-filtered payload onto the fetched post,
// whitelisting updatable fields, and returns the column set to persist.
func mergePostUpdates(post *models.Post, updates map[string]interface{}) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		if !updatableFields[field] {
			continue
		}
		switch field {
		case "rating":
			n, ok := value.(float64)
			if !ok || n != float64(int(n)) {
				return nil, utils.NewValidationError(map[string]string{"rating": "rating must be an integer"})
			}
			post.Rating = int(n)
			merged["rating"] = int(n)
		default:
			s, ok := value.(string)
			if !ok {
				return nil, utils.NewValidationError(map[string]string{field: field + " must be a string"})
			}
			s = utils.Sanitize(s)
			switch field {
			case "title":
				post.Title = strings.TrimSpace(s)
				merged["title"] = post.Title
			case "location":
				post.Location = strings.TrimSpace(s)
				merged["location"] = post.Location
			case "content":
				post.Content = s
				merged["content"] = s
			}
		}
	}
	return merged, nil
}

func principalID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
