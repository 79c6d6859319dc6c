// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sahablabs/sahab-go/internal/model"
)

const postColumns = `p.id, p.title, p.title_ar, p.slug, p.content, p.content_ar,
	p.excerpt, p.excerpt_ar, p.featured_image, p.category, p.tags, p.status, p.views,
	COALESCE(u.full_name, ''), p.created_at, p.updated_at, p.published_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	var rawTags string
	err := row.Scan(&p.ID, &p.Title, &p.TitleAr, &p.Slug, &p.Content, &p.ContentAr,
		&p.Excerpt, &p.ExcerptAr, &p.FeaturedImage, &p.Category, &rawTags, &p.Status, &p.Views,
		&p.AuthorName, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt)
	if err != nil {
		return model.Post{}, err
	}
	p.Tags = model.ParseTags(rawTags)
	return p, nil
}

// GetPost fetches a post by ID.
func (q *Queries) GetPost(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug fetches a post by its unique slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p LEFT JOIN users u ON u.id = p.author_id
		WHERE p.slug = ?`, slug)
	return scanPost(row)
}

// ListPostsParams holds filtering and pagination parameters for ListPosts.
type ListPostsParams struct {
	Status   string
	Category string
	Search   string
	Limit    int64
	Offset   int64
}

func buildPostFilter(arg ListPostsParams) (string, []any) {
	var conds []string
	var args []any

	if arg.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, arg.Status)
	}
	if arg.Category != "" {
		conds = append(conds, "p.category = ?")
		args = append(args, arg.Category)
	}
	if arg.Search != "" {
		conds = append(conds, `(p.title LIKE ? ESCAPE '\' OR p.title_ar LIKE ? ESCAPE '\')`)
		pattern := likePattern(arg.Search)
		args = append(args, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListPosts returns a filtered, paginated page of posts, newest first.
func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	where, args := buildPostFilter(arg)
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p LEFT JOIN users u ON u.id = p.author_id`+where+`
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns the number of posts matching the same filters as ListPosts.
func (q *Queries) CountPosts(ctx context.Context, arg ListPostsParams) (int64, error) {
	where, args := buildPostFilter(arg)
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count)
	return count, err
}

// ListPublishedPosts returns published posts for the public blog, newest
// published first.
func (q *Queries) ListPublishedPosts(ctx context.Context, limit, offset int64) ([]model.Post, error) {
	return q.ListPosts(ctx, ListPostsParams{
		Status: model.PostStatusPublished,
		Limit:  limit,
		Offset: offset,
	})
}

// CreatePostParams holds parameters for CreatePost.
type CreatePostParams struct {
	Title         string
	TitleAr       string
	Slug          string
	Content       string
	ContentAr     string
	Excerpt       string
	ExcerptAr     string
	FeaturedImage sql.NullString
	Category      sql.NullString
	Tags          []string
	Status        string
	AuthorID      sql.NullInt64
	PublishedAt   sql.NullTime
}

// CreatePost inserts a new post and returns it.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, title_ar, slug, content, content_ar, excerpt, excerpt_ar,
			featured_image, category, tags, status, author_id, published_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING id`,
		arg.Title, arg.TitleAr, arg.Slug, arg.Content, arg.ContentAr, arg.Excerpt, arg.ExcerptAr,
		arg.FeaturedImage, arg.Category, model.TagsJSON(arg.Tags), arg.Status, arg.AuthorID,
		arg.PublishedAt).Scan(&id)
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPost(ctx, id)
}

// UpdatePostParams holds parameters for UpdatePost. The slug is immutable
// after creation and intentionally absent.
type UpdatePostParams struct {
	ID            int64
	Title         string
	TitleAr       string
	Content       string
	ContentAr     string
	Excerpt       string
	ExcerptAr     string
	FeaturedImage sql.NullString
	Category      sql.NullString
	Tags          []string
	Status        string
	PublishedAt   sql.NullTime
}

// UpdatePost updates a post and returns the updated row.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, title_ar = ?, content = ?, content_ar = ?, excerpt = ?, excerpt_ar = ?,
		    featured_image = ?, category = ?, tags = ?, status = ?, published_at = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		arg.Title, arg.TitleAr, arg.Content, arg.ContentAr, arg.Excerpt, arg.ExcerptAr,
		arg.FeaturedImage, arg.Category, model.TagsJSON(arg.Tags), arg.Status, arg.PublishedAt,
		arg.ID)
	if err != nil {
		return model.Post{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Post{}, err
	}
	if n == 0 {
		return model.Post{}, sql.ErrNoRows
	}
	return q.GetPost(ctx, arg.ID)
}

// DeletePost removes a post.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SlugExists reports whether a slug is already in use.
func (q *Queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE slug = ?", slug).Scan(&count)
	return count > 0, err
}

// EnsureUniqueSlug returns base if free, otherwise appends -2, -3, ...
// until an unused slug is found.
func (q *Queries) EnsureUniqueSlug(ctx context.Context, base string) (string, error) {
	exists, err := q.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	for i := 2; i < 1000; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := q.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find unique slug for %q", base)
}

// AddPostViews adds buffered view counts to a post in one write.
func (q *Queries) AddPostViews(ctx context.Context, id, delta int64) error {
	_, err := q.db.ExecContext(ctx, "UPDATE posts SET views = views + ? WHERE id = ?", delta, id)
	return err
}

// ListCategories returns the distinct categories in use by any post.
func (q *Queries) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM posts
		WHERE category IS NOT NULL AND category != ''
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
