package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"atfplatform/backend/cache"
	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/tree"
)

const categoriesPerPage = 20

type categoriesRequest struct {
	ParentID *int64 `json:"parent_id"`
	Page     int    `json:"page"`
}

type searchRequest struct {
	Q               string `json:"q"`
	IncludeChildren bool   `json:"include_children"`
}

// Categories serves POST /api/code-categories: a page of root chapters when
// parent_id is absent, otherwise the children of that node. A node without
// children answers 404, which the browser reads as "this is a leaf".
func Categories() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoriesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		if req.Page < 1 {
			req.Page = 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if req.ParentID == nil || *req.ParentID == 0 {
			rootCategories(c, ctx, req.Page)
			return
		}

		cacheKey := fmt.Sprintf("categories:children:%d", *req.ParentID)
		var nodes []*tree.Node
		if !cache.GetJSON(ctx, cacheKey, &nodes) {
			var err error
			nodes, err = fetchChildren(ctx, *req.ParentID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			cache.SetJSON(ctx, cacheKey, nodes, 10*time.Minute)
		}
		if len(nodes) == 0 {
			emptyData(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": nodes})
	}
}

func rootCategories(c *gin.Context, ctx context.Context, page int) {
	cacheKey := fmt.Sprintf("categories:roots:%d", page)
	var cached struct {
		Nodes []*tree.Node `json:"nodes"`
		Total int          `json:"total"`
	}
	if !cache.GetJSON(ctx, cacheKey, &cached) {
		if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id IS NULL`).Scan(&cached.Total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		rows, err := database.Pool.Query(ctx, `SELECT c.id, c.code, c.name_az, c.name_en, c.name_ru,
NOT EXISTS(SELECT 1 FROM categories ch WHERE ch.parent_id = c.id) AS leaf
FROM categories c WHERE c.parent_id IS NULL ORDER BY c.code LIMIT $1 OFFSET $2`,
			categoriesPerPage, (page-1)*categoriesPerPage)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		cached.Nodes, err = scanNodes(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		cache.SetJSON(ctx, cacheKey, cached, 10*time.Minute)
	}
	if len(cached.Nodes) == 0 {
		emptyData(c)
		return
	}
	lastPage := (cached.Total + categoriesPerPage - 1) / categoriesPerPage
	c.JSON(http.StatusOK, gin.H{
		"data": cached.Nodes,
		"meta": gin.H{"page": page, "last_page": lastPage, "total": cached.Total},
	})
}

func fetchChildren(ctx context.Context, parentID int64) ([]*tree.Node, error) {
	rows, err := database.Pool.Query(ctx, `SELECT c.id, c.code, c.name_az, c.name_en, c.name_ru,
NOT EXISTS(SELECT 1 FROM categories ch WHERE ch.parent_id = c.id) AS leaf
FROM categories c WHERE c.parent_id = $1 ORDER BY c.code`, parentID)
	if err != nil {
		return nil, err
	}
	return scanNodes(rows)
}

func scanNodes(rows pgx.Rows) ([]*tree.Node, error) {
	defer rows.Close()
	nodes := []*tree.Node{}
	for rows.Next() {
		var n tree.Node
		var az, en, ru string
		if err := rows.Scan(&n.ID, &n.Code, &az, &en, &ru, &n.Leaf); err != nil {
			return nil, err
		}
		n.Name = models.L(az, en, ru)
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}

func scanParameters(rows pgx.Rows) ([]models.Parameter, error) {
	defer rows.Close()
	list := []models.Parameter{}
	for rows.Next() {
		var p models.Parameter
		var az, en, ru string
		if err := rows.Scan(&p.ID, &az, &en, &ru, &p.Value); err != nil {
			return nil, err
		}
		p.Name = models.L(az, en, ru)
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanRestrictions(rows pgx.Rows) ([]models.Restriction, error) {
	defer rows.Close()
	list := []models.Restriction{}
	for rows.Next() {
		var r models.Restriction
		var az, en, ru string
		if err := rows.Scan(&r.ID, &az, &en, &ru); err != nil {
			return nil, err
		}
		r.Text = models.L(az, en, ru)
		list = append(list, r)
	}
	return list, rows.Err()
}

func scanTaxes(rows pgx.Rows) ([]models.Tax, error) {
	defer rows.Close()
	list := []models.Tax{}
	for rows.Next() {
		var tx models.Tax
		var az, en, ru string
		if err := rows.Scan(&tx.ID, &az, &en, &ru, &tx.Rate); err != nil {
			return nil, err
		}
		tx.Name = models.L(az, en, ru)
		list = append(list, tx)
	}
	return list, rows.Err()
}

func scanDeclarations(rows pgx.Rows) ([]models.Declaration, error) {
	defer rows.Close()
	list := []models.Declaration{}
	for rows.Next() {
		var dec models.Declaration
		var az, en, ru string
		if err := rows.Scan(&dec.ID, &az, &en, &ru); err != nil {
			return nil, err
		}
		dec.Title = models.L(az, en, ru)
		list = append(list, dec)
	}
	return list, rows.Err()
}

func scanDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()
	list := []models.Document{}
	for rows.Next() {
		var doc models.Document
		var az, en, ru string
		if err := rows.Scan(&doc.ID, &az, &en, &ru, &doc.URL); err != nil {
			return nil, err
		}
		doc.Title = models.L(az, en, ru)
		list = append(list, doc)
	}
	return list, rows.Err()
}

// SearchCategories serves POST /api/code-categories-search. The returned
// partial tree contains every match plus its ancestors; the flattened rows
// arrive pre-expanded so matches are visible without extra clicks.
func SearchCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req searchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		q := strings.TrimSpace(req.Q)
		if q == "" {
			emptyData(c)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cacheKey := fmt.Sprintf("categories:search:%s:%t", q, req.IncludeChildren)
		var result searchResult
		if !cache.GetJSON(ctx, cacheKey, &result) {
			var err error
			result, err = searchTree(ctx, q, req.IncludeChildren)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			cache.SetJSON(ctx, cacheKey, result, 5*time.Minute)
		}
		if len(result.Tree) == 0 {
			emptyData(c)
			return
		}
		state := tree.NewState()
		tree.MarkMatches(result.Tree, q, state)
		c.JSON(http.StatusOK, gin.H{"data": result.Tree, "rows": tree.Flatten(result.Tree, state)})
	}
}

type searchResult struct {
	Tree []*tree.Node `json:"tree"`
}

// searchTree collects matching categories, their ancestor chains and
// (optionally) their direct children in one recursive query, then assembles
// the forest client-side of the database.
func searchTree(ctx context.Context, q string, includeChildren bool) (searchResult, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	rows, err := database.Pool.Query(ctx, `WITH RECURSIVE matches AS (
    SELECT c.id, c.parent_id, c.code, c.name_az, c.name_en, c.name_ru
    FROM categories c
    WHERE c.code LIKE $1 || '%'
       OR lower(c.name_az) LIKE $2 OR lower(c.name_en) LIKE $2 OR lower(c.name_ru) LIKE $2
), ancestors AS (
    SELECT c.id, c.parent_id, c.code, c.name_az, c.name_en, c.name_ru
    FROM categories c JOIN matches m ON m.parent_id = c.id
    UNION
    SELECT c.id, c.parent_id, c.code, c.name_az, c.name_en, c.name_ru
    FROM categories c JOIN ancestors a ON a.parent_id = c.id
), children AS (
    SELECT c.id, c.parent_id, c.code, c.name_az, c.name_en, c.name_ru
    FROM categories c JOIN matches m ON c.parent_id = m.id
    WHERE $3
)
SELECT DISTINCT id, parent_id, code, name_az, name_en, name_ru FROM (
    SELECT * FROM matches
    UNION SELECT * FROM ancestors
    UNION SELECT * FROM children
) t ORDER BY code`, q, pattern, includeChildren)
	if err != nil {
		return searchResult{}, err
	}
	defer rows.Close()

	flat := []*tree.Node{}
	parents := map[int64]int64{}
	for rows.Next() {
		var n tree.Node
		var parentID *int64
		var az, en, ru string
		if err := rows.Scan(&n.ID, &parentID, &n.Code, &az, &en, &ru); err != nil {
			return searchResult{}, err
		}
		n.Name = models.L(az, en, ru)
		flat = append(flat, &n)
		if parentID != nil {
			parents[n.ID] = *parentID
		}
	}
	if err := rows.Err(); err != nil {
		return searchResult{}, err
	}
	return searchResult{Tree: tree.Build(flat, parents)}, nil
}

// Declaration serves GET /api/declarations/:id — the full detail card shown
// for a leaf code: parameters, restrictions, taxes, declarations, documents.
func Declaration() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var d models.CategoryDetail
		var az, en, ru string
		err = database.Pool.QueryRow(ctx, `SELECT id, code, name_az, name_en, name_ru FROM categories WHERE id=$1`, id).
			Scan(&d.ID, &d.Code, &az, &en, &ru)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				emptyData(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		d.Name = models.L(az, en, ru)

		rows, err := database.Pool.Query(ctx, `SELECT id, name_az, name_en, name_ru, value FROM category_parameters WHERE category_id=$1 ORDER BY id`, id)
		if err == nil {
			d.Parameters, err = scanParameters(rows)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		rows, err = database.Pool.Query(ctx, `SELECT id, text_az, text_en, text_ru FROM category_restrictions WHERE category_id=$1 ORDER BY id`, id)
		if err == nil {
			d.Restrictions, err = scanRestrictions(rows)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		rows, err = database.Pool.Query(ctx, `SELECT id, name_az, name_en, name_ru, rate FROM category_taxes WHERE category_id=$1 ORDER BY id`, id)
		if err == nil {
			d.Taxes, err = scanTaxes(rows)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		rows, err = database.Pool.Query(ctx, `SELECT id, title_az, title_en, title_ru FROM category_declarations WHERE category_id=$1 ORDER BY id`, id)
		if err == nil {
			d.Declarations, err = scanDeclarations(rows)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		rows, err = database.Pool.Query(ctx, `SELECT id, title_az, title_en, title_ru, url FROM category_documents WHERE category_id=$1 ORDER BY id`, id)
		if err == nil {
			d.Documents, err = scanDocuments(rows)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
