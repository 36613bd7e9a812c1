package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/storage"
	"atfplatform/backend/utils"
)

const advertsPerPage = 12

const advertColumns = `a.id, a.slug, a.user_id,
a.name_az, a.name_en, a.name_ru,
a.description_az, a.description_en, a.description_ru,
a.load_type_az, a.load_type_en, a.load_type_ru,
a.exit_from_address_az, a.exit_from_address_en, a.exit_from_address_ru,
a.capacity, a.unit_id, a.truck_type_id, a.from_area_id, a.to_area_id,
a.driver_name, a.driver_phone, a.expires_at, a.created_at`

func scanAdvert(row pgx.Row) (models.Advert, error) {
	var a models.Advert
	var nameAz, nameEn, nameRu, descAz, descEn, descRu string
	var loadAz, loadEn, loadRu, exitAz, exitEn, exitRu string
	err := row.Scan(&a.ID, &a.Slug, &a.UserID,
		&nameAz, &nameEn, &nameRu,
		&descAz, &descEn, &descRu,
		&loadAz, &loadEn, &loadRu,
		&exitAz, &exitEn, &exitRu,
		&a.Capacity, &a.UnitID, &a.TruckTypeID, &a.FromAreaID, &a.ToAreaID,
		&a.DriverName, &a.DriverPhone, &a.ExpiresAt, &a.CreatedAt)
	if err != nil {
		return a, err
	}
	a.Name = models.L(nameAz, nameEn, nameRu)
	a.Description = models.L(descAz, descEn, descRu)
	a.LoadType = models.L(loadAz, loadEn, loadRu)
	a.ExitFromAddress = models.L(exitAz, exitEn, exitRu)
	a.Photos = []string{}
	return a, nil
}

// AdvertList serves the listing endpoints. role narrows to a shipper type
// ("" lists everything); all role variants share one filtered query.
func AdvertList(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		where := []string{"(a.expires_at IS NULL OR a.expires_at > now())"}
		args := []any{}
		if role != "" {
			args = append(args, role)
			where = append(where, fmt.Sprintf("u.role = $%d", len(args)))
		}
		for param, column := range map[string]string{
			"from_area":  "a.from_area_id",
			"to_area":    "a.to_area_id",
			"unit":       "a.unit_id",
			"truck_type": "a.truck_type_id",
		} {
			if v := c.Query(param); v != "" {
				if id, err := strconv.ParseInt(v, 10, 64); err == nil {
					args = append(args, id)
					where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
				}
			}
		}
		if v := c.Query("min_capacity"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				args = append(args, f)
				where = append(where, fmt.Sprintf("a.capacity >= $%d", len(args)))
			}
		}
		if v := c.Query("max_capacity"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				args = append(args, f)
				where = append(where, fmt.Sprintf("a.capacity <= $%d", len(args)))
			}
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			args = append(args, "%"+strings.ToLower(q)+"%")
			where = append(where, fmt.Sprintf("(lower(a.name_az) LIKE $%d OR lower(a.name_en) LIKE $%d OR lower(a.name_ru) LIKE $%d)",
				len(args), len(args), len(args)))
		}
		cond := strings.Join(where, " AND ")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var total int
		err := database.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM adverts a JOIN users u ON u.id = a.user_id WHERE `+cond, args...).Scan(&total)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}

		args = append(args, advertsPerPage, (page-1)*advertsPerPage)
		rows, err := database.Pool.Query(ctx, `SELECT `+advertColumns+`
FROM adverts a JOIN users u ON u.id = a.user_id
WHERE `+cond+` ORDER BY a.created_at DESC LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)), args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		list := []models.Advert{}
		for rows.Next() {
			a, err := scanAdvert(rows)
			if err != nil {
				rows.Close()
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			list = append(list, a)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		for i := range list {
			list[i].Photos, _ = advertPhotos(ctx, list[i].ID)
		}
		if len(list) == 0 {
			emptyData(c)
			return
		}
		lastPage := (total + advertsPerPage - 1) / advertsPerPage
		c.JSON(http.StatusOK, gin.H{
			"data": list,
			"meta": gin.H{"page": page, "last_page": lastPage, "total": total},
		})
	}
}

func AdvertDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		a, err := scanAdvert(database.Pool.QueryRow(ctx, `SELECT `+advertColumns+` FROM adverts a WHERE a.slug=$1`, slug))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				emptyData(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		a.Photos, _ = advertPhotos(ctx, a.ID)
		if owner, err := loadUser(ctx, a.UserID); err == nil {
			a.Owner = &owner
		}
		c.JSON(http.StatusOK, a)
	}
}

// AdvertStore creates a listing from a multipart form; photos and the
// transporter certificate go to the upload store. Legal entities must name a
// driver.
func AdvertStore(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		u, err := loadUser(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}

		nameAz := strings.TrimSpace(c.PostForm("name_az"))
		if nameAz == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "name_required")})
			return
		}
		driverName := strings.TrimSpace(c.PostForm("driver_name"))
		driverPhone := strings.TrimSpace(c.PostForm("driver_phone"))
		if u.Role == models.RoleLegalEntity && (driverName == "" || driverPhone == "") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "driver_required")})
			return
		}

		capacity, _ := strconv.ParseFloat(c.PostForm("capacity"), 64)
		var expiresAt *time.Time
		if v := c.PostForm("expires_at"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				expiresAt = &t
			}
		}

		slug := utils.Slugify(nameAz)
		var advertID int64
		err = database.Pool.QueryRow(ctx, `INSERT INTO adverts(slug, user_id,
name_az, name_en, name_ru,
description_az, description_en, description_ru,
load_type_az, load_type_en, load_type_ru,
exit_from_address_az, exit_from_address_en, exit_from_address_ru,
capacity, unit_id, truck_type_id, from_area_id, to_area_id,
driver_name, driver_phone, expires_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22) RETURNING id`,
			slug, uid,
			nameAz, c.PostForm("name_en"), c.PostForm("name_ru"),
			c.PostForm("description_az"), c.PostForm("description_en"), c.PostForm("description_ru"),
			c.PostForm("load_type_az"), c.PostForm("load_type_en"), c.PostForm("load_type_ru"),
			c.PostForm("exit_from_address_az"), c.PostForm("exit_from_address_en"), c.PostForm("exit_from_address_ru"),
			capacity, formID(c, "unit_id"), formID(c, "truck_type_id"), formID(c, "from_area_id"), formID(c, "to_area_id"),
			driverName, driverPhone, expiresAt).Scan(&advertID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}

		photos := []string{}
		if form, err := c.MultipartForm(); err == nil {
			for _, fh := range form.File["photos"] {
				url, err := storage.SaveUpload(ctx, store, "adverts", fh)
				if err != nil {
					log.Printf("photo upload error: %v", err)
					continue
				}
				if _, err := database.Pool.Exec(ctx, `INSERT INTO advert_photos(advert_id, url) VALUES($1,$2)`, advertID, url); err == nil {
					photos = append(photos, url)
				}
			}
			for _, fh := range form.File["certificates"] {
				if _, err := storage.SaveUpload(ctx, store, "certificates", fh); err != nil {
					log.Printf("certificate upload error: %v", err)
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"id": advertID, "slug": slug, "photos": photos})
	}
}

// Lookups serves the filter sources: areas, units and truck types.
func Lookups() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		resp := gin.H{}
		for name, table := range map[string]string{"areas": "areas", "units": "units", "truck_types": "truck_types"} {
			rows, err := database.Pool.Query(ctx, `SELECT id, name_az, name_en, name_ru FROM `+table+` ORDER BY id`)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			list := []models.Lookup{}
			for rows.Next() {
				var l models.Lookup
				var az, en, ru string
				if err := rows.Scan(&l.ID, &az, &en, &ru); err != nil {
					rows.Close()
					c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
					return
				}
				l.Name = models.L(az, en, ru)
				list = append(list, l)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			resp[name] = list
		}
		c.JSON(http.StatusOK, resp)
	}
}

func advertPhotos(ctx context.Context, advertID int64) ([]string, error) {
	rows, err := database.Pool.Query(ctx, `SELECT url FROM advert_photos WHERE advert_id=$1 ORDER BY id`, advertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func loadUserAdverts(ctx context.Context, uid int64) ([]models.Advert, error) {
	rows, err := database.Pool.Query(ctx, `SELECT `+advertColumns+` FROM adverts a WHERE a.user_id=$1 ORDER BY a.created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	list := []models.Advert{}
	for rows.Next() {
		a, err := scanAdvert(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Photos, _ = advertPhotos(ctx, list[i].ID)
	}
	return list, nil
}

func formID(c *gin.Context, field string) *int64 {
	v := c.PostForm(field)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
