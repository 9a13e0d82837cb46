package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/jmoiron/sqlx"
)

const shoeSelect = `
	SELECT s.id, s.name, s.brand_id, s.category_id, s.gender, s.season,
	       s.material_upper, s.material_insole, s.material_outsole,
	       s.heel_height_cm, s.is_waterproof, s.price, s.created_at,
	       b.id AS "brand.id", b.name AS "brand.name", b.country AS "brand.country",
	       c.id AS "category.id", c.name AS "category.name", c.slug AS "category.slug"
	FROM shoes s
	JOIN brands b ON b.id = s.brand_id
	JOIN categories c ON c.id = s.category_id`

const shoeCount = `
	SELECT count(*)
	FROM shoes s
	JOIN brands b ON b.id = s.brand_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresCatalogStore implements catalog.Repository on PostgreSQL.
type PostgresCatalogStore struct {
	db *sqlx.DB
}

func NewPostgresCatalogStore(db *sqlx.DB) *PostgresCatalogStore {
	return &PostgresCatalogStore{db: db}
}

// buildShoeFilter turns a filter into a WHERE clause with named
// parameters. Conditions are appended in a fixed order: search, gender,
// season, size, category, brand.
func buildShoeFilter(f catalog.Filter) (string, map[string]interface{}) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Query != "" {
		conditions = append(conditions, "(s.name ILIKE :q OR b.name ILIKE :q)")
		args["q"] = "%" + likeEscaper.Replace(f.Query) + "%"
	}
	if f.Gender != "" {
		conditions = append(conditions, "s.gender = :gender")
		args["gender"] = string(f.Gender)
	}
	if f.Season != "" {
		conditions = append(conditions, "s.season = :season")
		args["season"] = string(f.Season)
	}
	if f.Size != nil {
		// EXISTS keeps one row per shoe however many size rows match.
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM shoe_sizes ss WHERE ss.shoe_id = s.id AND ss.size = :size AND ss.stock > 0)")
		args["size"] = *f.Size
	}
	if f.CategoryID != nil {
		conditions = append(conditions, "s.category_id = :category_id")
		args["category_id"] = *f.CategoryID
	}
	if f.BrandID != nil {
		conditions = append(conditions, "s.brand_id = :brand_id")
		args["brand_id"] = *f.BrandID
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresCatalogStore) countShoes(ctx context.Context, where string, args map[string]interface{}) (int, error) {
	query, params, err := sqlx.Named(shoeCount+where, args)
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), params...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresCatalogStore) selectShoes(ctx context.Context, query string, args map[string]interface{}) ([]catalog.Shoe, error) {
	nstmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	shoes := []catalog.Shoe{}
	if err := nstmt.SelectContext(ctx, &shoes, args); err != nil {
		return nil, err
	}
	return shoes, nil
}

func (r *PostgresCatalogStore) ListShoes(ctx context.Context, f catalog.Filter, page int) (*catalog.Page, error) {
	where, args := buildShoeFilter(f)

	count, err := r.countShoes(ctx, where, args)
	if err != nil {
		return nil, fmt.Errorf("count shoes: %w", err)
	}

	number := catalog.ClampPage(page, count)
	args["limit"] = catalog.PageSize
	args["offset"] = catalog.Offset(number)

	shoes, err := r.selectShoes(ctx, shoeSelect+where+" ORDER BY s.id LIMIT :limit OFFSET :offset", args)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	return catalog.NewPage(number, count, shoes), nil
}

func (r *PostgresCatalogStore) LatestShoes(ctx context.Context, f catalog.Filter, limit int) ([]catalog.Shoe, error) {
	where, args := buildShoeFilter(f)
	query := shoeSelect + where + " ORDER BY s.created_at DESC, s.id DESC"
	if limit > 0 {
		query += " LIMIT :limit"
		args["limit"] = limit
	}

	shoes, err := r.selectShoes(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("latest shoes: %w", err)
	}
	return shoes, nil
}

func (r *PostgresCatalogStore) GetShoe(ctx context.Context, id int64) (*catalog.Shoe, error) {
	var shoe catalog.Shoe
	err := r.db.GetContext(ctx, &shoe, shoeSelect+" WHERE s.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get shoe %d: %w", id, err)
	}

	query := `SELECT id, shoe_id, size, stock FROM shoe_sizes WHERE shoe_id = $1 ORDER BY size`
	if err := r.db.SelectContext(ctx, &shoe.Sizes, query, id); err != nil {
		return nil, fmt.Errorf("get sizes of shoe %d: %w", id, err)
	}
	return &shoe, nil
}

func (r *PostgresCatalogStore) GetShoeSize(ctx context.Context, shoeID int64, size float64) (*catalog.ShoeSize, error) {
	var sz catalog.ShoeSize
	query := `SELECT id, shoe_id, size, stock FROM shoe_sizes WHERE shoe_id = $1 AND size = $2`
	if err := r.db.GetContext(ctx, &sz, query, shoeID, size); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get size of shoe %d: %w", shoeID, err)
	}
	return &sz, nil
}

func (r *PostgresCatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	categories := []catalog.Category{}
	query := `SELECT id, name, slug FROM categories ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresCatalogStore) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	brands := []catalog.Brand{}
	query := `SELECT id, name, country FROM brands ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}
