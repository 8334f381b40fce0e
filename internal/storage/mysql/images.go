package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

type ImageRepo struct{ db *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{db: db} }

var imageSortCols = map[string]exp.IdentifierExpression{
	"id":       tImages.Col("id"),
	"imageUrl": tImages.Col("image_url"),
	"main":     tImages.Col("main"),
}

var imageCols = []any{"id", "image_url", "main", "place_id", "category_id"}

func ownerCol(owner domain.ImageOwner) exp.IdentifierExpression {
	if owner == domain.OwnerCategory {
		return tImages.Col("category_id")
	}
	return tImages.Col("place_id")
}

func imageRecord(img domain.Image) goqu.Record {
	return goqu.Record{
		"image_url":   img.ImageURL,
		"main":        img.Main,
		"place_id":    valInt64(img.PlaceID),
		"category_id": valInt64(img.CategoryID),
	}
}

func (r *ImageRepo) Create(ctx context.Context, img domain.Image) (domain.Image, error) {
	q, args, err := dialect.Insert(tImages).Rows(imageRecord(img)).ToSQL()
	if err != nil {
		return domain.Image{}, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Image{}, err
	}
	img.ID, err = res.LastInsertId()
	return img, err
}

func (r *ImageRepo) Update(ctx context.Context, img domain.Image) (domain.Image, error) {
	q, args, err := dialect.Update(tImages).Set(imageRecord(img)).
		Where(tImages.Col("id").Eq(img.ID)).ToSQL()
	if err != nil {
		return domain.Image{}, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Image{}, err
	}
	return img, nil
}

func (r *ImageRepo) Get(ctx context.Context, id int64) (domain.Image, error) {
	return r.getWhere(ctx, tImages.Col("id").Eq(id))
}

func (r *ImageRepo) FindByURL(ctx context.Context, imageURL string) (domain.Image, error) {
	return r.getWhere(ctx, tImages.Col("image_url").Eq(imageURL))
}

func (r *ImageRepo) FindMain(ctx context.Context, owner domain.ImageOwner, ownerID int64) (domain.Image, error) {
	return r.getWhere(ctx, goqu.And(ownerCol(owner).Eq(ownerID), tImages.Col("main").IsTrue()))
}

func (r *ImageRepo) getWhere(ctx context.Context, cond exp.Expression) (domain.Image, error) {
	q, args, err := dialect.From(tImages).Select(imageCols...).Where(cond).ToSQL()
	if err != nil {
		return domain.Image{}, err
	}
	var img domain.Image
	var placeID, catID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&img.ID, &img.ImageURL, &img.Main, &placeID, &catID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Image{}, domain.ErrNotFound
		}
		return domain.Image{}, err
	}
	img.PlaceID = int64Ptr(placeID)
	img.CategoryID = int64Ptr(catID)
	return img, nil
}

// SetMain demotes the owner's current main image and promotes imageID inside
// one transaction. Running it twice for the same image is a no-op on the
// second pass: the image is unset and set again, leaving exactly one main.
func (r *ImageRepo) SetMain(ctx context.Context, owner domain.ImageOwner, ownerID, imageID int64) (domain.Image, error) {
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args, err := dialect.Update(tImages).Set(goqu.Record{"main": false}).
			Where(ownerCol(owner).Eq(ownerID), tImages.Col("main").IsTrue()).ToSQL()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
		q, args, err = dialect.Update(tImages).Set(goqu.Record{"main": true}).
			Where(tImages.Col("id").Eq(imageID), ownerCol(owner).Eq(ownerID)).ToSQL()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Image{}, err
	}
	return r.Get(ctx, imageID)
}

func (r *ImageRepo) Delete(ctx context.Context, id int64) error {
	q, args, err := dialect.Delete(tImages).Where(tImages.Col("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *ImageRepo) FindByCriteria(ctx context.Context, crit *domain.ImageCriteria) ([]domain.Image, error) {
	ds, _ := imageQuery(crit)
	ds = ds.Select(imageCols...).Order(tImages.Col("id").Asc())
	return r.queryImages(ctx, ds)
}

func (r *ImageRepo) FindPageByCriteria(ctx context.Context, crit *domain.ImageCriteria, pg domain.Page) (domain.Paged[domain.Image], error) {
	total, err := r.CountByCriteria(ctx, crit)
	if err != nil {
		return domain.Paged[domain.Image]{}, err
	}
	ds, _ := imageQuery(crit)
	limit, offset := pageLimits(pg)
	ds = ds.Select(imageCols...).
		Order(orderFor(pg, imageSortCols, tImages.Col("id"))).
		Limit(limit).Offset(offset)
	items, err := r.queryImages(ctx, ds)
	if err != nil {
		return domain.Paged[domain.Image]{}, err
	}
	return domain.Paged[domain.Image]{Items: items, TotalElements: total}, nil
}

func (r *ImageRepo) CountByCriteria(ctx context.Context, crit *domain.ImageCriteria) (int64, error) {
	ds, _ := imageQuery(crit)
	return countDistinct(ctx, r.db, ds, tImages.Col("id"))
}

func (r *ImageRepo) queryImages(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Image, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Image
	for rows.Next() {
		var img domain.Image
		var placeID, catID sql.NullInt64
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.Main, &placeID, &catID); err != nil {
			return nil, err
		}
		img.PlaceID = int64Ptr(placeID)
		img.CategoryID = int64Ptr(catID)
		out = append(out, img)
	}
	return out, rows.Err()
}
