package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

var docCols = []string{
	"id", "user_id", "title", "description", "category",
	"file_url", "file_key", "created_at", "updated_at",
}

func scanDoc(row sq.RowScanner) (domain.PersonalDoc, error) {
	var d domain.PersonalDoc
	err := row.Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.Category,
		&d.FileURL, &d.FileKey, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *PGRepo) DocsByOwner(ctx context.Context, owner domain.UserID) ([]domain.PersonalDoc, error) {
	q := r.qb().Select(docCols...).
		From(r.tbl("personal_docs")).
		Where(sq.Eq{"user_id": owner}).
		OrderBy("created_at DESC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DocsByOwner", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DocsByOwner query error after %s: %v", time.Since(start), err)
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []domain.PersonalDoc{}
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	r.logger.Printf("DocsByOwner ok in %s owner=%s count=%d", time.Since(start), owner, len(out))
	return out, nil
}

// DocByID всегда фильтрует по (id AND user_id): чужой документ
// неотличим от несуществующего.
func (r *PGRepo) DocByID(ctx context.Context, id domain.DocID, owner domain.UserID) (domain.PersonalDoc, error) {
	q := r.qb().Select(docCols...).
		From(r.tbl("personal_docs")).
		Where(sq.Eq{"id": id, "user_id": owner})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DocByID", sqlStr, args)

	d, err := scanDoc(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.PersonalDoc{}, mapErr(err)
	}
	return d, nil
}

func (r *PGRepo) CreateDoc(ctx context.Context, d domain.PersonalDoc) (domain.PersonalDoc, error) {
	q := r.qb().Insert(r.tbl("personal_docs")).
		Columns("user_id", "title", "description", "category", "file_url", "file_key").
		Values(d.UserID, d.Title, d.Description, d.Category, d.FileURL, d.FileKey).
		Suffix("RETURNING " + joinCols(docCols))
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateDoc", sqlStr, args)

	start := time.Now()
	out, err := scanDoc(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateDoc scan error after %s: %v", time.Since(start), err)
		return domain.PersonalDoc{}, mapErr(err)
	}
	r.logger.Printf("CreateDoc ok in %s id=%s owner=%s", time.Since(start), out.ID, out.UserID)
	return out, nil
}

func (r *PGRepo) UpdateDoc(ctx context.Context, id domain.DocID, owner domain.UserID, p domain.DocPatch) (domain.PersonalDoc, error) {
	ub := r.qb().Update(r.tbl("personal_docs")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": owner})
	if p.Title != nil {
		ub = ub.Set("title", *p.Title)
	}
	if p.Description != nil {
		ub = ub.Set("description", *p.Description)
	}
	if p.Category != nil {
		ub = ub.Set("category", *p.Category)
	}
	ub = ub.Suffix("RETURNING " + joinCols(docCols))

	sqlStr, args, _ := ub.ToSql()
	r.logSQL("UpdateDoc", sqlStr, args)

	start := time.Now()
	out, err := scanDoc(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UpdateDoc scan error after %s: %v", time.Since(start), err)
		return domain.PersonalDoc{}, mapErr(err)
	}
	r.logger.Printf("UpdateDoc ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) DeleteDoc(ctx context.Context, id domain.DocID, owner domain.UserID) error {
	q := r.qb().Delete(r.tbl("personal_docs")).
		Where(sq.Eq{"id": id, "user_id": owner})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteDoc", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteDoc exec error after %s: %v", time.Since(start), err)
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteDoc ok in %s id=%s", time.Since(start), id)
	return nil
}
