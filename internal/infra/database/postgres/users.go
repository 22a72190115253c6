package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

var userCols = []string{
	"id", "name", "email", "pass_hash", "docs_pass_hash",
	"role", "reset_token", "reset_expires", "created_at",
}

func (r *PGRepo) scanUser(row sq.RowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PassHash, &u.DocsPassHash,
		&u.Role, &u.ResetToken, &u.ResetExpires, &u.CreatedAt,
	)
	return u, err
}

func (r *PGRepo) CreateUser(ctx context.Context, name, email, passHash string) (domain.User, error) {
	q := r.qb().Insert(r.tbl("users")).
		Columns("name", "email", "pass_hash").
		Values(name, email, passHash).
		Suffix("RETURNING " + joinCols(userCols))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUser", sqlStr, args)

	start := time.Now()
	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateUser scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapErr(err)
	}
	u.Favorites = []domain.NoteID{}
	r.logger.Printf("CreateUser ok in %s id=%s email=%s", time.Since(start), u.ID, u.Email)
	return u, nil
}

func (r *PGRepo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	q := r.qb().Select(userCols...).
		From(r.tbl("users")).
		Where(sq.Eq{"email": email})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByEmail", sqlStr, args)

	start := time.Now()
	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UserByEmail scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapErr(err)
	}
	if u.Favorites, err = r.favoritesOf(ctx, u.ID); err != nil {
		return domain.User{}, err
	}
	r.logger.Printf("UserByEmail ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select(userCols...).
		From(r.tbl("users")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByID", sqlStr, args)

	start := time.Now()
	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UserByID scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapErr(err)
	}
	if u.Favorites, err = r.favoritesOf(ctx, u.ID); err != nil {
		return domain.User{}, err
	}
	r.logger.Printf("UserByID ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) CountUsers(ctx context.Context) (int64, error) {
	q := r.qb().Select("COUNT(*)").From(r.tbl("users"))
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CountUsers", sqlStr, args)

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *PGRepo) SetDocsPassword(ctx context.Context, id domain.UserID, hash string) error {
	q := r.qb().Update(r.tbl("users")).
		Set("docs_pass_hash", hash).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SetDocsPassword", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetResetToken(ctx context.Context, id domain.UserID, token string, expires time.Time) error {
	q := r.qb().Update(r.tbl("users")).
		SetMap(map[string]any{
			"reset_token":   token,
			"reset_expires": expires,
		}).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SetResetToken", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) UserByResetToken(ctx context.Context, token string, now time.Time) (domain.User, error) {
	// Истёкший токен неотличим от несуществующего
	q := r.qb().Select(userCols...).
		From(r.tbl("users")).
		Where(sq.And{
			sq.Eq{"reset_token": token},
			sq.NotEq{"reset_token": ""},
			sq.Gt{"reset_expires": now},
		})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByResetToken", sqlStr, args)

	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

// UpdatePassword меняет основной пароль и сразу гасит reset-токен.
func (r *PGRepo) UpdatePassword(ctx context.Context, id domain.UserID, passHash string) error {
	q := r.qb().Update(r.tbl("users")).
		SetMap(map[string]any{
			"pass_hash":     passHash,
			"reset_token":   "",
			"reset_expires": sq.Expr("'epoch'::timestamptz"),
		}).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdatePassword", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleFavorite: insert-or-delete одной парой запросов; членство в избранном
// определяется результатом вставки, счётчик — отдельным COUNT.
func (r *PGRepo) ToggleFavorite(ctx context.Context, userID domain.UserID, noteID domain.NoteID) (bool, int, error) {
	ins := r.qb().Insert(r.tbl("user_favorites")).
		Columns("user_id", "note_id").
		Values(userID, noteID).
		Suffix("ON CONFLICT (user_id, note_id) DO NOTHING")
	sqlStr, args, _ := ins.ToSql()
	r.logSQL("ToggleFavorite.insert", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, 0, mapErr(err)
	}
	favorited := tag.RowsAffected() == 1
	if !favorited {
		del := r.qb().Delete(r.tbl("user_favorites")).
			Where(sq.Eq{"user_id": userID, "note_id": noteID})
		sqlStr, args, _ = del.ToSql()
		r.logSQL("ToggleFavorite.delete", sqlStr, args)
		if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
			return false, 0, mapErr(err)
		}
	}

	cnt := r.qb().Select("COUNT(*)").
		From(r.tbl("user_favorites")).
		Where(sq.Eq{"user_id": userID})
	sqlStr, args, _ = cnt.ToSql()
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return favorited, 0, mapErr(err)
	}
	r.logger.Printf("ToggleFavorite ok in %s user=%s note=%s favorited=%v total=%d",
		time.Since(start), userID, noteID, favorited, total)
	return favorited, total, nil
}

func (r *PGRepo) favoritesOf(ctx context.Context, userID domain.UserID) ([]domain.NoteID, error) {
	q := r.qb().Select("note_id").
		From(r.tbl("user_favorites")).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC")
	sqlStr, args, _ := q.ToSql()

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []domain.NoteID{}
	for rows.Next() {
		var id domain.NoteID
		if err := rows.Scan(&id); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
