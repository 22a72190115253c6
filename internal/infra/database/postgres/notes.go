package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

var noteCols = []string{
	"id", "title", "description", "category",
	"file_url", "file_key", "uploaded_by", "created_at",
}

func (r *PGRepo) CreateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	q := r.qb().Insert(r.tbl("notes")).
		Columns("title", "description", "category", "file_url", "file_key", "uploaded_by").
		Values(n.Title, n.Description, n.Category, n.FileURL, n.FileKey, n.UploadedBy).
		Suffix("RETURNING " + joinCols(noteCols))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateNote", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Note
	if err := row.Scan(
		&out.ID, &out.Title, &out.Description, &out.Category,
		&out.FileURL, &out.FileKey, &out.UploadedBy, &out.CreatedAt,
	); err != nil {
		r.logger.Printf("CreateNote scan error after %s: %v", time.Since(start), err)
		return domain.Note{}, mapErr(err)
	}
	r.logger.Printf("CreateNote ok in %s id=%s title=%q", time.Since(start), out.ID, out.Title)
	return out, nil
}

// noteViewSelect: заметка + владелец + количество лайков одним запросом
func (r *PGRepo) noteViewSelect() sq.SelectBuilder {
	likeCount := fmt.Sprintf("(SELECT COUNT(*) FROM %s l WHERE l.note_id = n.id) AS like_count", r.tbl("note_likes"))
	return r.qb().Select(
		"n.id", "n.title", "n.description", "n.category",
		"n.file_url", "n.file_key", "n.uploaded_by", "n.created_at",
		"u.id", "u.name", "u.email", "u.role",
		likeCount,
	).From(r.tbl("notes") + " n").
		Join(r.tbl("users") + " u ON u.id = n.uploaded_by")
}

func scanNoteView(row sq.RowScanner) (domain.NoteView, error) {
	var v domain.NoteView
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Category,
		&v.FileURL, &v.FileKey, &v.UploadedBy, &v.CreatedAt,
		&v.Owner.ID, &v.Owner.Name, &v.Owner.Email, &v.Owner.Role,
		&v.Likes,
	)
	return v, err
}

func (r *PGRepo) NoteByID(ctx context.Context, id domain.NoteID) (domain.NoteView, error) {
	q := r.noteViewSelect().Where(sq.Eq{"n.id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("NoteByID", sqlStr, args)

	start := time.Now()
	v, err := scanNoteView(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("NoteByID scan error after %s: %v", time.Since(start), err)
		return domain.NoteView{}, mapErr(err)
	}

	if v.LikedBy, err = r.likesOf(ctx, id); err != nil {
		return domain.NoteView{}, err
	}
	if v.Comments, err = r.commentsOf(ctx, id); err != nil {
		return domain.NoteView{}, err
	}
	r.logger.Printf("NoteByID ok in %s id=%s", time.Since(start), v.ID)
	return v, nil
}

// applyNoteFilter навешивает условия фильтра каталога (без пагинации)
func (r *PGRepo) applyNoteFilter(sb sq.SelectBuilder, f domain.NoteFilter) sq.SelectBuilder {
	if f.Search != "" {
		sb = sb.Where(sq.ILike{"n.title": "%" + f.Search + "%"})
	}
	if f.Category != "" {
		sb = sb.Where(sq.Eq{"n.category": f.Category})
	}
	if f.OwnerID != nil {
		sb = sb.Where(sq.Eq{"n.uploaded_by": *f.OwnerID})
	}
	if f.FavoritesOf != nil {
		sb = sb.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM "+r.tbl("user_favorites")+" f WHERE f.note_id = n.id AND f.user_id = ?)",
			*f.FavoritesOf,
		))
	}
	return sb
}

// ListNotes возвращает страницу в порядке вставки (ORDER BY id) и total
// по всему фильтру. Сортировку по дате/лайкам поверх страницы делает вызывающий.
func (r *PGRepo) ListNotes(ctx context.Context, f domain.NoteFilter) ([]domain.NoteView, int64, error) {
	f.Normalize()

	cq := r.applyNoteFilter(
		r.qb().Select("COUNT(*)").From(r.tbl("notes")+" n"), f)
	sqlStr, args, _ := cq.ToSql()
	r.logSQL("ListNotes.count", sqlStr, args)

	var total int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	sb := r.applyNoteFilter(r.noteViewSelect(), f).
		OrderBy("n.id ASC").
		Offset(f.Offset()).
		Limit(uint64(f.Limit))
	sqlStr, args, _ = sb.ToSql()
	r.logSQL("ListNotes", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ListNotes query error after %s: %v", time.Since(start), err)
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	res := []domain.NoteView{}
	for rows.Next() {
		v, err := scanNoteView(rows)
		if err != nil {
			r.logger.Printf("ListNotes scan error: %v", err)
			return nil, 0, mapErr(err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ListNotes rows error: %v", err)
		return nil, 0, mapErr(err)
	}
	r.logger.Printf("ListNotes ok in %s count=%d total=%d", time.Since(start), len(res), total)
	return res, total, nil
}

// CategoryCounts: group-by по категории по тому же фильтру, пагинация не учитывается
func (r *PGRepo) CategoryCounts(ctx context.Context, f domain.NoteFilter) ([]domain.CategoryCount, error) {
	sb := r.applyNoteFilter(
		r.qb().Select("n.category", "COUNT(*)").From(r.tbl("notes")+" n"), f).
		GroupBy("n.category")
	sqlStr, args, _ := sb.ToSql()
	r.logSQL("CategoryCounts", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []domain.CategoryCount{}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateNote(ctx context.Context, id domain.NoteID, p domain.NotePatch) (domain.Note, error) {
	ub := r.qb().Update(r.tbl("notes")).Where(sq.Eq{"id": id})
	set := false
	if p.Title != nil {
		ub = ub.Set("title", *p.Title)
		set = true
	}
	if p.Description != nil {
		ub = ub.Set("description", *p.Description)
		set = true
	}
	if p.Category != nil {
		ub = ub.Set("category", *p.Category)
		set = true
	}
	if !set {
		// нечего менять — отдаём текущее состояние
		q := r.qb().Select(noteCols...).From(r.tbl("notes")).Where(sq.Eq{"id": id})
		sqlStr, args, _ := q.ToSql()
		r.logSQL("UpdateNote.noop", sqlStr, args)
		var out domain.Note
		err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
			&out.ID, &out.Title, &out.Description, &out.Category,
			&out.FileURL, &out.FileKey, &out.UploadedBy, &out.CreatedAt,
		)
		return out, mapErr(err)
	}

	ub = ub.Suffix("RETURNING " + joinCols(noteCols))
	sqlStr, args, _ := ub.ToSql()
	r.logSQL("UpdateNote", sqlStr, args)

	start := time.Now()
	var out domain.Note
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&out.ID, &out.Title, &out.Description, &out.Category,
		&out.FileURL, &out.FileKey, &out.UploadedBy, &out.CreatedAt,
	); err != nil {
		r.logger.Printf("UpdateNote scan error after %s: %v", time.Since(start), err)
		return domain.Note{}, mapErr(err)
	}
	r.logger.Printf("UpdateNote ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) DeleteNote(ctx context.Context, id domain.NoteID) error {
	q := r.qb().Delete(r.tbl("notes")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteNote", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteNote exec error after %s: %v", time.Since(start), err)
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteNote ok in %s id=%s", time.Since(start), id)
	return nil
}

// ToggleLike: атомарность на уровне одной строки даёт сама БД —
// вставка с ON CONFLICT либо удаление, без read-modify-write.
func (r *PGRepo) ToggleLike(ctx context.Context, noteID domain.NoteID, userID domain.UserID) (int, bool, error) {
	ins := r.qb().Insert(r.tbl("note_likes")).
		Columns("note_id", "user_id").
		Values(noteID, userID).
		Suffix("ON CONFLICT (note_id, user_id) DO NOTHING")
	sqlStr, args, _ := ins.ToSql()
	r.logSQL("ToggleLike.insert", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, false, mapErr(err)
	}
	liked := tag.RowsAffected() == 1
	if !liked {
		del := r.qb().Delete(r.tbl("note_likes")).
			Where(sq.Eq{"note_id": noteID, "user_id": userID})
		sqlStr, args, _ = del.ToSql()
		r.logSQL("ToggleLike.delete", sqlStr, args)
		if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
			return 0, false, mapErr(err)
		}
	}

	cnt := r.qb().Select("COUNT(*)").
		From(r.tbl("note_likes")).
		Where(sq.Eq{"note_id": noteID})
	sqlStr, args, _ = cnt.ToSql()
	var likes int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&likes); err != nil {
		return 0, liked, mapErr(err)
	}
	r.logger.Printf("ToggleLike ok in %s note=%s user=%s liked=%v likes=%d",
		time.Since(start), noteID, userID, liked, likes)
	return likes, liked, nil
}

func (r *PGRepo) AddComment(ctx context.Context, noteID domain.NoteID, userID domain.UserID, text string) ([]domain.CommentView, error) {
	ins := r.qb().Insert(r.tbl("note_comments")).
		Columns("note_id", "user_id", "body").
		Values(noteID, userID, text)
	sqlStr, args, _ := ins.ToSql()
	r.logSQL("AddComment", sqlStr, args)

	start := time.Now()
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		r.logger.Printf("AddComment exec error after %s: %v", time.Since(start), err)
		return nil, mapErr(err)
	}
	r.logger.Printf("AddComment ok in %s note=%s user=%s", time.Since(start), noteID, userID)
	return r.commentsOf(ctx, noteID)
}

func (r *PGRepo) CountNotes(ctx context.Context) (int64, error) {
	q := r.qb().Select("COUNT(*)").From(r.tbl("notes"))
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CountNotes", sqlStr, args)

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// TotalLikes — суммарная мощность всех множеств лайков
func (r *PGRepo) TotalLikes(ctx context.Context) (int64, error) {
	q := r.qb().Select("COUNT(*)").From(r.tbl("note_likes"))
	sqlStr, args, _ := q.ToSql()
	r.logSQL("TotalLikes", sqlStr, args)

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *PGRepo) AllNotes(ctx context.Context) ([]domain.NoteView, error) {
	q := r.noteViewSelect().OrderBy("n.created_at DESC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("AllNotes", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	res := []domain.NoteView{}
	for rows.Next() {
		v, err := scanNoteView(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	r.logger.Printf("AllNotes ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) likesOf(ctx context.Context, noteID domain.NoteID) ([]domain.UserID, error) {
	q := r.qb().Select("user_id").
		From(r.tbl("note_likes")).
		Where(sq.Eq{"note_id": noteID}).
		OrderBy("created_at ASC")
	sqlStr, args, _ := q.ToSql()

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []domain.UserID{}
	for rows.Next() {
		var id domain.UserID
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

func (r *PGRepo) commentsOf(ctx context.Context, noteID domain.NoteID) ([]domain.CommentView, error) {
	q := r.qb().Select("c.id", "c.body", "c.created_at", "u.id", "u.name", "u.email").
		From(r.tbl("note_comments") + " c").
		Join(r.tbl("users") + " u ON u.id = c.user_id").
		Where(sq.Eq{"c.note_id": noteID}).
		OrderBy("c.created_at ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("commentsOf", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []domain.CommentView{}
	for rows.Next() {
		var c domain.CommentView
		if err := rows.Scan(&c.ID, &c.Text, &c.CreatedAt, &c.Author.ID, &c.Author.Name, &c.Author.Email); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
