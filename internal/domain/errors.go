package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrConflict         = errors.New("conflict")           // 409 (дубликат email)
	ErrUpstream         = errors.New("upstream_failure")   // 502 (БД/объектное хранилище)
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Коды для конверта ответа
const (
	ErrCodeBadParams        = 1400
	ErrCodeUnauth           = 1401
	ErrCodeForbidden        = 1403
	ErrCodeNotFound         = 1404
	ErrCodeMethodNotAllowed = 1405
	ErrCodeConflict         = 1409
	ErrCodeUnexpected       = 1500
	ErrCodeUpstream         = 1502
)
