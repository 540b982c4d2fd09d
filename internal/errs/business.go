package errs

import "net/http"

func business(status int, code, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, Status: status}
}

// Login and session failures.
var (
	ErrAccountNotFound = business(http.StatusUnauthorized, "ACCOUNT_NOT_FOUND", "account not found")
	ErrPasswordError   = business(http.StatusUnauthorized, "PASSWORD_ERROR", "incorrect password")
	ErrAccountLocked   = business(http.StatusForbidden, "ACCOUNT_LOCKED", "account locked")
	ErrNotLogin        = business(http.StatusUnauthorized, "NOT_LOGIN", "user not logged in")
)

// Catalog rules.
var (
	ErrCategoryRelatedByDish    = business(http.StatusBadRequest, "CATEGORY_BE_RELATED_BY_DISH", "category is linked to dishes and cannot be deleted")
	ErrCategoryRelatedBySetmeal = business(http.StatusBadRequest, "CATEGORY_BE_RELATED_BY_SETMEAL", "category is linked to setmeals and cannot be deleted")
	ErrDishOnSale               = business(http.StatusBadRequest, "DISH_ON_SALE", "dish is on sale and cannot be deleted")
	ErrDishRelatedBySetmeal     = business(http.StatusBadRequest, "DISH_BE_RELATED_BY_SETMEAL", "dish is linked to a setmeal and cannot be deleted")
	ErrDishInSetmealOnSale      = business(http.StatusBadRequest, "DISH_RELATED_BY_SETMEAL_WHICH_IS_ON_SALE", "dish belongs to a setmeal on sale and cannot be disabled")
	ErrSetmealOnSale            = business(http.StatusBadRequest, "SETMEAL_ON_SALE", "setmeal is on sale and cannot be deleted")
	ErrSetmealEnableFailed      = business(http.StatusBadRequest, "SETMEAL_ENABLE_FAILED", "setmeal contains disabled dishes and cannot be enabled")
)

var ErrUploadFailed = business(http.StatusBadRequest, "UPLOAD_FAILED", "file upload failed")

// NotFound builds the 404 used when an entity id does not exist,
// e.g. NotFound("dish") -> DISH_NOT_FOUND "dish not found".
func NotFound(entity string) *HTTPError {
	code := MakeUpperCaseWithUnderscores(entity) + "_NOT_FOUND"
	return NewNotFoundError(entity+" not found", &code)
}
