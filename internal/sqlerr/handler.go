package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/sky-takeout/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds <DOMAIN>_<ACTION>, e.g. employee + UniqueViolation
// => EMPLOYEE_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// uniqueDetail matches `Key (username)=(admin) already exists.`
var uniqueDetail = regexp.MustCompile(`Key \((.+?)\)=\((.*)\) already exists`)

// duplicateMessage renders "username 'admin' already exists" from the
// violation detail, falling back to the constraint name.
func duplicateMessage(sqlErr *Error) string {
	if m := uniqueDetail.FindStringSubmatch(sqlErr.Detail); len(m) == 3 {
		return fmt.Sprintf("%s '%s' already exists", strings.ReplaceAll(m[1], "_", " "), m[2])
	}

	entityName := getEntityName(sqlErr.TableName, "")
	if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
		return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(column))
	}
	return fmt.Sprintf("A %s with this identifier already exists", entityName)
}

// formatUserFriendlyMessage produces the end-user message for a constraint failure.
func formatUserFriendlyMessage(sqlErr *Error) string {
	column := sqlErr.ColumnName
	if column == "" && sqlErr.Code == ForeignKeyViolation {
		column = foreignKeyColumn(sqlErr.ConstraintName)
	}
	entityName := getEntityName(sqlErr.TableName, column)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return duplicateMessage(sqlErr)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case StringDataRightTruncation, NumericValueOutOfRange, InvalidTextRepresentation:
		return "One or more values are out of range"

	default:
		return errs.MsgUnknownError
	}
}

// getEntityName prefers a "<entity>_id" column, then the table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts "setmeal_dish" into "Setmeal Dish".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// fkeyColumn matches the column in "<table>_<column>_fkey" when the column ends in _id.
var fkeyColumn = regexp.MustCompile(`_([a-z]+_id)_fkey$`)

// foreignKeyColumn infers the referencing column. Postgres leaves ColumnName
// empty for foreign key violations.
func foreignKeyColumn(constraintName string) string {
	if m := fkeyColumn.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	return ""
}

var constraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from "unique_<table>_<column>"
// or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := constraintColumn.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: a 400 for constraint failures, otherwise a 500
//   - ErrNoRows: a 404
//   - anything else: a 500 carrying "unknown error"
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, UniqueViolation, CheckViolation,
			StringDataRightTruncation, NumericValueOutOfRange, InvalidTextRepresentation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
