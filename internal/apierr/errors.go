// Package apierr defines the typed errors core components raise. No one
// here formats HTTP responses; a single boundary in the REST handler layer
// maps an Error to a status code and envelope.
package apierr

import "net/http"

// Class is the envelope status field: "fail" for client-caused errors,
// "error" for server trouble.
type Class string

const (
	ClassFail  Class = "fail"
	ClassError Class = "error"
)

// Error is a typed domain error with its wire mapping.
type Error struct {
	Code        string
	Class       Class
	HTTPStatus  int
	Description string
}

func (e *Error) Error() string {
	return e.Description
}

func fail(code string, status int, description string) *Error {
	return &Error{Code: code, Class: ClassFail, HTTPStatus: status, Description: description}
}

// Credential and token failures. All map to 400 so a caller cannot probe
// which part of a credential was wrong.
func NewInvalidHeaderValue() *Error {
	return fail("InvalidHeaderValue", http.StatusBadRequest, "Malformed Authorization header.")
}

func NewInvalidToken() *Error {
	return fail("InvalidToken", http.StatusBadRequest, "The token is invalid.")
}

func NewExpiredToken() *Error {
	return fail("ExpiredToken", http.StatusBadRequest, "The token has expired.")
}

func NewAuthFail() *Error {
	return fail("AuthFail", http.StatusBadRequest, "Wrong username or password.")
}

// Authorization and lookup failures.
func NewForbidden() *Error {
	return fail("Forbidden", http.StatusForbidden, "You are not allowed to do that.")
}

func NewObjectNotFound() *Error {
	return fail("ObjectNotFound", http.StatusNotFound, "The specified resource does not exist.")
}

// Conflict family: uniqueness and mutual-exclusion violations.
func NewUsernameAlreadyTaken() *Error {
	return fail("UsernameAlreadyTaken", http.StatusConflict, "This username is already taken.")
}

func NewFandomURLAlreadyTaken() *Error {
	return fail("FandomUrlAlreadyTaken", http.StatusConflict, "This fandom url is already taken.")
}

func NewBlogURLAlreadyTaken() *Error {
	return fail("BlogUrlAlreadyTaken", http.StatusConflict, "This blog url is already taken.")
}

func NewUserIsModer() *Error {
	return fail("UserIsModer", http.StatusConflict, "This user holds a moderation grant at this scope.")
}

func NewUserIsBanned() *Error {
	return fail("UserIsBanned", http.StatusConflict, "This user is banned at this scope.")
}

func NewUserIsOwner() *Error {
	return fail("UserIsOwner", http.StatusConflict, "This user owns the resource.")
}

// Request shape failures.
func NewInvalidJSON() *Error {
	return fail("InvalidJson", http.StatusUnprocessableEntity, "The request body is not valid JSON.")
}

func NewValidationError(description string) *Error {
	return fail("ValidationError", http.StatusBadRequest, description)
}

// NewInternalServerError is the catch-all for unexpected failures. The
// original error is logged at the boundary, never sent to the client.
func NewInternalServerError() *Error {
	return &Error{
		Code:        "InternalServerError",
		Class:       ClassError,
		HTTPStatus:  http.StatusInternalServerError,
		Description: "Server got itself in trouble.",
	}
}
