package posts

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrPostNotFound reports a slug without a matching document.
	ErrPostNotFound = errors.New("posts: post not found")
	// ErrStoreUnreadable reports a listing or read failure of the content store.
	ErrStoreUnreadable = errors.New("posts: content store unreadable")
	// ErrUnparseableDate reports a date value none of the accepted layouts match.
	ErrUnparseableDate = errors.New("posts: unparseable date")
)

const (
	codePostNotFound    = "POST_NOT_FOUND"
	codeStoreUnreadable = "STORE_UNREADABLE"
	codeUnparseableDate = "DATE_UNPARSEABLE"
)

func notFoundError(slug string) error {
	return goerrors.Wrap(ErrPostNotFound, goerrors.CategoryNotFound, "post "+slug+" not found").
		WithTextCode(codePostNotFound)
}

func storeError(err error, message string) error {
	return goerrors.Wrap(errors.Join(ErrStoreUnreadable, err), goerrors.CategoryInternal, message).
		WithTextCode(codeStoreUnreadable)
}

func dateError(slug, raw string) error {
	return goerrors.Wrap(ErrUnparseableDate, goerrors.CategoryBadInput, "post "+slug+" has unparseable date "+raw).
		WithTextCode(codeUnparseableDate)
}
