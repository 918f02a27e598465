package service

import (
	"errors"

	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/store"
)

// Operation names recorded on every error returned by MemoService.
const (
	opList   = "list_memos"
	opGet    = "get_memo"
	opCreate = "create_memo"
	opUpdate = "replace_memo"
	opPatch  = "patch_memo"
	opDelete = "delete_memo"
	opToggle = "toggle_memo"
)

// ErrNilStore is returned by NewMemoService when no store is supplied.
var ErrNilStore = errors.New("memo store cannot be nil")

// mapStoreError translates an error from a store call into the domain
// taxonomy. Errors already in the taxonomy (raised by a mutator) pass
// through. Store details stay in the wrapped error and never reach the
// message.
func mapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return err
	}

	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}

	if store.IsNotFoundError(err) {
		return domain.NotFoundError(op)
	}

	return domain.StoreError(op, err)
}
