package taxengine

import (
	"errors"
	"fmt"
)

// Structural failures. They are never clamped: the offending record has to be
// fixed by the caller.
var (
	ErrInvalidIncomeAmount           = errors.New("invalid income amount")
	ErrInvalidDeductionAmount        = errors.New("invalid deduction amount")
	ErrInvalidTransactionAmount      = errors.New("invalid transaction amount")
	ErrInvalidDateOrder              = errors.New("purchase date is after sale date")
	ErrTooManySelfOccupiedProperties = errors.New("too many self-occupied properties")
	ErrMetadataMismatch              = errors.New("income details do not match category")
	ErrUnknownCategory               = errors.New("unknown income category")
	ErrUnknownSection                = errors.New("unknown deduction section")
	ErrUnknownAssetType              = errors.New("unknown asset type")
)

// RecordError ties a structural failure to the record that caused it.
type RecordError struct {
	Kind     error
	Index    int
	RecordID string
	Msg      string
}

func (e *RecordError) Error() string {
	if e == nil {
		return ""
	}
	ref := fmt.Sprintf("record %d", e.Index)
	if e.RecordID != "" {
		ref = fmt.Sprintf("record %d (%s)", e.Index, e.RecordID)
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", ref, e.Kind.Error())
	}
	return fmt.Sprintf("%s: %s: %s", ref, e.Kind.Error(), e.Msg)
}

func (e *RecordError) Unwrap() error { return e.Kind }

func recordErrorf(kind error, index int, id string, format string, args ...any) error {
	return &RecordError{Kind: kind, Index: index, RecordID: id, Msg: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err carries any of the structural failure kinds.
func IsStructural(err error) bool {
	for _, kind := range []error{
		ErrInvalidIncomeAmount,
		ErrInvalidDeductionAmount,
		ErrInvalidTransactionAmount,
		ErrInvalidDateOrder,
		ErrTooManySelfOccupiedProperties,
		ErrMetadataMismatch,
		ErrUnknownCategory,
		ErrUnknownSection,
		ErrUnknownAssetType,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
