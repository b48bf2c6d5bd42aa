package custom_error

import (
	"fmt"
	"inventory/pkg/metadata"
)

// StaleStateError means the asset changed on the backend after it was
// staged, so the requested transition no longer applies.
type StaleStateError struct {
	AssetID  string
	Expected metadata.AssetStatus
	Actual   metadata.AssetStatus
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("asset is %s, expected %s", e.Actual.Label(), e.Expected.Label())
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
