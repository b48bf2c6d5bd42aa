package cart

import (
	"errors"
	"fmt"
)

var ErrCommitInProgress = errors.New("cart commit already in progress")

// StageRejectedError is returned when an asset cannot be staged. It never
// reaches the backend.
type StageRejectedError struct {
	AssetID string
	Reason  string
}

func (e *StageRejectedError) Error() string {
	return fmt.Sprintf("asset %s cannot be staged: %s", e.AssetID, e.Reason)
}
