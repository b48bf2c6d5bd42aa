package metadata

import (
	"fmt"
	"strings"
)

type AssetStatus string

const (
	StatusAvailable     AssetStatus = "AVAILABLE"
	StatusCheckedOut    AssetStatus = "CHECKED_OUT"
	StatusInMaintenance AssetStatus = "IN_MAINTENANCE"
	StatusRetired       AssetStatus = "RETIRED"
	StatusMissing       AssetStatus = "MISSING"
	StatusReserved      AssetStatus = "RESERVED"
)

var statusLabels = map[AssetStatus]string{
	StatusAvailable:     "available",
	StatusCheckedOut:    "checked out",
	StatusInMaintenance: "in maintenance",
	StatusRetired:       "retired",
	StatusMissing:       "missing",
	StatusReserved:      "reserved",
}

// NewAssetStatus accepts the canonical upper-case value as well as the
// lower-case form some clients send.
func NewAssetStatus(value string) (AssetStatus, error) {
	status := AssetStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid asset status: %s", value)
	}
	return status, nil
}

func (s AssetStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable form used in rejection reasons.
func (s AssetStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "in an unknown state"
}

func (s AssetStatus) String() string {
	return string(s)
}
