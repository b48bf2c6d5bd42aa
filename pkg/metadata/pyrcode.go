package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type PyrCode struct {
	init     string
	category string
	id       string
}

const Init string = "PYR"

func (pyr *PyrCode) GeneratePyrCode() string {
	return pyr.init + "-" + pyr.category + pyr.id
}

func (pyr *PyrCode) Category() string {
	return pyr.category
}

func NewPyrCode(pyrID string, assetNumber int) PyrCode {
	var code PyrCode

	code.init = Init
	code.category = pyrID
	code.id = strconv.Itoa(assetNumber)

	return code
}

// ParsePyrCode normalises a scanned or typed label ("pyr-l12", " PYR-L12\n")
// into its canonical form. Scanners often drop the dash, so "PYRL12" is
// accepted too.
func ParsePyrCode(raw string) (PyrCode, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(value, Init) {
		return PyrCode{}, fmt.Errorf("invalid pyr code: %q", raw)
	}
	value = strings.TrimPrefix(strings.TrimPrefix(value, Init), "-")

	split := strings.IndexFunc(value, unicode.IsDigit)
	if split <= 0 || split > 3 {
		return PyrCode{}, fmt.Errorf("invalid pyr code: %q", raw)
	}

	category, number := value[:split], value[split:]
	for _, r := range category {
		if !unicode.IsLetter(r) {
			return PyrCode{}, fmt.Errorf("invalid pyr code: %q", raw)
		}
	}
	n, err := strconv.Atoi(number)
	if err != nil || n <= 0 {
		return PyrCode{}, fmt.Errorf("invalid pyr code: %q", raw)
	}

	return NewPyrCode(category, n), nil
}
