package model

import (
	"regexp"
	"strconv"
)

// identifierPattern matches name_WIDTHxLENGTHxPROJECTION_FORMTYPE.
// The name accepts any Unicode letter or digit plus underscore.
var identifierPattern = regexp.MustCompile(`^([\p{L}\p{N}_]+)_([0-9]+)x([0-9]+)x([0-9]+)_([0-9]+)$`)

// ParseIdentifier decodes an item identifier. The whole string must match;
// anything else is reported as an *IdentifierError.
func ParseIdentifier(id string) (ItemSpec, error) {
	m := identifierPattern.FindStringSubmatch(id)
	if m == nil {
		return ItemSpec{}, &IdentifierError{Identifier: id}
	}

	nums := make([]int, 4)
	for i, s := range m[2:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return ItemSpec{}, &IdentifierError{Identifier: id}
		}
		nums[i] = n
	}

	return ItemSpec{
		Name:         m[1],
		WidthMM:      nums[0],
		LengthMM:     nums[1],
		ProjectionMM: nums[2],
		FormType:     nums[3],
	}, nil
}

// Identifier rebuilds the identifier string from the parsed fields.
func (s ItemSpec) Identifier() string {
	return s.Name + "_" + itoa(s.WidthMM) + "x" + itoa(s.LengthMM) + "x" + itoa(s.ProjectionMM) + "_" + itoa(s.FormType)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
