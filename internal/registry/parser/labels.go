package parser

import "strings"

type labelKind int

const (
	labelOther labelKind = iota
	labelRegistryNumber
	labelQualificationDate
	labelAddress
	labelQualification
)

// labelRoutes is checked in order: "date de qualification" also contains
// "qualification", so the date route must come first.
var labelRoutes = []struct {
	substring string
	kind      labelKind
}{
	{"inami", labelRegistryNumber},
	{"date de qualif", labelQualificationDate},
	{"adresse", labelAddress},
	{"qualification", labelQualification},
}

// classifyLabel routes a normalized row label. Labels matching no route land
// in labelOther and are kept verbatim as candidate attributes.
func classifyLabel(label string) labelKind {
	for _, route := range labelRoutes {
		if strings.Contains(label, route.substring) {
			return route.kind
		}
	}
	return labelOther
}
