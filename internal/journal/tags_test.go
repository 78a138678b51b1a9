package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"lowercase", []string{"Forêt"}, []string{"forêt"}},
		{"hash stripped", []string{"#chasse"}, []string{"chasse"}},
		{"whitespace to hyphen", []string{"nuit  froide"}, []string{"nuit-froide"}},
		{"trim then hyphen", []string{"  eau claire  "}, []string{"eau-claire"}},
		{"dedupe", []string{"lac", "#Lac", "LAC"}, []string{"lac"}},
		{"blank dropped", []string{"", "  ", "#"}, nil},
		{"capped at three", []string{"a1b2", "c3d4", "e5f6", "g7h8"}, []string{"a1b2", "c3d4", "e5f6"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeTags(tc.in))
		})
	}
}
