package sift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeSelector(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     []simpleSelector
	}{
		{
			name:     "single class",
			selector: ".btn",
			want:     []simpleSelector{{kind: simpleClass, name: "btn"}},
		},
		{
			name:     "compound classes",
			selector: ".btn.active",
			want: []simpleSelector{
				{kind: simpleClass, name: "btn"},
				{kind: simpleClass, name: "active"},
			},
		},
		{
			name:     "id",
			selector: "#app",
			want:     []simpleSelector{{kind: simpleID, name: "app"}},
		},
		{
			name:     "type",
			selector: "div",
			want:     []simpleSelector{{kind: simpleType, name: "div"}},
		},
		{
			name:     "universal",
			selector: "*",
			want:     []simpleSelector{{kind: simpleUniversal}},
		},
		{
			name:     "descendant combinator",
			selector: ".nav .item",
			want: []simpleSelector{
				{kind: simpleClass, name: "nav"},
				{kind: simpleClass, name: "item"},
			},
		},
		{
			name:     "child combinator",
			selector: ".nav > .item",
			want: []simpleSelector{
				{kind: simpleClass, name: "nav"},
				{kind: simpleClass, name: "item"},
			},
		},
		{
			name:     "type with class and pseudo",
			selector: "a.link:hover",
			want: []simpleSelector{
				{kind: simpleType, name: "a"},
				{kind: simpleClass, name: "link"},
				{kind: simplePseudo},
			},
		},
		{
			name:     "attribute selector",
			selector: `input[type="text"]`,
			want: []simpleSelector{
				{kind: simpleType, name: "input"},
				{kind: simpleAttr},
			},
		},
		{
			name:     "functional pseudo arguments are skipped",
			selector: ":not(.hidden)",
			want:     []simpleSelector{{kind: simplePseudo}},
		},
		{
			name:     "pseudo element",
			selector: ".icon::before",
			want: []simpleSelector{
				{kind: simpleClass, name: "icon"},
				{kind: simplePseudo},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decomposeSelector(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecomposeSelector_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		selector string
	}{
		{name: "empty", selector: ""},
		{name: "bare dot", selector: "."},
		{name: "double dot", selector: "..btn"},
		{name: "unterminated attribute", selector: "[data-x"},
		{name: "embedded comma", selector: ".a, .b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decomposeSelector(tt.selector)
			require.Error(t, err)
			assert.Equal(t, KindInvalidSelector, KindOf(err))
		})
	}
}

func TestSimpleSelectorMatchable(t *testing.T) {
	assert.True(t, simpleSelector{kind: simpleClass, name: "btn"}.matchable())
	assert.True(t, simpleSelector{kind: simpleID, name: "app"}.matchable())
	assert.True(t, simpleSelector{kind: simpleType, name: "div"}.matchable())
	assert.False(t, simpleSelector{kind: simpleUniversal}.matchable())
	assert.False(t, simpleSelector{kind: simpleAttr}.matchable())
	assert.False(t, simpleSelector{kind: simplePseudo}.matchable())
}
