package themecolor

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want HeaderColorMap
	}{
		{
			name: "custom property",
			css:  `body { --h1-color: #ff0000; }`,
			want: HeaderColorMap{1: "#ff0000"},
		},
		{
			name: "custom property wins over selector rule",
			css: `.markdown-preview-view h2 { color: blue }
				:root { --h1-color: #ff0000; }`,
			want: HeaderColorMap{1: "#ff0000"},
		},
		{
			name: "direct selector fallback",
			css:  `.markdown-preview-view h2{color:blue}`,
			want: HeaderColorMap{2: "blue"},
		},
		{
			name: "cm-header selector",
			css:  `.cm-s-obsidian .cm-header-3, .other { font-weight: bold; color: var(--text-accent); }`,
			want: HeaderColorMap{3: "var(--text-accent)"},
		},
		{
			name: "rule without color is skipped",
			css:  `.markdown-preview-view h4 { background-color: red } .markdown-preview-view h5 { color: teal }`,
			want: HeaderColorMap{5: "teal"},
		},
		{
			name: "levels outside range ignored",
			css:  `body { --h0-color: red; --h7-color: blue; --h9-color: green; --h2-color: rgb(1, 2, 3); }`,
			want: HeaderColorMap{2: "rgb(1, 2, 3)"},
		},
		{
			name: "important stripped",
			css:  `body { --h1-color: red !important; }`,
			want: HeaderColorMap{1: "red"},
		},
		{
			name: "later declaration overwrites",
			css:  `.theme-dark { --h1-color: white; } .theme-light { --h1-color: black; }`,
			want: HeaderColorMap{1: "black"},
		},
		{
			name: "no matches",
			css:  `h1 { color: red } .markdown-preview-view p { color: blue }`,
			want: HeaderColorMap{},
		},
		{
			name: "empty",
			css:  ``,
			want: HeaderColorMap{},
		},
		{
			name: "descendant of heading is not the heading",
			css:  `.markdown-preview-view h2 a { color: blue }`,
			want: HeaderColorMap{},
		},
		{
			name: "element inside cm-header is not the heading",
			css:  `.cm-header-1 .cm-formatting { color: gray }`,
			want: HeaderColorMap{},
		},
		{
			name: "tag inside heading is not the heading",
			css:  `.markdown-preview-view h3 .tag { color: green } .theme-light .markdown-preview-view h4 { color: navy }`,
			want: HeaderColorMap{4: "navy"},
		},
		{
			name: "heading later in selector list",
			css:  `.markdown-preview-view h5 em, .markdown-preview-view h5 { color: olive }`,
			want: HeaderColorMap{5: "olive"},
		},
		{
			name: "inside media query",
			css:  `@media screen { .theme-light { --h6-color: #666; } }`,
			want: HeaderColorMap{6: "#666"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.css)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractStopsAfterSixMatches(t *testing.T) {
	// Eight matches: the seventh and eighth must not be seen, so level 1
	// keeps its first value and level 2 is never overwritten.
	css := `:root {
		--h1-color: a; --h2-color: b; --h3-color: c;
		--h4-color: d; --h5-color: e; --h6-color: f;
		--h1-color: late; --h2-color: late;
	}`
	want := HeaderColorMap{1: "a", 2: "b", 3: "c", 4: "d", 5: "e", 6: "f"}
	if got := Extract(css); !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractDuplicatesCountTowardsLimit(t *testing.T) {
	css := `.a { --h1-color: 1; } .b { --h1-color: 2; } .c { --h1-color: 3; }
		.d { --h1-color: 4; } .e { --h1-color: 5; } .f { --h1-color: 6; }
		.g { --h2-color: never; }`
	want := HeaderColorMap{1: "6"}
	if got := Extract(css); !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}
