package styles

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/porticus-lab/vaultprint/internal/cssparse"
	"github.com/porticus-lab/vaultprint/internal/logging"
	"github.com/porticus-lab/vaultprint/internal/settings"
)

func TestGenerateOneRulePerHeading(t *testing.T) {
	s := settings.Defaults()
	s.FontSize = "13px"
	s.H2Size = "2em"
	s.H5Color = "not a color at all"

	css := Generate(s, Inputs{})
	for level := 1; level <= settings.Levels; level++ {
		re := regexp.MustCompile(fmt.Sprintf(`\.obsidian-print h%d \{ font-size: ([^;]+); color: ([^;]+); \}`, level))
		matches := re.FindAllStringSubmatch(css, -1)
		if len(matches) != 1 {
			t.Fatalf("h%d: %d rules, want 1\n%s", level, len(matches), css)
		}
		if got := matches[0][1]; got != s.HeadingSize(level) {
			t.Errorf("h%d size = %q, want %q", level, got, s.HeadingSize(level))
		}
		if got := matches[0][2]; got != s.HeadingColor(level) {
			t.Errorf("h%d color = %q, want %q", level, got, s.HeadingColor(level))
		}
	}
	if !strings.HasPrefix(css, ".obsidian-print { font-size: 13px; }\n") {
		t.Errorf("body rule missing or not first:\n%s", css)
	}
}

func TestGenerateParsesBack(t *testing.T) {
	css := Generate(settings.Defaults(), Inputs{Base: DefaultBase})
	count := make(map[string]int)
	for _, r := range cssparse.Parse(css) {
		for _, sel := range r.Selectors {
			if _, ok := r.Get("color"); ok && regexp.MustCompile(`^\.obsidian-print h[1-6]$`).MatchString(sel) {
				count[sel]++
			}
		}
	}
	for level := 1; level <= settings.Levels; level++ {
		sel := fmt.Sprintf(".obsidian-print h%d", level)
		if count[sel] != 1 {
			t.Errorf("%s has %d color rules, want 1", sel, count[sel])
		}
	}
}

func TestGenerateHRPageBreaks(t *testing.T) {
	s := settings.Defaults()
	const rule = ".obsidian-print hr { page-break-before: always; border: none; }"
	if strings.Contains(Generate(s, Inputs{}), rule) {
		t.Error("hr rule present with hrPageBreaks off")
	}
	s.HRPageBreaks = true
	if !strings.Contains(Generate(s, Inputs{}), rule) {
		t.Error("hr rule missing with hrPageBreaks on")
	}
}

func TestGenerateOrder(t *testing.T) {
	css := Generate(settings.Defaults(), Inputs{
		Base:      "/*base*/",
		Highlight: "/*highlight*/",
		Snippet:   "/*snippet*/",
	})
	h6 := strings.Index(css, "h6 {")
	base := strings.Index(css, "/*base*/")
	hl := strings.Index(css, "/*highlight*/")
	snip := strings.Index(css, "/*snippet*/")
	if !(h6 < base && base < hl && hl < snip) {
		t.Errorf("unexpected order h6=%d base=%d highlight=%d snippet=%d", h6, base, hl, snip)
	}
}

type fakeSource struct {
	pluginDir  string
	base       string
	baseErr    error
	hasSnippet bool
	enabled    bool
	enabledErr error
	snippet    string
}

func (f fakeSource) PluginDir() string { return f.pluginDir }

func (f fakeSource) ReadPluginFile(name string) (string, error) {
	if name != BaseFileName {
		return "", errors.New("unexpected file " + name)
	}
	return f.base, f.baseErr
}

func (f fakeSource) HasSnippet(string) bool { return f.hasSnippet }

func (f fakeSource) SnippetEnabled(string) (bool, error) { return f.enabled, f.enabledErr }

func (f fakeSource) SnippetCSS(string) (string, error) { return f.snippet, nil }

func TestGeneratorInputs(t *testing.T) {
	tests := []struct {
		name        string
		src         fakeSource
		wantIn      []string
		wantOut     []string
		wantNotices []string
	}{
		{
			name:    "base and enabled snippet",
			src:     fakeSource{pluginDir: "/p", base: "/*base*/", hasSnippet: true, enabled: true, snippet: "/*user*/"},
			wantIn:  []string{"/*base*/", "/*user*/"},
			wantOut: nil,
		},
		{
			name:    "disabled snippet",
			src:     fakeSource{pluginDir: "/p", base: "/*base*/", hasSnippet: true, enabled: false, snippet: "/*user*/"},
			wantIn:  []string{"/*base*/"},
			wantOut: []string{"/*user*/"},
		},
		{
			name:    "enabled but missing snippet",
			src:     fakeSource{pluginDir: "/p", base: "/*base*/", hasSnippet: false, enabled: true, snippet: "/*user*/"},
			wantOut: []string{"/*user*/"},
		},
		{
			name:        "unreadable base",
			src:         fakeSource{pluginDir: "/p", baseErr: errors.New("gone")},
			wantNotices: []string{NoticeNoBase},
		},
		{
			name:        "no plugin dir",
			src:         fakeSource{base: "/*base*/"},
			wantOut:     []string{"/*base*/"},
			wantNotices: []string{NoticeNoPluginPath},
		},
		{
			name:    "snippet state unreadable",
			src:     fakeSource{pluginDir: "/p", hasSnippet: true, enabledErr: errors.New("bad json"), snippet: "/*user*/"},
			wantOut: []string{"/*user*/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec logging.Recorder
			css := NewGenerator(tt.src, &rec).Generate(settings.Defaults())
			for _, s := range tt.wantIn {
				if !strings.Contains(css, s) {
					t.Errorf("missing %q", s)
				}
			}
			for _, s := range tt.wantOut {
				if strings.Contains(css, s) {
					t.Errorf("unexpected %q", s)
				}
			}
			got := rec.Notices()
			if len(got) != len(tt.wantNotices) {
				t.Fatalf("notices = %q, want %q", got, tt.wantNotices)
			}
			for i := range got {
				if got[i] != tt.wantNotices[i] {
					t.Errorf("notice %d = %q, want %q", i, got[i], tt.wantNotices[i])
				}
			}
			if !strings.Contains(css, ".obsidian-print h1 {") {
				t.Error("heading rules missing")
			}
		})
	}
}

func TestGeneratorHighlight(t *testing.T) {
	var rec logging.Recorder
	g := NewGenerator(fakeSource{pluginDir: "/p"}, &rec, WithHighlight(".chroma { color: red }"))
	if css := g.Generate(settings.Defaults()); !strings.Contains(css, ".chroma { color: red }") {
		t.Errorf("highlight css missing:\n%s", css)
	}
}

func TestDefaultBaseHasNoHeadingColors(t *testing.T) {
	for _, r := range cssparse.Parse(DefaultBase) {
		if _, ok := r.Get("color"); !ok {
			continue
		}
		for _, sel := range r.Selectors {
			if regexp.MustCompile(`h[1-6]$`).MatchString(sel) {
				t.Errorf("default stylesheet colors %s", sel)
			}
		}
	}
}
