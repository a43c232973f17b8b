package guard

import "testing"

func TestParseSkillFrontmatter(t *testing.T) {
	md := []byte("---\nname: pdf-tools\ndescription: \"Work with PDFs\"\n---\n\n# pdf-tools\n")
	fm, ok := parseSkillFrontmatter(md)
	if !ok {
		t.Fatal("expected frontmatter block")
	}
	if fm.Name != "pdf-tools" {
		t.Fatalf("unexpected name %q", fm.Name)
	}
	if fm.Description != "Work with PDFs" {
		t.Fatalf("unexpected description %q", fm.Description)
	}
}

func TestParseSkillFrontmatter_Missing(t *testing.T) {
	if _, ok := parseSkillFrontmatter([]byte("# no frontmatter\n")); ok {
		t.Fatal("expected no frontmatter")
	}
	if _, ok := parseSkillFrontmatter([]byte("---\nname: unterminated\n")); ok {
		t.Fatal("unterminated block must not parse")
	}
}

func TestSanitizeSkillName(t *testing.T) {
	cases := map[string]string{
		"My Cool Skill!":  "my-cool-skill",
		"  spaced  ":      "spaced",
		"UPPER_case.v2":   "upper_case.v2",
		"---edges---":     "edges",
		"weird/../chars":  "weird..chars",
		"":                "",
	}
	for in, want := range cases {
		if got := sanitizeSkillName(in); got != want {
			t.Errorf("sanitizeSkillName(%q) = %q, want %q", in, got, want)
		}
	}
}
