package guard

import (
	"regexp"
	"strings"
)

var (
	frontmatterNameExpr = regexp.MustCompile(`(?m)^name:\s*([a-zA-Z0-9_.-]+)\s*$`)
	frontmatterDescExpr = regexp.MustCompile(`(?m)^description:\s*(.+)\s*$`)
)

type skillFrontmatter struct {
	Name        string
	Description string
}

func parseSkillFrontmatter(skillMD []byte) (skillFrontmatter, bool) {
	text := string(skillMD)
	if !strings.HasPrefix(text, "---\n") {
		return skillFrontmatter{}, false
	}
	end := strings.Index(text[4:], "\n---")
	if end < 0 {
		return skillFrontmatter{}, false
	}
	block := text[4 : 4+end]
	var out skillFrontmatter
	if nameMatch := frontmatterNameExpr.FindStringSubmatch(block); len(nameMatch) >= 2 {
		out.Name = sanitizeSkillName(nameMatch[1])
	}
	if descMatch := frontmatterDescExpr.FindStringSubmatch(block); len(descMatch) >= 2 {
		out.Description = strings.TrimSpace(descMatch[1])
		out.Description = strings.Trim(out.Description, `"'`)
	}
	return out, true
}

func sanitizeSkillName(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, " ", "-")
	var out strings.Builder
	for _, r := range v {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			out.WriteRune(r)
		}
	}
	return strings.Trim(out.String(), "-_.")
}
