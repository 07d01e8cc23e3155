package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"path"
	"strings"
	"text/template"

	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/errors"
)

const (
	HuskyDir = ".husky"

	PreCommitPath       = HuskyDir + "/pre-commit"
	CommitMsgPath       = HuskyDir + "/commit-msg"
	CommitMsgScriptPath = HuskyDir + "/commit-msg.cjs"

	PrettierConfigPath = ".prettierrc"
	PrettierIgnorePath = ".prettierignore"
	ESLintConfigPath   = "eslint.config.js"
	ESLintConfigMJS    = "eslint.config.mjs"

	ExecutableMode = 0o755
	RegularMode    = 0o644
)

// File is a generated file, relative to the project root.
type File struct {
	Path    string
	Content string
	Mode    uint32
}

// IsHook reports whether the file lives in the hooks directory.
func (f File) IsHook() bool {
	return path.Dir(f.Path) == HuskyDir
}

// IgnorePatterns is the list pre-commit and eslint skip: node_modules, the
// hooks directory, then the framework's build outputs.
func IgnorePatterns(framework []string) []string {
	patterns := make([]string, 0, len(framework)+2)
	patterns = append(patterns, "node_modules", HuskyDir)
	return append(patterns, framework...)
}

// PreCommitHook renders .husky/pre-commit. ok is false when neither tool is
// enabled, in which case husky's own default hook is left in place.
func PreCommitHook(prettier, eslint bool, ignore []string) (f File, ok bool) {
	if !prettier && !eslint {
		return File{}, false
	}

	var b strings.Builder
	if prettier {
		b.WriteString("npx prettier --write . --ignore-path .gitignore || true\n")
		b.WriteString("git add .\n")
	}
	if eslint {
		flags := make([]string, 0, len(ignore))
		for _, p := range ignore {
			flags = append(flags, `--ignore-pattern "`+p+`"`)
		}
		b.WriteString("npx eslint . --fix")
		if len(flags) > 0 {
			b.WriteString(" " + strings.Join(flags, " "))
		}
		b.WriteString(" || true\n")
		b.WriteString("git add .\n")
	}

	return File{Path: PreCommitPath, Content: b.String(), Mode: ExecutableMode}, true
}

// CommitMsgHooks renders the Node rewriting script and the shell hook that
// calls it.
func CommitMsgHooks(table commitmsg.StyleTable) ([]File, error) {
	script, err := commitmsg.RenderScript(table)
	if err != nil {
		return nil, err
	}
	return []File{
		{Path: CommitMsgScriptPath, Content: script, Mode: RegularMode},
		{Path: CommitMsgPath, Content: "node " + CommitMsgScriptPath + " $1\n", Mode: ExecutableMode},
	}, nil
}

type prettierConfig struct {
	Semi          bool   `json:"semi"`
	SingleQuote   bool   `json:"singleQuote"`
	TrailingComma string `json:"trailingComma"`
	TabWidth      int    `json:"tabWidth"`
	PrintWidth    int    `json:"printWidth"`
}

var defaultPrettierConfig = prettierConfig{
	Semi:          true,
	SingleQuote:   true,
	TrailingComma: "es5",
	TabWidth:      2,
	PrintWidth:    80,
}

// PrettierFiles renders .prettierrc and .prettierignore.
func PrettierFiles(framework []string) ([]File, error) {
	rc, err := json.MarshalIndent(defaultPrettierConfig, "", "  ")
	if err != nil {
		return nil, errors.ErrTemplateRender.WithError(err).WithContext("template", PrettierConfigPath)
	}

	ignore := []string{"node_modules", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb"}
	ignore = append(ignore, framework...)

	return []File{
		{Path: PrettierConfigPath, Content: string(rc), Mode: RegularMode},
		{Path: PrettierIgnorePath, Content: strings.Join(ignore, "\n") + "\n", Mode: RegularMode},
	}, nil
}

//go:embed templates/eslint.config.js.tmpl
var eslintSource string

var eslintTemplate = template.Must(template.New(ESLintConfigPath).Parse(eslintSource))

// ESLintConfig renders a flat eslint.config.js ignoring the given patterns.
func ESLintConfig(ignore []string) (File, error) {
	ignores, err := jsonArray(ignore)
	if err != nil {
		return File{}, errors.ErrTemplateRender.WithError(err).WithContext("template", ESLintConfigPath)
	}

	var buf bytes.Buffer
	if err := eslintTemplate.Execute(&buf, struct{ Ignores string }{ignores}); err != nil {
		return File{}, errors.ErrTemplateRender.WithError(err).WithContext("template", ESLintConfigPath)
	}
	return File{Path: ESLintConfigPath, Content: buf.String(), Mode: RegularMode}, nil
}

// jsonArray encodes values compactly without HTML escaping, matching what
// JSON.stringify produces.
func jsonArray(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
