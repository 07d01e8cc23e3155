package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypePrecondition  ErrorType = "PRECONDITION"
	TypeCommand       ErrorType = "COMMAND"
	TypeFilesystem    ErrorType = "FILESYSTEM"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeCancelled     ErrorType = "CANCELLED"
	TypeInternal      ErrorType = "INTERNAL"
	TypeUpdate        ErrorType = "UPDATE"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if output, ok := e.Context["output"].(string); ok && output != "" {
			msg += fmt.Sprintf(" - %s", output)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same type and message, so
// refined copies made with WithError/WithContext still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Precondition errors
var (
	ErrNotInGitRepo = NewAppError(TypePrecondition, "Git repository not found", nil).
			WithSuggestion("Husky requires a Git repository to work. Run these commands first:\n   git init\n   husky-installer")

	ErrManifestMissing = NewAppError(TypePrecondition, "package.json not found", nil).
				WithSuggestion("This tool requires a Node.js project. Run these commands first:\n   npm init -y\n   husky-installer")

	ErrManifestInvalid = NewAppError(TypePrecondition, "package.json is not valid JSON", nil).
				WithSuggestion("Fix the syntax of package.json and run the installer again")
)

// Command errors
var (
	ErrCommandFailed = NewAppError(TypeCommand, "External command failed", nil)

	ErrCommandNotFound = NewAppError(TypeCommand, "External command not found", nil).
				WithSuggestion("Make sure you have the required tools installed:\n   Node.js >= 18.0.0\n   Git\n   npm/yarn/pnpm/bun")

	ErrInstallDependencies = NewAppError(TypeCommand, "Failed to install dependencies", nil).
				WithSuggestion("Check your network connection and package manager, then run the installer again")

	ErrHuskyInit = NewAppError(TypeCommand, "Failed to initialize Husky", nil).
			WithSuggestion("Run it manually to see the full output: npx husky init")

	ErrRegisterScripts = NewAppError(TypeCommand, "Failed to add Husky control scripts to package.json", nil).
				WithSuggestion("Add them manually:\n   npm pkg set scripts.husky:disable=\"git config core.hooksPath /dev/null\"\n   npm pkg set scripts.husky:enable=\"git config core.hooksPath .husky\"")

	ErrGetRepoRoot = NewAppError(TypeCommand, "Failed to get repository root", nil).
			WithSuggestion("Make sure you are inside a git repository")
)

// Filesystem errors
var (
	ErrWriteHook = NewAppError(TypeFilesystem, "Failed to write git hook", nil).
			WithSuggestion("Check that you have write permissions on the hooks directory")

	ErrWriteConfig = NewAppError(TypeFilesystem, "Failed to write configuration file", nil).
			WithSuggestion("Check that you have write permissions on the project directory")

	ErrReadCommitMessage = NewAppError(TypeFilesystem, "Failed to read commit message", nil)

	ErrWriteCommitMessage = NewAppError(TypeFilesystem, "Failed to write commit message", nil)
)

// Configuration errors
var (
	ErrInvalidStyle = NewAppError(TypeConfiguration, "Unknown commit prefix style", nil).
			WithSuggestion("Use one of: emoji, shortcode, tag")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is not valid", nil).
				WithSuggestion("Review it with: husky-installer config show")

	ErrUnknownConfigKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Valid keys: language, commit_style, prettier, eslint, commit_prefix")

	ErrUnsupportedShell = NewAppError(TypeConfiguration, "Shell not supported for completion", nil).
				WithSuggestion("Print the script yourself:\n   husky-installer completion bash\n   husky-installer completion zsh")
)

// ErrCancelled is returned when the user aborts the interactive flow. It is
// not a failure: the process exits with status 0.
var ErrCancelled = NewAppError(TypeCancelled, "Installation cancelled", nil)

// Update errors
var (
	ErrUpdateCheck = NewAppError(TypeUpdate, "Failed to check for updates", nil)
)

var (
	ErrTemplateRender = NewAppError(TypeInternal, "Failed to render template", nil)
)
