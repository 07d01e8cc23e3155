package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should create translations from the embedded locales", func(t *testing.T) {
		trans, err := NewTranslations("en", "")

		require.NoError(t, err)
		assert.Equal(t, "en", trans.Language())
		assert.ElementsMatch(t, []string{"en", "es"}, trans.SupportedLanguages())
	})

	t.Run("should load extra locale files from a directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[HelloWorld]
		other = "¡Hola Mundo!"
		`)

		trans, err := NewTranslations("es", tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "¡Hola Mundo!", trans.GetMessage("HelloWorld", 0, nil))
	})

	t.Run("should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("", t.TempDir())

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("should fail on a malformed locale file", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `[Broken`)

		_, err := NewTranslations("es", tmpDir)

		assert.Error(t, err)
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should change to a valid language", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		require.NoError(t, err)

		err = trans.SetLanguage("es")

		assert.NoError(t, err)
		assert.Equal(t, "es", trans.Language())
		assert.Equal(t, "Instalación cancelada.", trans.GetMessage("install.cancelled", 0, nil))
	})

	t.Run("should fail with unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("es", "")
		require.NoError(t, err)

		err = trans.SetLanguage("fr")

		assert.Error(t, err)
		assert.Equal(t, "es", trans.Language())
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("should pick singular and plural forms", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[Welcome]
		one = "Bienvenido"
		other = "Bienvenidos"`)

		trans, err := NewTranslations("es", tmpDir)
		require.NoError(t, err)

		assert.Equal(t, "Bienvenido", trans.GetMessage("Welcome", 1, nil))
		assert.Equal(t, "Bienvenidos", trans.GetMessage("Welcome", 2, nil))
	})

	t.Run("should render template data", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		require.NoError(t, err)

		result := trans.GetMessage("detect.package_manager", 0, map[string]interface{}{"Name": "pnpm"})

		assert.Equal(t, "Package manager: pnpm", result)
	})

	t.Run("should fall back to English for untranslated languages", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.fr.toml", `
		[Only]
		other = "Seulement"`)

		trans, err := NewTranslations("fr", tmpDir)
		require.NoError(t, err)

		assert.Equal(t, "Installation cancelled.", trans.GetMessage("install.cancelled", 0, nil))
	})

	t.Run("should fall back to English for a message the active language lacks", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.en.toml", `
		[OnlyEnglish]
		other = "Only in English {{.Name}}"`)

		trans, err := NewTranslations("es", tmpDir)
		require.NoError(t, err)

		assert.Equal(t, "Only in English pnpm", trans.GetMessage("OnlyEnglish", 0, map[string]interface{}{"Name": "pnpm"}))
		assert.Equal(t, "Instalación cancelada.", trans.GetMessage("install.cancelled", 0, nil))
	})

	t.Run("should report missing messages", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		require.NoError(t, err)

		assert.Equal(t, "Translation missing: NonExistent", trans.GetMessage("NonExistent", 1, nil))
	})
}

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}
