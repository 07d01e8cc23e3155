package preview

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "husky-installer",
		Writer:   &out,
		Commands: []*cli.Command{NewPreviewCommandFactory().CreateCommand(trans, cfg)},
	}
	err = app.Run(context.Background(), append([]string{"husky-installer", "preview"}, args...))
	return out.String(), err
}

func TestPreviewCommand(t *testing.T) {
	t.Run("should preview the configured style", func(t *testing.T) {
		out, err := run(t, config.DefaultConfig())

		require.NoError(t, err)
		assert.Contains(t, out, "Commit Prefix Examples")
		assert.Contains(t, out, "🚀 feat: add login")
		assert.Contains(t, out, "🔖")
	})

	t.Run("should preview the style given by flag", func(t *testing.T) {
		out, err := run(t, config.DefaultConfig(), "--style", "shortcode")

		require.NoError(t, err)
		assert.Contains(t, out, ":bug: fix: button bug")
		assert.Contains(t, out, ":white_check_mark:")
	})

	t.Run("should reject an unknown style", func(t *testing.T) {
		_, err := run(t, config.DefaultConfig(), "--style", "nope")

		assert.ErrorIs(t, err, errors.ErrInvalidStyle)
	})
}
