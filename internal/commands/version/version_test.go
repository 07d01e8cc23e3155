package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/urfave/cli/v3"
)

func TestVersionCommand(t *testing.T) {
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "husky-installer",
		Writer:   &out,
		Commands: []*cli.Command{NewVersionCommandFactory("1.2.0").CreateCommand(trans, config.DefaultConfig())},
	}

	require.NoError(t, app.Run(context.Background(), []string{"husky-installer", "version"}))
	assert.Equal(t, "husky-installer 1.2.0\n", out.String())
}
