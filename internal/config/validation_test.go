package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownTrainKeys(t *testing.T) {
	t.Run("typo gets a suggestion", func(t *testing.T) {
		path := writeConfig(t, "[train]\nlr_decya = True\n\n[model]\ndim = 1")
		_, err := Load(path, nil)
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 1)

		d := result.Diagnostics[0]
		assert.Equal(t, path, d.File)
		assert.Equal(t, "train", d.Section)
		assert.Equal(t, "lr_decya", d.Key)
		assert.Equal(t, "lr_decay", d.Suggestion)
		assert.Contains(t, d.Message(), "Unknown option 'lr_decya'.")
		assert.Contains(t, d.Message(), "Did you mean 'lr_decay' ?")
	})

	t.Run("every unknown key is reported at once", func(t *testing.T) {
		path := writeConfig(t, "[train]\nbatch_sze = 8\nlr_decya = True\nmax_epoch = 2\n\n[model]\ndim = 1")
		_, err := Load(path, nil)
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 3)

		// Diagnostics come back sorted by key.
		assert.Equal(t, "batch_sze", result.Diagnostics[0].Key)
		assert.Equal(t, "lr_decya", result.Diagnostics[1].Key)
		assert.Equal(t, "max_epoch", result.Diagnostics[2].Key)
		assert.Equal(t, "batch_size", result.Diagnostics[0].Suggestion)
		assert.Equal(t, "max_epochs", result.Diagnostics[2].Suggestion)
	})

	t.Run("unknown override key is caught too", func(t *testing.T) {
		path := writeConfig(t, "[train]\nseed = 1\n\n[model]\ndim = 1")
		_, err := Load(path, []string{"train.optimzer:sgd"})
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, "optimzer", result.Diagnostics[0].Key)
		assert.Equal(t, "optimizer", result.Diagnostics[0].Suggestion)
	})

	t.Run("dissimilar key gets no suggestion", func(t *testing.T) {
		path := writeConfig(t, "[train]\nzzqxwv = 1\n\n[model]\ndim = 1")
		_, err := Load(path, nil)
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 1)
		assert.Empty(t, result.Diagnostics[0].Suggestion)
		assert.NotContains(t, result.Diagnostics[0].Message(), "Did you mean")
	})

	t.Run("override section typo gets a suggestion", func(t *testing.T) {
		path := writeConfig(t, "[train]\nseed = 1\n\n[model]\ndim = 1")
		_, err := Load(path, []string{"modle.dropout:0.5"})
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 1)

		d := result.Diagnostics[0]
		assert.Equal(t, "modle", d.Section)
		assert.Empty(t, d.Key)
		assert.Equal(t, "model", d.Suggestion)
		assert.Contains(t, d.Message(), "Unknown section 'modle' in overrides.")
		assert.Contains(t, d.Message(), "Did you mean 'model' ?")
	})

	t.Run("section typos and key typos are reported together", func(t *testing.T) {
		path := writeConfig(t, "[train]\nlr_decya = True\n\n[model]\ndim = 1")
		_, err := Load(path, []string{"modle.dropout:0.5"})
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 2)
		assert.Equal(t, "modle", result.Diagnostics[0].Section)
		assert.Equal(t, "lr_decya", result.Diagnostics[1].Key)
	})

	t.Run("restored configs reject unknown override sections too", func(t *testing.T) {
		path := writeConfig(t, "[train]\nseed = 1\n\n[model]\ndim = 1")
		cfg, err := Load(path, nil)
		require.NoError(t, err)

		_, err = FromMap(cfg.ToMap(), []string{"tranin.seed:2"})
		require.Error(t, err)

		var result *ValidationResult
		require.True(t, errors.As(err, &result))
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, "tranin", result.Diagnostics[0].Section)
		assert.Equal(t, "train", result.Diagnostics[0].Suggestion)
	})

	t.Run("model and tasks keys are not checked", func(t *testing.T) {
		path := writeConfig(t, "[train]\nseed = 1\n\n[model]\nanything_goes = 1\n\n[tasks.a]\nalso_free = 1")
		_, err := Load(path, nil)
		assert.NoError(t, err)
	})

	t.Run("error text joins one message per diagnostic", func(t *testing.T) {
		path := writeConfig(t, "[train]\nbatch_sze = 8\nlr_decya = True\n\n[model]\ndim = 1")
		_, err := Load(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'batch_sze'")
		assert.Contains(t, err.Error(), "'lr_decya'")
	})
}
