package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Package-level validator used by TrainSettings semantic validation.
var validate *validator.Validate

// metricNameRe matches one entry of a comma-separated metric list, e.g.
// "loss" or "bleu" in "loss,bleu".
var metricNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field errors under the config key name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("lr_decay", validateLRDecay); err != nil {
		panic(fmt.Errorf("register validator lr_decay: %w", err))
	}
	if err := validate.RegisterValidation("metric_list", validateMetricList); err != nil {
		panic(fmt.Errorf("register validator metric_list: %w", err))
	}
}

// TrainSettings is the typed view of a resolved [train] section. The yaml
// tags mirror the canonical defaults table; the validate tags implement
// the semantic checks that the dynamic section cannot express.
type TrainSettings struct {
	NumWorkers      int     `yaml:"num_workers" validate:"min=0"`
	PinMemory       bool    `yaml:"pin_memory"`
	Seed            int     `yaml:"seed" validate:"min=0"`
	GClip           float64 `yaml:"gclip" validate:"min=0"`
	L2Reg           float64 `yaml:"l2_reg" validate:"min=0"`
	Patience        int     `yaml:"patience" validate:"min=1"`
	Optimizer       string  `yaml:"optimizer" validate:"omitempty,oneof=adadelta sgd rmsprop adam"`
	LR              float64 `yaml:"lr" validate:"min=0"`
	LRDecay         any     `yaml:"lr_decay" validate:"lr_decay"`
	LRDecayRevert   bool    `yaml:"lr_decay_revert"`
	LRDecayFactor   float64 `yaml:"lr_decay_factor" validate:"gt=0,lte=1"`
	LRDecayPatience int     `yaml:"lr_decay_patience" validate:"min=0"`
	LRDecayMin      float64 `yaml:"lr_decay_min" validate:"min=0"`
	ModelType       string  `yaml:"model_type"`
	Momentum        float64 `yaml:"momentum" validate:"min=0,lte=1"`
	Nesterov        bool    `yaml:"nesterov"`
	DispFreq        int     `yaml:"disp_freq" validate:"min=1"`
	BatchSize       int     `yaml:"batch_size" validate:"min=1"`
	MaxEpochs       int     `yaml:"max_epochs" validate:"min=1"`
	MaxIterations   int     `yaml:"max_iterations" validate:"min=1"`
	EvalMetrics     string  `yaml:"eval_metrics" validate:"metric_list"`
	EvalFilters     string  `yaml:"eval_filters"`
	EvalBeam        int     `yaml:"eval_beam" validate:"min=1"`
	EvalBatchSize   int     `yaml:"eval_batch_size" validate:"min=1"`
	EvalFreq        int     `yaml:"eval_freq" validate:"min=0"`
	EvalMaxLen      int     `yaml:"eval_max_len" validate:"min=1"`
	EvalStart       int     `yaml:"eval_start" validate:"min=0"`
	EvalZero        bool    `yaml:"eval_zero"`
	SaveBestMetrics bool    `yaml:"save_best_metrics"`
	SavePath        string  `yaml:"save_path"`
	SaveOptimState  bool    `yaml:"save_optim_state"`
	CheckpointFreq  int     `yaml:"checkpoint_freq" validate:"min=0"`
	NCheckpoints    int     `yaml:"n_checkpoints" validate:"min=0"`
	TensorboardDir  string  `yaml:"tensorboard_dir"`
	PretrainedFile  string  `yaml:"pretrained_file"`
	FreezeLayers    string  `yaml:"freeze_layers"`
	HandleOOM       bool    `yaml:"handle_oom"`
}

// TrainSettings decodes the resolved [train] section into its typed form
// and runs semantic validation on it. Load has already guaranteed that
// every key is canonical, so the decode cannot drop values.
func (c *Config) TrainSettings() (*TrainSettings, error) {
	section, ok := c.sections["train"]
	if !ok {
		return nil, fmt.Errorf("%w: [train]", ErrMissingSection)
	}

	// Section values are dynamically typed, so a YAML round-trip does the
	// map-to-struct decode using the same tags as the snapshot format.
	data, err := yaml.Marshal(map[string]any(section))
	if err != nil {
		return nil, fmt.Errorf("failed to encode [train] section: %w", err)
	}
	var settings TrainSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode [train] section: %w", err)
	}

	if err := validate.Struct(&settings); err != nil {
		return nil, formatValidationError(err)
	}
	return &settings, nil
}

// validateLRDecay implements the "lr_decay" tag. The field is flexibly
// typed: a boolean disables (or requests) decay, while a string selects a
// schedule, of which only "plateau" exists. Empty string means unset.
func validateLRDecay(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case bool:
		return true
	case string:
		return v == "" || v == "plateau"
	case nil:
		return true
	default:
		return false
	}
}

// validateMetricList implements the "metric_list" tag for comma-separated
// metric names such as "loss,bleu". The first entry drives early stopping,
// so the list must not be empty.
func validateMetricList(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, name := range strings.Split(value, ",") {
		if !metricNameRe.MatchString(strings.TrimSpace(name)) {
			return false
		}
	}
	return true
}

// formatValidationError renders go-playground/validator errors as concise,
// user-facing text.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fieldError := range validationErrors {
		messages = append(messages, formatFieldError(fieldError))
	}
	return fmt.Errorf("train settings validation failed:\n  - %s",
		strings.Join(messages, "\n  - "))
}

// formatFieldError creates user-friendly error messages for field
// validation failures.
func formatFieldError(fieldError validator.FieldError) string {
	key := fieldError.Field()
	tag := fieldError.Tag()
	param := fieldError.Param()
	value := fieldError.Value()

	switch tag {
	case "min":
		return fmt.Sprintf("'%s' must be at least %s, got '%v'", key, param, value)
	case "gt":
		return fmt.Sprintf("'%s' must be greater than %s, got '%v'", key, param, value)
	case "lte":
		return fmt.Sprintf("'%s' must be at most %s, got '%v'", key, param, value)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got '%v'", key, param, value)
	case "lr_decay":
		return fmt.Sprintf("'%s' must be a boolean or 'plateau', got '%v'", key, value)
	case "metric_list":
		return fmt.Sprintf("'%s' must be a comma-separated list of metric names, got '%v'", key, value)
	default:
		return fmt.Sprintf("'%s' failed validation '%s', got '%v'", key, tag, value)
	}
}
