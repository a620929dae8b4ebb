package config

// defaultEntry pairs a canonical [train] key with its default value.
// The slice below is the single source of truth for key order, which keeps
// dumps and serialized snapshots deterministic.
type defaultEntry struct {
	key   string
	value any
}

// trainDefaults is the canonical table of recognized [train] keys. Any
// [train] key outside this table is rejected by the validator.
var trainDefaults = []defaultEntry{
	{"num_workers", 0},           // number of workers for data loading (0=disabled)
	{"pin_memory", false},        // pin_memory for DataLoader
	{"seed", 0},                  // > 0 to reproduce a previous experiment
	{"gclip", 5.0},               // clip gradients above this norm
	{"l2_reg", 0.0},              // L2 penalty factor
	{"patience", 20},             // early stopping patience
	{"optimizer", "adam"},        // adadelta, sgd, rmsprop, adam
	{"lr", 0.0004},               // 0 -> optimizer's own default
	{"lr_decay", false},          // can only be 'plateau' for now
	{"lr_decay_revert", false},   // return to the prev best weights after decay
	{"lr_decay_factor", 0.1},     //
	{"lr_decay_patience", 10},    //
	{"lr_decay_min", 0.000001},   //
	{"model_type", ""},           // name of the model class to train
	{"momentum", 0.0},            // momentum for SGD
	{"nesterov", false},          // enable Nesterov for SGD
	{"disp_freq", 30},            // training display frequency (/batch)
	{"batch_size", 32},           // training batch size
	{"max_epochs", 100},          // max number of epochs to train
	{"max_iterations", 1000000},  // max number of updates to train
	{"eval_metrics", "loss"},     // comma sep. metrics, 1st -> early stopping
	{"eval_filters", ""},         // comma sep. filters applied to refs/hyps
	{"eval_beam", 6},             // validation beam size
	{"eval_batch_size", 16},      // batch size for beam search
	{"eval_freq", 3000},          // 0 means end of epochs
	{"eval_max_len", 200},        // max seq len before stopping beam search
	{"eval_start", 1},            // epoch at which validation starts
	{"eval_zero", false},         // evaluate once before training starts
	{"save_best_metrics", true},  // save best models for each eval metric
	{"save_path", ""},            // root experiment folder
	{"save_optim_state", false},  // save optimizer state into checkpoints
	{"checkpoint_freq", 5000},    // periodic checkpoint frequency
	{"n_checkpoints", 5},         // number of checkpoints to keep
	{"tensorboard_dir", ""},      // enable tensorboard under this folder
	{"pretrained_file", ""},      // checkpoint file to initialize layers from
	{"freeze_layers", ""},        // comma sep. layer prefixes to freeze
	{"handle_oom", false},        // skip out-of-memory batches
}

// TrainDefaults returns a fresh copy of the canonical [train] defaults.
// Callers may mutate the returned section freely; the table itself is
// never exposed.
func TrainDefaults() Section {
	section := make(Section, len(trainDefaults))
	for _, entry := range trainDefaults {
		section[entry.key] = entry.value
	}
	return section
}

// TrainDefaultKeys returns the canonical [train] keys in table order.
func TrainDefaultKeys() []string {
	keys := make([]string, len(trainDefaults))
	for i, entry := range trainDefaults {
		keys[i] = entry.key
	}
	return keys
}

// trainDefaultText returns the textual form of a default, for use by the
// interpolation pass when a placeholder references a [train] key the file
// itself does not set.
func trainDefaultText(key string) (string, bool) {
	for _, entry := range trainDefaults {
		if entry.key == key {
			return formatValue(entry.value), true
		}
	}
	return "", false
}
