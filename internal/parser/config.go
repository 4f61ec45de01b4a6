package parser

import (
	"regexp"
	"strconv"

	"github.com/nao1215/logmetrics/internal/model"
)

// ConfigKey is a hyperparameter name recognized in log text.
type ConfigKey struct {
	Name string
	Kind model.NumericKind
}

// ConfigKeys is the table of recognized hyperparameters.
// Adding a key here is all that is needed to extract it.
var ConfigKeys = []ConfigKey{
	{Name: "d_model", Kind: model.KindInt},
	{Name: "n_layers", Kind: model.KindInt},
	{Name: "max_seq_len", Kind: model.KindInt},
	{Name: "vocab_size", Kind: model.KindInt},
	{Name: "lr", Kind: model.KindFloat},
	{Name: "max_steps", Kind: model.KindInt},
	{Name: "batch_size", Kind: model.KindInt},
}

type configPattern struct {
	key   ConfigKey
	regex *regexp.Regexp
}

var configPatterns = compileConfigPatterns(ConfigKeys)

func compileConfigPatterns(keys []ConfigKey) []configPattern {
	patterns := make([]configPattern, len(keys))
	for i, key := range keys {
		class := intClass
		if key.Kind == model.KindFloat {
			class = floatClass
		}
		patterns[i] = configPattern{
			key:   key,
			regex: regexp.MustCompile(regexp.QuoteMeta(key.Name) + `: ` + capture(class)),
		}
	}
	return patterns
}

// ExtractConfig searches text for the first "key: value" occurrence of every
// known key. The search is not anchored to a block or to line starts. Keys
// without a match, or whose value does not parse, are left out of the map.
func ExtractConfig(text string) model.ConfigMap {
	config := make(model.ConfigMap)

	for _, p := range configPatterns {
		m := p.regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch p.key.Kind {
		case model.KindInt:
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			config[p.key.Name] = model.IntValue(v)
		case model.KindFloat:
			v, ok := parseFinite(m[1])
			if !ok {
				continue
			}
			config[p.key.Name] = model.FloatValue(v)
		}
	}

	return config
}
