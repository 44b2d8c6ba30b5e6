package config

import (
	"bytes"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wayneeseguin/debugkit/pkg/formatters"
	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// ErrInvalidConfig is returned when a configuration document fails validation
var ErrInvalidConfig = errors.New("invalid debug configuration")

// Format keys accepted in the format section
const (
	KeyPrefix           = "prefix"
	KeyLabelSeparator   = "label_separator"
	KeyMessageSeparator = "message_separator"
	KeyTerminator       = "terminator"
)

// validate is a package-level validator instance reporting yaml field names.
var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// TopicSpec declares one topic
type TopicSpec struct {
	Level int    `yaml:"level" validate:"gte=0,lte=63"`
	Label string `yaml:"label" validate:"required"`
}

// File is a parsed configuration document:
//
//	topics:
//	  - {level: 0, label: info}
//	  - {level: 2, label: error}
//	debug: [error]
//	format:
//	  prefix: dbg
//	  label_separator: null
//
// A null format value omits that token; an absent key keeps the default.
type File struct {
	Topics []TopicSpec        `yaml:"topics" validate:"dive"`
	Debug  []string           `yaml:"debug" validate:"dive,required"`
	Format map[string]*string `yaml:"format" validate:"dive,keys,oneof=prefix label_separator message_separator terminator,endkeys"`
}

// DefaultTopics returns the topics used when a document declares none:
// info(0), warning(1), error(2), critical(3) and the catch-all all(63).
func DefaultTopics() []topics.Topic {
	return []topics.Topic{
		topics.MustLabeled(0, "info"),
		topics.MustLabeled(1, "warning"),
		topics.MustLabeled(2, "error"),
		topics.MustLabeled(3, "critical"),
		topics.All,
	}
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
// An empty document is valid and selects every default.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parse debug configuration")
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the document at path from fs
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read debug configuration %s", path)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return f, nil
}

// Validate checks field constraints
func (f *File) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate debug configuration")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "File.")
		if fe.Param() != "" {
			problems = append(problems, field+" failed "+fe.Tag()+"="+fe.Param())
		} else {
			problems = append(problems, field+" failed "+fe.Tag())
		}
	}
	return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
}

// Registry builds a label registry from the declared topics, or from
// DefaultTopics when none are declared.
func (f *File) Registry() (*topics.Registry, error) {
	if len(f.Topics) == 0 {
		return topics.NewRegistry(DefaultTopics()...)
	}

	declared := make([]topics.Topic, 0, len(f.Topics))
	for _, spec := range f.Topics {
		t, err := topics.NewLabeled(spec.Level, spec.Label)
		if err != nil {
			return nil, errors.Wrapf(err, "topic %q", spec.Label)
		}
		declared = append(declared, t)
	}
	return topics.NewRegistry(declared...)
}

// Mask resolves the debug labels against reg
func (f *File) Mask(reg *topics.Registry) (topics.Set, error) {
	return reg.Parse(f.Debug)
}

// FormatOptions applies the format section over the default options
func (f *File) FormatOptions() formatters.FormatOptions {
	opts := formatters.DefaultFormatOptions()

	keys := make([]string, 0, len(f.Format))
	for key := range f.Format {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		token := formatters.Omit
		if value := f.Format[key]; value != nil {
			token = formatters.Text(*value)
		}

		switch key {
		case KeyPrefix:
			opts.Prefix = token
		case KeyLabelSeparator:
			opts.LabelSeparator = token
		case KeyMessageSeparator:
			opts.MessageSeparator = token
		case KeyTerminator:
			opts.Terminator = token
		}
	}
	return opts
}

// SplitLabels splits a label list such as "info,error" or "info error",
// as found in the DEBUGKIT_DEBUG environment variable.
func SplitLabels(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
