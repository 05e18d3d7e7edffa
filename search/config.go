package search

import (
	"errors"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/superopt/cpu"
)

// configValidate is the shared validator instance.
var configValidate = validator.New()

// Config bounds the candidate program space.
type Config struct {
	MaxInstructionsLength int `yaml:"max_instructions_length" validate:"min=1"`
	MaxMemoryCells        int `yaml:"max_memory_cells" validate:"min=1"`
	MaxValue              int `yaml:"max_value" validate:"min=1"`
}

// Validate checks that every bound is usable.
func (cfg *Config) Validate() (err error) {
	err = configValidate.Struct(cfg)
	if err != nil {
		err = errors.Join(ErrConfig, err)
	}

	return
}

// Bounds returns the instruction argument bounds of the configuration.
func (cfg *Config) Bounds() cpu.Bounds {
	return cpu.Bounds{Cells: cfg.MaxMemoryCells, Values: cfg.MaxValue}
}

// Request is a complete search request, as read from a file.
type Request struct {
	Config `yaml:",inline"`

	Target   []int         `yaml:"target" validate:"dive,gte=0"`
	Strategy string        `yaml:"strategy" validate:"omitempty,oneof=race shortest"`
	Workers  int           `yaml:"workers" validate:"gte=0"`
	Poll     int           `yaml:"poll" validate:"gte=0"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Validate checks the request bounds and options.
func (req *Request) Validate() (err error) {
	err = configValidate.Struct(req)
	if err != nil {
		err = errors.Join(ErrConfig, err)
		return
	}

	if len(req.Target) > req.MaxMemoryCells {
		err = errors.Join(ErrConfig, ErrTarget)
		return
	}

	return
}

// Apply copies the request options to a searcher.
func (req *Request) Apply(s *Searcher) (err error) {
	if len(req.Strategy) != 0 {
		s.Strategy, err = ParseStrategy(req.Strategy)
		if err != nil {
			return
		}
	}
	if req.Workers != 0 {
		s.Workers = req.Workers
	}
	if req.Poll != 0 {
		s.PollInterval = req.Poll
	}
	if req.Timeout != 0 {
		s.Timeout = req.Timeout
	}

	return
}

// LoadRequest reads and validates a YAML search request.
func LoadRequest(input io.Reader) (req *Request, err error) {
	dec := yaml.NewDecoder(input)
	dec.KnownFields(true)

	req = &Request{}
	err = dec.Decode(req)
	if err != nil {
		req = nil
		err = errors.Join(ErrConfig, err)
		return
	}

	err = req.Validate()
	if err != nil {
		req = nil
		return
	}

	return
}
