package gestrec

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the parameters of a selection/recognition run.
type Config struct {

	// Selection strategy. One of {constant, bic, dic, cv}.
	Selector string `yaml:"selector" json:"selector"`

	HMM HMM `yaml:"hmm" json:"hmm"`

	// Dataset file with the list of training item files.
	TrainSet string `yaml:"train_set,omitempty" json:"train_set,omitempty"`

	// Dataset file with the list of test item files.
	TestSet string `yaml:"test_set,omitempty" json:"test_set,omitempty"`

	// Output model bank filename.
	ModelOut string `yaml:"model_out,omitempty" json:"model_out,omitempty"`

	// Input model bank filename.
	ModelIn string `yaml:"model_in,omitempty" json:"model_in,omitempty"`

	// Recognition results filename.
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`
}

// HMM holds model search and training parameters.
type HMM struct {
	MinN          int   `yaml:"min_n_components,omitempty" json:"min_n_components,omitempty"`
	MaxN          int   `yaml:"max_n_components,omitempty" json:"max_n_components,omitempty"`
	NConstant     int   `yaml:"n_constant,omitempty" json:"n_constant,omitempty"`
	RandomState   int64 `yaml:"random_state,omitempty" json:"random_state,omitempty"`
	MaxIterations int   `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
	Verbose       bool  `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// ReadConfig reads a run configuration from an io.Reader.
func ReadConfig(r io.Reader) (*Config, error) {

	b, e := ioutil.ReadAll(r)
	if e != nil {
		return nil, e
	}
	config := new(Config)
	e = yaml.Unmarshal(b, config)
	if e != nil {
		return nil, fmt.Errorf("cannot parse config: %s", e)
	}
	return config, nil
}

// ReadConfigFile reads a run configuration from a YAML file.
func ReadConfigFile(fn string) (*Config, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadConfig(f)
}
